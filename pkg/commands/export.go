package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/civil"
	"github.com/marszhhx/recare-tally/pkg/export"
	"github.com/marszhhx/recare-tally/pkg/history"
)

func addExport(topLevel *cobra.Command) {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all archived days to an .xlsx workbook, oldest first",
		Example: `
tally export
tally export --out /tmp/tallies.xlsx
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			proj := &history.Projector{Persistence: s.p, Zone: s.zone}
			days, err := proj.LoadAll(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}

			types := s.board.Order()
			rows := history.ExportRows(days, types)

			if out == "" {
				out = export.FileName(civil.Now(s.zone))
			}
			if err := export.Write(out, history.Header(types), rows); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("exported %d day(s) to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file path. Defaults to the dated file name.")

	topLevel.AddCommand(cmd)
}
