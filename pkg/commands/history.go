package commands

import (
	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/history"
	"github.com/marszhhx/recare-tally/pkg/printers"
)

func addHistory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived days, newest first",
		Example: `
tally history
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

			pp := printers.PrettyPrint{}
			pp.NewLine()
			pp.History(days, s.board.Order())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
