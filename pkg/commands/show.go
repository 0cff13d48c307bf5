package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/printers"
)

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's board",
		Example: `
tally show
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return oo.HandleError(runShow(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func runShow(ctx context.Context) error {
	s, err := setup(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("Daily Tally · " + s.board.DateKey())
	pp.NewLine()
	pp.Board(s.board.Ordered())
	return nil
}
