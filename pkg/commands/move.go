package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/printers"
)

func addMove(topLevel *cobra.Command) {
	var source, target string

	cmd := &cobra.Command{
		Use:   "move --from <tally> --to <tally>",
		Short: "Reorder the board: place one tally at another's position",
		Long: `Move reorders the shared display order: the source tally is removed from
its position and reinserted where the target currently sits. The order is
global, one sequence for every client and every day.`,
		Example: `
tally move --from deferrals --to drop-offs
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if source == "" || target == "" {
				return errors.New("both --from and --to are required")
			}
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := s.board.Move(cmd.Context(), source, target); err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.NewLine()
			pp.Board(s.board.Ordered())
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "from", "", "Tally to move.")
	cmd.Flags().StringVar(&target, "to", "", "Tally whose position to take.")

	topLevel.AddCommand(cmd)
}
