package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/board"
)

func addClear(topLevel *cobra.Command) {
	var confirmation string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Zero every count on today's board",
		Long: fmt.Sprintf(`Clear resets every tally on today's board to zero. It is destructive, so
it requires --confirm=%q to run.`, board.ClearConfirmation),
		Example: `
tally clear --confirm confirm
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := s.board.ClearAll(cmd.Context(), confirmation); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("cleared all tallies for %s\n", s.board.DateKey())
			return nil
		},
	}

	cmd.Flags().StringVar(&confirmation, "confirm", "",
		fmt.Sprintf("Type %q to confirm clearing all tallies.", board.ClearConfirmation))

	topLevel.AddCommand(cmd)
}
