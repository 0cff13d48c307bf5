package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the midnight watcher: roll the board over to each new day",
		Long: `Watch keeps a session open, polls the clock every minute, and archives the
finishing day at local midnight: a fresh zero board is written under the new
date key while the previous day's document is left untouched as history.
Custom tallies and the shared display order carry over.`,
		Example: `
tally watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}

			fmt.Printf("watching for midnight in %s (board: %s)\n", s.zone, s.board.DateKey())
			s.board.RunMidnightWatch(cmd.Context(), func(rolled bool, err error) {
				if err != nil {
					fmt.Fprintf(os.Stderr, "rollover check: %v\n", err)
					return
				}
				if rolled {
					fmt.Printf("rolled over to %s\n", s.board.DateKey())
				}
			})
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
