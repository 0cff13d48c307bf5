package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/commands/options"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

func addDown(topLevel *cobra.Command) {
	no := &options.NameOptions{}

	cmd := &cobra.Command{
		Use:   "down <tally>",
		Short: "Decrement a tally (never below zero)",
		Example: `
tally down drop-offs
`,
		Args: options.NameArgs(no),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			name := tally.Normalize(no.Name)
			if err := s.board.Decrement(cmd.Context(), name); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("%s: %d\n", name, s.board.Snapshot().Tallies.Count(name))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
