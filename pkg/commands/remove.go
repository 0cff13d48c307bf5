package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/commands/options"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

func addRemove(topLevel *cobra.Command) {
	no := &options.NameOptions{}

	cmd := &cobra.Command{
		Use:   "remove <tally>",
		Short: "Remove a custom tally (builtins are protected)",
		Example: `
tally remove vip requests
`,
		Args: options.NameArgs(no),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := s.board.RemoveTally(cmd.Context(), no.Name); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("removed %s\n", tally.Normalize(no.Name))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
