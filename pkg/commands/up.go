package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/commands/options"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

func addUp(topLevel *cobra.Command) {
	no := &options.NameOptions{}

	cmd := &cobra.Command{
		Use:   "up <tally>",
		Short: "Increment a tally",
		Example: `
tally up drop-offs
tally up in-store repairs
`,
		Args: options.NameArgs(no),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			name := tally.Normalize(no.Name)
			if err := s.board.Increment(cmd.Context(), name); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("%s: %d\n", name, s.board.Snapshot().Tallies.Count(name))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
