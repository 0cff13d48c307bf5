package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/commands/options"
	"github.com/marszhhx/recare-tally/pkg/tally"
)

func addNew(topLevel *cobra.Command) {
	no := &options.NameOptions{}

	cmd := &cobra.Command{
		Use:   "new <tally>",
		Short: "Add a custom tally, shared by all clients from today forward",
		Example: `
tally new vip requests
`,
		Args: options.NameArgs(no),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if err := s.board.AddTally(cmd.Context(), no.Name); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("added %s\n", tally.Normalize(no.Name))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
