package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marszhhx/recare-tally/pkg/history"
	"github.com/marszhhx/recare-tally/pkg/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive board",
		Example: `
tally ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := setup(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}

			events, err := s.p.Watch(cmd.Context())
			if err != nil {
				// The board still works without live refresh.
				fmt.Fprintf(os.Stderr, "store watch unavailable: %v\n", err)
				events = nil
			}

			proj := &history.Projector{Persistence: s.p, Zone: s.zone}
			return oo.HandleError(ui.Run(cmd.Context(), s.board, proj, events))
		},
	}

	topLevel.AddCommand(cmd)
}
