package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/marszhhx/recare-tally/pkg/board"
	"github.com/marszhhx/recare-tally/pkg/civil"
	"github.com/marszhhx/recare-tally/pkg/commands/options"
	"github.com/marszhhx/recare-tally/pkg/store"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tally",
		Short: base.Wrap80("A shared daily tally board on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context())
		},
	}
	cmd.PersistentFlags().BoolVar(&oo.JSON, "json", false, "Report errors as JSON.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addUp(topLevel)
	addDown(topLevel)
	addNew(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addClear(topLevel)
	addHistory(topLevel)
	addExport(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}

// session bundles everything a command needs after bootstrap.
type session struct {
	cfg   store.Config
	zone  *time.Location
	p     store.Persistence
	board *board.Board
}

// setup loads config, resolves the civil zone, opens the store, and loads
// today's board.
func setup(ctx context.Context) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	zone, err := civil.LoadZone(cfg.Timezone())
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	b := board.New(p, zone)
	if err := b.Load(ctx); err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return &session{cfg: cfg, zone: zone, p: p, board: b}, nil
}
