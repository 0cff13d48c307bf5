package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// NameOptions captures a tally name given as free-form args, so users can
// type `tally up drop-offs` without quoting multi-word names.
type NameOptions struct {
	Name string
}

// NameArgs joins all positional args into the tally name.
func NameArgs(o *NameOptions) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a tally name")
		}
		o.Name = strings.Join(args, " ")
		return nil
	}
}
