package explain

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/brimdata/nitro/cmd/nitro/root"
	"github.com/brimdata/nitro/pkg/charm"
	"github.com/brimdata/nitro/plan"
)

var Cmd = &charm.Spec{
	Name:  "explain",
	Usage: "explain plan.yaml",
	Short: "print the operator tree of a plan",
	Long: `
"nitro explain" parses a plan and prints its operators as an indented tree,
one operator per line with its inputs beneath it.  The plan is not built or
run.`,
	New: New,
}

type Command struct {
	*root.Command
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return errors.New("explain: a single plan file is required")
	}
	node, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, plan.Explain(node))
	return nil
}
