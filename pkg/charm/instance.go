package charm

import (
	"flag"
	"fmt"
	"io"

	"github.com/brimdata/nitro/pkg/suggest"
)

// instance represents a command that has been created but not run.
type instance struct {
	spec    *Spec
	command Command
	flags   *flag.FlagSet
}

func newInstance(parent Command, spec *Spec) (*instance, error) {
	if spec.New == nil {
		return nil, fmt.Errorf("command '%s': New function is nil", spec.Name)
	}
	flags := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	cmd, err := spec.New(parent, flags)
	if err != nil {
		return nil, err
	}
	return &instance{spec, cmd, flags}, nil
}

// parse walks args down the command tree, parsing each command's flags
// along the way, and returns the path of commands and the remaining
// arguments.
func parse(root *Spec, args []string) (path, []string, error) {
	inst, err := newInstance(nil, root)
	if err != nil {
		return nil, nil, err
	}
	p := path{inst}
	helping := false
	for {
		if err := inst.flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				return p, nil, NeedHelp
			}
			return p, nil, fmt.Errorf("%s: %w", p.pathname(), err)
		}
		args = inst.flags.Args()
		if len(args) == 0 {
			break
		}
		if args[0] == "help" && !helping && inst.spec.lookupSub("help") == nil {
			helping = true
			args = args[1:]
			if len(args) == 0 {
				break
			}
		}
		child := inst.spec.lookupSub(args[0])
		if child == nil {
			if helping {
				return p, nil, fmt.Errorf("no such command: %s%s", p.pathname(args[0]), suggest.Hint(args[0], inst.spec.visible()))
			}
			break
		}
		if inst, err = newInstance(inst.command, child); err != nil {
			return p, nil, err
		}
		p = append(p, inst)
		args = args[1:]
	}
	if helping {
		return p, nil, NeedHelp
	}
	return p, args, nil
}

// options returns a formatted slice of strings ready for printing as
// help for this instance of a command.
func (i *instance) options(vflag bool) []string {
	hidden := flagMap(i.spec.HiddenFlags)
	var body []string
	i.flags.VisitAll(func(f *flag.Flag) {
		name := "-" + f.Name
		if hidden[f.Name] {
			if !vflag {
				return
			}
			name = "[" + name + "]"
		}
		line := name + " " + f.Usage
		if f.DefValue != "" {
			line = fmt.Sprintf("%s (default \"%s\")", line, f.DefValue)
		}
		body = append(body, line)
	})
	return body
}
