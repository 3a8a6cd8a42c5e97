package charm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brimdata/nitro/pkg/suggest"
)

// path holds the instances of the commands named on the command line,
// root first.
type path []*instance

// run runs the last command of p.  A command without a Run of its own
// needs one of its sub-commands to have been named.
func (p path) run(args []string) error {
	err := p.last().command.Run(args)
	if err != ErrNoRun {
		return err
	}
	names := p.last().spec.visible()
	if len(args) == 0 {
		return fmt.Errorf("%s: requires a command: %s", p.pathname(), strings.Join(names, ", "))
	}
	return fmt.Errorf("%s: unknown command %q%s", p.pathname(), args[0], suggest.Hint(args[0], names))
}

func (p path) last() *instance {
	return p[len(p)-1]
}

func (p path) pathname(args ...string) string {
	var b strings.Builder
	for _, inst := range p {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(inst.spec.Name)
	}
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return b.String()
}

// visible returns the sorted names of the children of s not hidden from help.
func (s *Spec) visible() []string {
	var names []string
	for _, child := range s.children {
		if !child.Hidden {
			names = append(names, child.Name)
		}
	}
	sort.Strings(names)
	return names
}
