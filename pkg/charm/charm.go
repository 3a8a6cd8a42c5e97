// Package charm is a minimal CLI framework inspired by cobra and urfave/cli.
package charm

import (
	"errors"
	"flag"
	"io"
	"os"
)

var (
	NeedHelp = errors.New("help")
	ErrNoRun = errors.New("no run method")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden hides this command from help.
	Hidden bool
	// Hidden flags (comma-separated) marks these flags as hidden.
	HiddenFlags string
	children    []*Spec
	parent      *Spec
}

func (c *Spec) Add(child *Spec) {
	c.children = append(c.children, child)
	child.parent = c
}

func (c *Spec) lookupSub(name string) *Spec {
	for _, child := range c.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// ExecRoot parses args against the command tree rooted at s and runs the
// command they select.  Help requested with -h or the help pseudo command
// is written to stderr.
func (s *Spec) ExecRoot(args []string) error {
	return s.exec(args, os.Stderr)
}

func (s *Spec) exec(args []string, help io.Writer) error {
	p, rest, err := parse(s, args)
	if err == nil {
		err = p.run(rest)
	}
	if err == NeedHelp {
		p.help(help, false)
		return nil
	}
	return err
}
