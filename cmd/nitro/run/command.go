package run

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/brimdata/nitro/cmd/nitro/root"
	"github.com/brimdata/nitro/output"
	"github.com/brimdata/nitro/pkg/charm"
	"golang.org/x/term"
)

var Cmd = &charm.Spec{
	Name:  "run",
	Usage: "run [options] plan.yaml",
	Short: "build a plan and print its rows",
	Long: `
"nitro run" builds the operator tree described by a plan file, drains it,
and prints each result row.  Null values print as "null".

The -f flag selects "tsv" or "table" output.  When -f is not given, table
output is used if standard output is a terminal and TSV otherwise.

With -metrics, allocator statistics for each operator are printed after the
rows in the Prometheus text exposition format.`,
	New: New,
}

type Command struct {
	*root.Command
	format    string
	metrics   bool
	batchSize int
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.StringVar(&c.format, "f", "", "output format (tsv or table)")
	f.BoolVar(&c.metrics, "metrics", false, "print allocator metrics after the results")
	f.IntVar(&c.batchSize, "batch", 0, "source batch size (overrides the config file)")
	return c, nil
}

func (c *Command) Run(args []string) error {
	if len(args) != 1 {
		return errors.New("run: a single plan file is required")
	}
	conf, logger, err := c.Init()
	if err != nil {
		return err
	}
	defer logger.Sync()
	if c.batchSize > 0 {
		conf.BatchSize = c.batchSize
	}
	if c.metrics {
		conf.Metrics = true
	}
	format := output.Format(c.format)
	if c.format == "" {
		format = output.TSV
		if term.IsTerminal(int(os.Stdout.Fd())) {
			format = output.Table
		}
	} else if format, err = output.ParseFormat(c.format); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return Execute(ctx, Options{
		Config: conf,
		Logger: logger,
		Plan:   args[0],
		Format: format,
		Out:    os.Stdout,
	})
}
