package root

import (
	"flag"

	"github.com/brimdata/nitro/cli/logflags"
	"github.com/brimdata/nitro/config"
	"github.com/brimdata/nitro/pkg/charm"
	"github.com/brimdata/nitro/pkg/logger"
	"go.uber.org/zap"
)

var Nitro = &charm.Spec{
	Name:  "nitro",
	Usage: "nitro [options] <command> [arguments...]",
	Short: "run columnar query plans",
	Long: `
nitro executes query plans over a single-threaded, batch-oriented columnar
engine.  A plan is a YAML tree of operators (generate, values, arrow,
filter, limit, project, group, aggregate, grouped_aggregate, join, top),
each reading from the operators beneath it.

Engine settings may be given in a YAML or TOML file with -c.  Logging
flags override the log section of that file.`,
	New: New,
}

type Command struct {
	charm.Command
	configPath string
	flagset    *flag.FlagSet
	LogFlags   logflags.Flags
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{flagset: f}
	f.StringVar(&c.configPath, "c", "", "path to a YAML or TOML config file")
	c.LogFlags.SetFlags(f)
	return c, nil
}

// Init loads the configuration and opens the logger it describes.
func (c *Command) Init() (config.Config, *zap.Logger, error) {
	conf := config.Default()
	if c.configPath != "" {
		var err error
		if conf, err = config.Load(c.configPath); err != nil {
			return conf, nil, err
		}
	}
	c.LogFlags.Apply(c.flagset, &conf.Log)
	log, err := logger.New(conf.Log)
	return conf, log, err
}

func (c *Command) Run(args []string) error {
	if len(args) == 0 {
		return charm.NeedHelp
	}
	return charm.ErrNoRun
}
