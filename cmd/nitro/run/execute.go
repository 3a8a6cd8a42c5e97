package run

import (
	"context"
	"io"

	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/config"
	"github.com/brimdata/nitro/output"
	"github.com/brimdata/nitro/plan"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Options struct {
	Config config.Config
	Logger *zap.Logger
	Plan   string
	Format output.Format
	Out    io.Writer
}

// Execute builds and runs the plan at opts.Plan, writing its rows and,
// when configured, allocator metrics to opts.Out.
func Execute(ctx context.Context, opts Options) (err error) {
	node, err := plan.Load(opts.Plan)
	if err != nil {
		return err
	}
	a := alloc.New()
	a.SetLimit(int64(opts.Config.MemoryLimit))
	octx := op.NewContext(opts.Logger, a)
	b, err := plan.NewBuilder(octx, opts.Config.BatchSize, 0)
	if err != nil {
		return err
	}
	defer b.Close()
	root, _, err := b.Build(node)
	if err != nil {
		return err
	}
	q := runtime.NewQuery(octx, root)
	w := output.NewWriter(opts.Out, opts.Format, nil)
	err = q.Run(ctx, w)
	err = multierr.Combine(err, w.Flush(), q.Close())
	octx.Logger.Info("query finished",
		zap.Int64("rows", w.Rows()),
		zap.Int64("batches", q.Progress().Batches),
		zap.Error(err))
	if err != nil || !opts.Config.Metrics {
		return err
	}
	return writeMetrics(opts.Out, a)
}

func writeMetrics(w io.Writer, a *alloc.Allocator) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(alloc.NewCollector(a)); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
