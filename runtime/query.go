package runtime

import (
	"context"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Sink consumes the batches of a query.  The vectors passed to Write are
// only valid for the duration of the call.
type Sink interface {
	Write(cols []vector.Any, mask *vector.Mask) error
}

// Progress counts what a query has produced so far.
type Progress struct {
	Batches int64
	Rows    int64
}

// Query drains the root operator of a pipeline into a Sink, turning engine
// faults raised by the operators into errors, and tears the pipeline down
// when closed.
type Query struct {
	octx     *op.Context
	root     op.Operator
	progress Progress
	closed   bool
}

func NewQuery(octx *op.Context, root op.Operator) *Query {
	return &Query{
		octx: octx,
		root: root,
	}
}

func (q *Query) Context() *op.Context {
	return q.octx
}

func (q *Query) Progress() Progress {
	return q.progress
}

// Run pulls every batch from the root operator and writes it to sink.  The
// context is checked between batches.
func (q *Query) Run(ctx context.Context, sink Sink) (err error) {
	defer errors.Recover(&err)
	cols := make([]vector.Any, q.root.ColumnCount())
	for q.root.HasNext() {
		if err := ctx.Err(); err != nil {
			return err
		}
		mask := q.root.Next()
		if mask.IsEmpty() {
			continue
		}
		for i := range cols {
			cols[i] = q.root.Column(i)
		}
		if err := sink.Write(cols, mask); err != nil {
			return err
		}
		q.progress.Batches++
		q.progress.Rows += int64(mask.Count())
	}
	q.octx.Logger.Debug("query done",
		zap.Int64("batches", q.progress.Batches),
		zap.Int64("rows", q.progress.Rows))
	return nil
}

// Close closes the pipeline.  Only the first call has any effect.
func (q *Query) Close() error {
	if q.closed {
		return nil
	}
	q.closed = true
	err := q.root.Close()
	for _, ctx := range q.octx.Alloc.Contexts() {
		s := q.octx.Alloc.Stats(ctx)
		q.octx.Logger.Debug("allocation",
			zap.String("context", string(ctx)),
			zap.Int64("total", s.Total),
			zap.Int64("peak", s.Peak),
			zap.Int64("current", s.Current))
	}
	return err
}

type rowSink struct {
	rows []nitro.Row
}

func (r *rowSink) Write(cols []vector.Any, mask *vector.Mask) error {
	ints := make([]*vector.Int, len(cols))
	for i, col := range cols {
		ints[i] = vector.AsInt(col)
	}
	for _, pos := range mask.Positions() {
		row := make(nitro.Row, len(cols))
		for i, col := range ints {
			if !col.Nulls[pos] {
				v := col.Values[pos]
				row[i] = &v
			}
		}
		r.rows = append(r.rows, row)
	}
	return nil
}

// Rows drains root into memory and closes it.  All columns must be int64.
func Rows(root op.Operator) ([]nitro.Row, error) {
	q := NewQuery(op.DefaultContext(), root)
	var sink rowSink
	err := q.Run(context.Background(), &sink)
	return sink.rows, multierr.Append(err, q.Close())
}
