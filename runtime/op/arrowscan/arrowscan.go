// Package arrowscan implements a source that replays the records of an
// Arrow IPC stream as batches.  Only int64 and float64 columns are
// supported.
package arrowscan

import (
	"io"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"go.uber.org/zap"
)

// Stream holds the decoded records of an Arrow IPC stream.  A Stream may be
// scanned any number of times.
type Stream struct {
	schema  *arrow.Schema
	kinds   []vector.Kind
	records []arrow.Record
	rows    int64
}

// Read decodes every record of the IPC stream in r.
func Read(r io.Reader) (*Stream, error) {
	rr, err := ipc.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rr.Release()
	s := &Stream{schema: rr.Schema()}
	for _, f := range s.schema.Fields() {
		switch f.Type.ID() {
		case arrow.INT64:
			s.kinds = append(s.kinds, vector.Int64)
		case arrow.FLOAT64:
			s.kinds = append(s.kinds, vector.Float64)
		default:
			return nil, errors.E(errors.Invalid, "arrow: column %q has unsupported type %s", f.Name, f.Type)
		}
	}
	for {
		rec, err := rr.Read()
		if err != nil {
			if err == io.EOF {
				return s, nil
			}
			s.Release()
			return nil, err
		}
		if rec.NumRows() == 0 {
			continue
		}
		rec.Retain()
		s.records = append(s.records, rec)
		s.rows += rec.NumRows()
	}
}

func (s *Stream) Names() []string {
	var names []string
	for _, f := range s.schema.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func (s *Stream) Kinds() []vector.Kind {
	return s.kinds
}

func (s *Stream) Rows() int64 {
	return s.rows
}

func (s *Stream) Release() {
	for _, rec := range s.records {
		rec.Release()
	}
	s.records = nil
}

// Op emits each record of a Stream in batches of at most batchSize rows.
type Op struct {
	octx      *op.Context
	actx      alloc.Context
	stream    *Stream
	batchSize int
	rec       int
	off       int
	count     int
	columns   []vector.Any
	filled    []bool
}

var _ op.Operator = (*Op)(nil)

func New(octx *op.Context, s *Stream, batchSize int) *Op {
	if batchSize <= 0 {
		batchSize = op.DefaultBatchSize
	}
	return &Op{
		octx:      octx,
		actx:      octx.AllocContext("arrow"),
		stream:    s,
		batchSize: batchSize,
		columns:   make([]vector.Any, len(s.kinds)),
		filled:    make([]bool, len(s.kinds)),
	}
}

func (o *Op) ColumnCount() int {
	return len(o.columns)
}

func (o *Op) HasNext() bool {
	if o.rec >= len(o.stream.records) {
		return false
	}
	if o.off+o.count < int(o.stream.records[o.rec].NumRows()) {
		return true
	}
	return o.rec+1 < len(o.stream.records)
}

func (o *Op) Next() *vector.Mask {
	if !o.HasNext() {
		op.Exhausted("arrow")
	}
	o.off += o.count
	if o.off >= int(o.stream.records[o.rec].NumRows()) {
		o.rec++
		o.off = 0
	}
	o.count = min(o.batchSize, int(o.stream.records[o.rec].NumRows())-o.off)
	for i := range o.filled {
		o.filled[i] = false
	}
	return vector.All(o.count)
}

// Constrain is ignored since columns are copied in bulk.
func (*Op) Constrain(*vector.Mask) {}

func (o *Op) Column(i int) vector.Any {
	op.CheckColumn("arrow", o, i)
	if o.filled[i] {
		return o.columns[i]
	}
	o.filled[i] = true
	col := o.stream.records[o.rec].Column(i)
	vec := o.octx.Alloc.Reallocate(o.actx, o.columns[i], o.stream.kinds[i], o.count)
	switch vec := vec.(type) {
	case *vector.Int:
		fill(vec, col.(*array.Int64).Int64Values(), col, o.off, o.count)
	case *vector.Float:
		fill(vec, col.(*array.Float64).Float64Values(), col, o.off, o.count)
	}
	o.columns[i] = vec
	return vec
}

func fill[T vector.Number](vec *vector.Flat[T], values []T, col arrow.Array, off, n int) {
	copy(vec.Values[:n], values[off:off+n])
	for k := 0; k < n; k++ {
		vec.Nulls[k] = col.IsNull(off + k)
	}
}

func (o *Op) Close() error {
	o.octx.Logger.Debug("arrow scan",
		zap.Int("records", len(o.stream.records)),
		zap.Int64("rows", o.stream.rows))
	o.octx.Alloc.Release(o.actx)
	return nil
}
