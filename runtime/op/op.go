// Package op defines the pull-based protocol shared by all operators.
//
// An operator produces its output one batch at a time.  Next advances to a
// new batch and returns the mask of its active positions; Column returns the
// vectors of that batch.  Masks and vectors returned for one batch are
// invalidated by the following call to Next.
package op

import (
	"strconv"

	"github.com/brimdata/nitro/alloc"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/vector"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

// DefaultBatchSize is the number of rows sources produce per batch unless
// configured otherwise.
const DefaultBatchSize = 10240

//go:generate mockgen -destination=./mock/mock_operator.go -package=mock github.com/brimdata/nitro/runtime/op Operator

type Operator interface {
	// ColumnCount is fixed for the lifetime of the operator.
	ColumnCount() int
	// HasNext reports whether a call to Next is valid.
	HasNext() bool
	// Next advances to the next batch and returns its active positions.
	// Calling Next when HasNext is false raises an IllegalState fault.
	Next() *vector.Mask
	// Constrain informs the operator that only the positions of mask are
	// still of interest in the current batch.  Operators are free to ignore
	// it.
	Constrain(mask *vector.Mask)
	// Column returns column i of the current batch.  The vector must not be
	// modified by the caller.
	Column(i int) vector.Any
	// Close releases the allocation context of the operator and closes its
	// inputs.
	Close() error
}

// Context provides the state shared by all operators of a pipeline.
type Context struct {
	Logger *zap.Logger
	Alloc  *alloc.Allocator
	ID     ksuid.KSUID
	seq    map[string]int
}

func NewContext(logger *zap.Logger, a *alloc.Allocator) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if a == nil {
		a = alloc.New()
	}
	id := ksuid.New()
	return &Context{
		Logger: logger.With(zap.Stringer("query", id)),
		Alloc:  a,
		ID:     id,
		seq:    make(map[string]int),
	}
}

func DefaultContext() *Context {
	return NewContext(nil, nil)
}

// AllocContext returns a fresh allocation context name for an operator of
// the given kind, e.g., "join#2" for the second join of the pipeline.
func (c *Context) AllocContext(kind string) alloc.Context {
	if c.seq == nil {
		c.seq = make(map[string]int)
	}
	c.seq[kind]++
	return alloc.Context(kind + "#" + strconv.Itoa(c.seq[kind]))
}

// Exhausted raises the fault for a call to Next past the end of the
// operator's output.
func Exhausted(name string) {
	errors.Panic(errors.IllegalState, "%s: next called with no more batches", name)
}

// CheckColumn raises an Invalid fault when i is not a column of op.
func CheckColumn(name string, op Operator, i int) {
	if i < 0 || i >= op.ColumnCount() {
		errors.Panic(errors.Invalid, "%s: column %d out of range [0,%d)", name, i, op.ColumnCount())
	}
}
