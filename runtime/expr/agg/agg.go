// Package agg implements the accumulators computed by the global and grouped
// aggregation operators.
//
// An accumulator folds rows into a state vector with one slot per group.  The
// operator owns the state vector: it allocates it with StateKind, grows it as
// groups appear, and asks the accumulator to Initialize each new range of
// slots before any row is folded into them.
package agg

import (
	"fmt"
	"sort"

	"github.com/brimdata/nitro/pkg/suggest"
	"github.com/brimdata/nitro/vector"
)

// ColumnAccessor returns column i of the batch being accumulated.
type ColumnAccessor func(i int) vector.Any

type Accumulator interface {
	// Initialize seeds slots [offset, offset+length) of state.
	Initialize(state vector.Any, offset, length int)
	// Accumulate folds the active rows of mask into slot group.
	Accumulate(state vector.Any, group int, mask *vector.Mask, columns ColumnAccessor)
	// AccumulateGroups folds each active row of mask into the slot named
	// by its entry in groups, which must not be null.
	AccumulateGroups(state vector.Any, groups *vector.Int, mask *vector.Mask, columns ColumnAccessor)
	// Result returns the final values for slots [0, maxGroup].  Output is
	// a buffer of at least maxGroup+1 slots the accumulator may use; many
	// accumulators return state itself.
	Result(maxGroup int, state vector.Any, output vector.Any) vector.Any
}

// StateKinder is implemented by accumulators whose state is not int64.
type StateKinder interface {
	StateKind() vector.Kind
}

// StateKind returns the kind of state vector acc expects.
func StateKind(acc Accumulator) vector.Kind {
	if k, ok := acc.(StateKinder); ok {
		return k.StateKind()
	}
	return vector.Int64
}

var constructors = map[string]func(int) Accumulator{
	"sum":            Sum,
	"sum_f64":        SumF64,
	"min":            Min,
	"max":            Max,
	"min_f64":        MinF64,
	"max_f64":        MaxF64,
	"first":          First,
	"count":          Count,
	"count_all":      func(int) Accumulator { return CountAll() },
	"dcount":         DCount,
	"count_distinct": CountDistinct,
}

// Names returns the accumulator names understood by Lookup.
func Names() []string {
	var names []string
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the accumulator called name over the given input column.
// The column is ignored by count_all.
func Lookup(name string, column int) (Accumulator, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("no such accumulator: %q%s", name, suggest.Hint(name, Names()))
	}
	return fn(column), nil
}
