package vector

import "github.com/brimdata/nitro/errors"

// RLE is a run-length encoded int64 column.  Runs[i] repeats Values[i].
// The engine keeps the type so sources can declare it, but no operator
// consumes it yet.
type RLE struct {
	Runs   []int
	Values []int64
}

var _ Any = (*RLE)(nil)

// NewRLE pairs run lengths with values, which must have one run each.
func NewRLE(runs []int, values *Int) (*RLE, error) {
	if len(runs) != values.Len() {
		return nil, errors.E(errors.Invalid, "rle: %d runs for %d values", len(runs), values.Len())
	}
	return &RLE{Runs: runs, Values: values.Values}, nil
}

func (r *RLE) Kind() Kind {
	return Int64
}

func (r *RLE) Len() int {
	var n int
	for _, run := range r.Runs {
		n += run
	}
	return n
}

func (r *RLE) Copy(int) Any {
	errors.Panic(errors.Unimplemented, "copy of run-length encoded vector")
	return nil
}
