// Package nitro is a single-threaded, batch-oriented columnar query engine.
// Operators live under runtime/op and exchange vectors (package vector)
// selected by masks.
package nitro

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is a tuple of optional integers.  A nil element is null.  Rows are
// used to describe constant tables and to read back query results.
type Row []*int64

// NewRow builds a row from ints, int64s and nils.
func NewRow(vals ...any) Row {
	row := make(Row, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case nil:
		case int:
			n := int64(v)
			row[i] = &n
		case int64:
			n := v
			row[i] = &n
		default:
			panic(fmt.Sprintf("nitro.NewRow: unsupported value %T", v))
		}
	}
	return row
}

// Ints builds a row with no nulls.
func Ints(vals ...int64) Row {
	row := make(Row, len(vals))
	for i := range vals {
		row[i] = &vals[i]
	}
	return row
}

func (r Row) IsNull(i int) bool {
	return r[i] == nil
}

func (r Row) Equal(to Row) bool {
	if len(r) != len(to) {
		return false
	}
	for i := range r {
		if (r[i] == nil) != (to[i] == nil) {
			return false
		}
		if r[i] != nil && *r[i] != *to[i] {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		if v == nil {
			b.WriteString("null")
		} else {
			b.WriteString(strconv.FormatInt(*v, 10))
		}
	}
	b.WriteByte(')')
	return b.String()
}
