package filter

import "github.com/brimdata/nitro/vector"

// Predicate tests the value at one position of a vector.  Null values never
// satisfy a predicate.
type Predicate interface {
	Test(vec vector.Any, pos int) bool
}

// I64 is a predicate over int64 columns.
type I64 func(int64) bool

func (p I64) Test(vec vector.Any, pos int) bool {
	v := vector.AsInt(vec)
	return !v.Nulls[pos] && p(v.Values[pos])
}

// F64 is a predicate over float64 columns.
type F64 func(float64) bool

func (p F64) Test(vec vector.Any, pos int) bool {
	v := vector.AsFloat(vec)
	return !v.Nulls[pos] && p(v.Values[pos])
}
