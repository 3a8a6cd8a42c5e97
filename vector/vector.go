// Package vector holds the columnar data model of the engine: fixed-length
// nullable vectors of a single primitive type and the masks that select the
// active positions of a batch.
package vector

import (
	"fmt"

	"github.com/brimdata/nitro/errors"
)

type Kind int

const (
	Int64 Kind = iota
	Float64
)

func (k Kind) String() string {
	switch k {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Width is the number of bytes a single value of kind k occupies.
func (k Kind) Width() int {
	return 8
}

// Any is a column of values.  Its length is fixed at construction: growing a
// vector means building a longer one with Copy.
type Any interface {
	Kind() Kind
	Len() int
	Copy(size int) Any
}

// Number is the set of Go types backing a Flat vector.
type Number interface {
	int64 | float64
}

// Flat stores one value and one null flag per position.  Values[i] is
// meaningless when Nulls[i] is set.
type Flat[T Number] struct {
	Nulls  []bool
	Values []T
}

type (
	Int   = Flat[int64]
	Float = Flat[float64]
)

var (
	_ Any = (*Int)(nil)
	_ Any = (*Float)(nil)
)

func NewFlat[T Number](size int) *Flat[T] {
	return &Flat[T]{
		Nulls:  make([]bool, size),
		Values: make([]T, size),
	}
}

func NewInt(size int) *Int {
	return NewFlat[int64](size)
}

func NewFloat(size int) *Float {
	return NewFlat[float64](size)
}

// New returns a vector of the given kind and length.
func New(kind Kind, size int) Any {
	switch kind {
	case Int64:
		return NewInt(size)
	case Float64:
		return NewFloat(size)
	}
	errors.Panic(errors.Unimplemented, "vector of %s", kind)
	return nil
}

func (f *Flat[T]) Kind() Kind {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return Float64
	}
	return Int64
}

func (f *Flat[T]) Len() int {
	return len(f.Values)
}

// Copy returns a new vector of length size holding the first min(size,
// f.Len()) values of f.
func (f *Flat[T]) Copy(size int) Any {
	out := NewFlat[T](size)
	copy(out.Nulls, f.Nulls)
	copy(out.Values, f.Values)
	return out
}

func (f *Flat[T]) IsNull(pos int) bool {
	return f.Nulls[pos]
}

func (f *Flat[T]) Set(pos int, v T) {
	f.Values[pos] = v
	f.Nulls[pos] = false
}

func (f *Flat[T]) SetNull(pos int) {
	f.Values[pos] = 0
	f.Nulls[pos] = true
}

// AsInt returns v as an *Int or raises a TypeMismatch fault.
func AsInt(v Any) *Int {
	i, ok := v.(*Int)
	if !ok {
		errors.Panic(errors.TypeMismatch, "expected int64 vector, got %s", describe(v))
	}
	return i
}

// AsFloat returns v as a *Float or raises a TypeMismatch fault.
func AsFloat(v Any) *Float {
	f, ok := v.(*Float)
	if !ok {
		errors.Panic(errors.TypeMismatch, "expected float64 vector, got %s", describe(v))
	}
	return f
}

func describe(v Any) string {
	if v == nil {
		return "nil"
	}
	if _, ok := v.(*RLE); ok {
		return "rle vector"
	}
	return v.Kind().String() + " vector"
}

// AsFlat returns v as a *Flat[T] or raises a TypeMismatch fault.
func AsFlat[T Number](v Any) *Flat[T] {
	f, ok := v.(*Flat[T])
	if !ok {
		var zero T
		errors.Panic(errors.TypeMismatch, "expected %T vector, got %s", zero, describe(v))
	}
	return f
}
