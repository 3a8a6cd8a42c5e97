// Package function implements the vectorized functions a projection
// evaluates.  A Function writes one output vector from its input vectors at
// the active positions of a mask.  Positions outside the mask are left
// untouched.
package function

import (
	"errors"
	"fmt"
	"sort"

	nerrors "github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/pkg/suggest"
	"github.com/brimdata/nitro/vector"
)

type Function func(out vector.Any, in []vector.Any, mask *vector.Mask)

var (
	ErrBadArgument    = errors.New("bad argument")
	ErrNoSuchFunction = errors.New("no such function")
	ErrTooFewArgs     = errors.New("too few arguments")
	ErrTooManyArgs    = errors.New("too many arguments")
)

var names = []string{
	"identity", "neg", "add", "sub", "mul", "div", "mod",
	"add_const", "mul_const", "div_const", "mod_const", "to_float",
}

// Names returns the names understood by New.
func Names() []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

// New returns the function called name for inputs of the given kinds along
// with the kind of its output.  The _const functions apply arg as their
// second operand.
func New(name string, in []vector.Kind, arg float64) (Function, vector.Kind, error) {
	argmin := 1
	argmax := 1
	var f Function
	var out vector.Kind
	if len(in) > 0 {
		out = in[0]
	}
	switch name {
	default:
		return nil, 0, fmt.Errorf("%w: %q%s", ErrNoSuchFunction, name, suggest.Hint(name, names))
	case "identity":
		f = Identity
	case "neg":
		f = Negate
	case "add":
		argmin, argmax = 2, 2
		f = Add
	case "sub":
		argmin, argmax = 2, 2
		f = Sub
	case "mul":
		argmin, argmax = 2, 2
		f = Mul
	case "div":
		argmin, argmax = 2, 2
		f = Div
	case "mod":
		argmin, argmax = 2, 2
		f = Mod
	case "add_const", "mul_const", "div_const", "mod_const":
		if len(in) > 0 && in[0] == vector.Int64 && arg != float64(int64(arg)) {
			return nil, 0, fmt.Errorf("%s: %w: %v is not an integer", name, ErrBadArgument, arg)
		}
		f = constant(name, out, arg)
	case "to_float":
		f = ToFloat
		out = vector.Float64
		if len(in) > 0 && in[0] != vector.Int64 {
			return nil, 0, fmt.Errorf("%s: %w: input must be int64", name, ErrBadArgument)
		}
	}
	if len(in) < argmin {
		return nil, 0, fmt.Errorf("%s: %w", name, ErrTooFewArgs)
	}
	if len(in) > argmax {
		return nil, 0, fmt.Errorf("%s: %w", name, ErrTooManyArgs)
	}
	for _, k := range in[1:] {
		if k != in[0] {
			return nil, 0, nerrors.E(nerrors.TypeMismatch, "%s: mixed %s and %s inputs", name, in[0], k)
		}
	}
	return f, out, nil
}

func constant(name string, kind vector.Kind, arg float64) Function {
	if kind == vector.Float64 {
		switch name {
		case "add_const":
			return AddConst(arg)
		case "mul_const":
			return MulConst(arg)
		case "div_const":
			return DivConst(arg)
		}
		return ModConst(arg)
	}
	c := int64(arg)
	switch name {
	case "add_const":
		return AddConst(c)
	case "mul_const":
		return MulConst(c)
	case "div_const":
		return DivConst(c)
	}
	return ModConst(c)
}

// each calls fn for every position of mask in increasing order.
func each(mask *vector.Mask, fn func(pos int)) {
	if mask.IsDense() {
		end := mask.MaxPosition() + 1
		for pos := end - mask.Count(); pos < end; pos++ {
			fn(pos)
		}
		return
	}
	for _, pos := range mask.Positions() {
		fn(pos)
	}
}
