package function

import (
	"math"

	"github.com/brimdata/nitro/anymath"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/vector"
)

// A result with ok false is null.
type unaryFn[T vector.Number] func(T) (T, bool)
type binaryFn[T vector.Number] func(T, T) (T, bool)

func unary[T vector.Number](out *vector.Flat[T], in vector.Any, mask *vector.Mask, fn unaryFn[T]) {
	src := vector.AsFlat[T](in)
	each(mask, func(pos int) {
		if src.Nulls[pos] {
			out.SetNull(pos)
			return
		}
		if v, ok := fn(src.Values[pos]); ok {
			out.Set(pos, v)
		} else {
			out.SetNull(pos)
		}
	})
}

func binary[T vector.Number](out *vector.Flat[T], in []vector.Any, mask *vector.Mask, fn binaryFn[T]) {
	a, b := vector.AsFlat[T](in[0]), vector.AsFlat[T](in[1])
	each(mask, func(pos int) {
		if a.Nulls[pos] || b.Nulls[pos] {
			out.SetNull(pos)
			return
		}
		if v, ok := fn(a.Values[pos], b.Values[pos]); ok {
			out.Set(pos, v)
		} else {
			out.SetNull(pos)
		}
	})
}

func unaryOf(name string, fi unaryFn[int64], ff unaryFn[float64]) Function {
	return func(out vector.Any, in []vector.Any, mask *vector.Mask) {
		switch out := out.(type) {
		case *vector.Int:
			unary(out, in[0], mask, fi)
		case *vector.Float:
			unary(out, in[0], mask, ff)
		default:
			errors.Panic(errors.Unimplemented, "%s: output vector %T", name, out)
		}
	}
}

func binaryOf(name string, fi binaryFn[int64], ff binaryFn[float64]) Function {
	return func(out vector.Any, in []vector.Any, mask *vector.Mask) {
		switch out := out.(type) {
		case *vector.Int:
			binary(out, in, mask, fi)
		case *vector.Float:
			binary(out, in, mask, ff)
		default:
			errors.Panic(errors.Unimplemented, "%s: output vector %T", name, out)
		}
	}
}

func identity[T vector.Number](v T) (T, bool) { return v, true }
func negate[T vector.Number](v T) (T, bool) { return -v, true }

// total lifts an operation defined everywhere into a binaryFn.
func total[T vector.Number](fn *anymath.Function) binaryFn[T] {
	op := anymath.Of[T](fn)
	return func(a, b T) (T, bool) {
		return op(a, b), true
	}
}

func div[T vector.Number](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

func mod[T vector.Number](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	switch a := any(a).(type) {
	case int64:
		return T(a % int64(b)), true
	case float64:
		return T(math.Mod(a, float64(b))), true
	}
	return 0, false
}

var (
	Identity = unaryOf("identity", identity[int64], identity[float64])
	Negate   = unaryOf("neg", negate[int64], negate[float64])
	Add      = binaryOf("add", total[int64](anymath.Add), total[float64](anymath.Add))
	Sub      = binaryOf("sub", total[int64](anymath.Sub), total[float64](anymath.Sub))
	Mul      = binaryOf("mul", total[int64](anymath.Mul), total[float64](anymath.Mul))
	// Div and Mod produce null where the divisor is zero.
	Div = binaryOf("div", div[int64], div[float64])
	Mod = binaryOf("mod", mod[int64], mod[float64])
)

func withConst[T vector.Number](c T, fn binaryFn[T]) Function {
	return func(out vector.Any, in []vector.Any, mask *vector.Mask) {
		unary(vector.AsFlat[T](out), in[0], mask, func(v T) (T, bool) {
			return fn(v, c)
		})
	}
}

func AddConst[T vector.Number](c T) Function {
	return withConst(c, total[T](anymath.Add))
}

func MulConst[T vector.Number](c T) Function {
	return withConst(c, total[T](anymath.Mul))
}

func DivConst[T vector.Number](c T) Function {
	return withConst(c, div[T])
}

func ModConst[T vector.Number](c T) Function {
	return withConst(c, mod[T])
}

// ToFloat converts an int64 input to float64.
func ToFloat(out vector.Any, in []vector.Any, mask *vector.Mask) {
	dst, src := vector.AsFloat(out), vector.AsInt(in[0])
	each(mask, func(pos int) {
		if src.Nulls[pos] {
			dst.SetNull(pos)
		} else {
			dst.Set(pos, float64(src.Values[pos]))
		}
	})
}
