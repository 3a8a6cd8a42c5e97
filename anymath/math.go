// Package anymath holds binary arithmetic shared by projection functions and
// accumulators, one implementation per vector kind.
package anymath

type Float64 func(float64, float64) float64
type Int64 func(int64, int64) int64

type Function struct {
	Float64
	Int64
}

// Of returns the implementation of fn for T.
func Of[T int64 | float64](fn *Function) func(T, T) T {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return any((func(float64, float64) float64)(fn.Float64)).(func(T, T) T)
	}
	return any((func(int64, int64) int64)(fn.Int64)).(func(T, T) T)
}

var Min = &Function{
	Float64: func(a, b float64) float64 {
		if a < b {
			return a
		}
		return b
	},
	Int64: func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	},
}

var Max = &Function{
	Float64: func(a, b float64) float64 {
		if a > b {
			return a
		}
		return b
	},
	Int64: func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	},
}

var Add = &Function{
	Float64: func(a, b float64) float64 { return a + b },
	Int64:   func(a, b int64) int64 { return a + b },
}

var Sub = &Function{
	Float64: func(a, b float64) float64 { return a - b },
	Int64:   func(a, b int64) int64 { return a - b },
}

var Mul = &Function{
	Float64: func(a, b float64) float64 { return a * b },
	Int64:   func(a, b int64) int64 { return a * b },
}
