package op

import (
	"math"

	"github.com/brimdata/nitro/errors"
)

// ToInt32 converts n to a group id, raising an Overflow fault when n does
// not fit.
func ToInt32(n int64) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		errors.Panic(errors.Overflow, "%d does not fit in 32 bits", n)
	}
	return int32(n)
}

// AddExact returns a+b, raising an Overflow fault on wraparound.
func AddExact(a, b int64) int64 {
	c := a + b
	if (c > a) != (b > 0) {
		errors.Panic(errors.Overflow, "%d + %d overflows int64", a, b)
	}
	return c
}

// IntExact converts a count to an int, raising an Overflow fault when it is
// negative or too large.
func IntExact(n int64) int {
	if n < 0 || n > math.MaxInt32 {
		errors.Panic(errors.Overflow, "count %d out of range", n)
	}
	return int(n)
}
