package vector

import "github.com/brimdata/nitro/errors"

// CopyRow copies position src of from into position dst of to.
func CopyRow(to Any, dst int, from Any, src int) {
	switch to := to.(type) {
	case *Int:
		f := AsInt(from)
		to.Nulls[dst] = f.Nulls[src]
		to.Values[dst] = f.Values[src]
	case *Float:
		f := AsFloat(from)
		to.Nulls[dst] = f.Nulls[src]
		to.Values[dst] = f.Values[src]
	default:
		errors.Panic(errors.Unimplemented, "copy row into %s", describe(to))
	}
}

// Replicate sets positions [start, end) of to to the value at position src
// of from.
func Replicate(to Any, start, end int, from Any, src int) {
	switch to := to.(type) {
	case *Int:
		replicate(to, start, end, AsInt(from), src)
	case *Float:
		replicate(to, start, end, AsFloat(from), src)
	default:
		errors.Panic(errors.Unimplemented, "replicate into %s", describe(to))
	}
}

func replicate[T Number](to *Flat[T], start, end int, from *Flat[T], src int) {
	null, val := from.Nulls[src], from.Values[src]
	nulls, vals := to.Nulls[start:end], to.Values[start:end]
	for i := range vals {
		nulls[i] = null
		vals[i] = val
	}
}

// CopyCompact copies the positions of from selected by mask into to,
// starting at position offset of to.  It returns the number of rows copied.
func CopyCompact(to Any, offset int, from Any, mask *Mask) int {
	switch to := to.(type) {
	case *Int:
		return copyCompact(to, offset, AsInt(from), mask)
	case *Float:
		return copyCompact(to, offset, AsFloat(from), mask)
	}
	errors.Panic(errors.Unimplemented, "compact into %s", describe(to))
	return 0
}

func copyCompact[T Number](to *Flat[T], offset int, from *Flat[T], mask *Mask) int {
	if mask.IsDense() {
		start := mask.Position(0)
		n := mask.Count()
		copy(to.Nulls[offset:offset+n], from.Nulls[start:start+n])
		copy(to.Values[offset:offset+n], from.Values[start:start+n])
		return n
	}
	for k, pos := range mask.Positions() {
		to.Nulls[offset+k] = from.Nulls[pos]
		to.Values[offset+k] = from.Values[pos]
	}
	return mask.Count()
}

// SwapRows exchanges positions i and j of v.
func SwapRows(v Any, i, j int) {
	switch v := v.(type) {
	case *Int:
		swap(v, i, j)
	case *Float:
		swap(v, i, j)
	default:
		errors.Panic(errors.Unimplemented, "swap rows of %s", describe(v))
	}
}

func swap[T Number](v *Flat[T], i, j int) {
	v.Nulls[i], v.Nulls[j] = v.Nulls[j], v.Nulls[i]
	v.Values[i], v.Values[j] = v.Values[j], v.Values[i]
}
