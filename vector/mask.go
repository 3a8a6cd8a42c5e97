package vector

import (
	"strconv"
	"strings"

	"github.com/brimdata/nitro/errors"
)

// Mask selects the active positions of a batch.  A mask is either dense,
// covering the positions [start, start+count), or sparse, listing positions
// in strictly increasing order.  Positions of a dense mask are materialized
// on first use.
type Mask struct {
	start     int
	count     int
	positions []int
	dense     bool
}

// All returns a mask covering positions [0, n).
func All(n int) *Mask {
	return Range(0, n)
}

// None returns a mask with no positions.
func None() *Mask {
	return All(0)
}

// Range returns a mask covering positions [start, start+count).
func Range(start, count int) *Mask {
	if start < 0 || count < 0 {
		errors.Panic(errors.Invalid, "mask range start %d count %d", start, count)
	}
	return &Mask{start: start, count: count, dense: true}
}

// Sparse returns a mask over the given positions, which must be strictly
// increasing.  The slice is retained, not copied.
func Sparse(positions []int) *Mask {
	return &Mask{positions: positions, count: len(positions)}
}

func (m *Mask) Count() int {
	return m.count
}

func (m *Mask) IsEmpty() bool {
	return m.count == 0
}

// IsAll reports whether m covers exactly [0, Count()).
func (m *Mask) IsAll() bool {
	return m.dense && m.start == 0
}

func (m *Mask) IsDense() bool {
	return m.dense
}

// MaxPosition returns the largest position in m or -1 when m is empty.
// Vectors carrying a batch for m must be at least MaxPosition()+1 long.
func (m *Mask) MaxPosition() int {
	if m.count == 0 {
		return -1
	}
	if m.dense {
		return m.start + m.count - 1
	}
	return m.positions[m.count-1]
}

// Position returns the i-th position of m.
func (m *Mask) Position(i int) int {
	if m.dense {
		return m.start + i
	}
	return m.positions[i]
}

// Positions returns the positions of m.  The returned slice must not be
// modified.
func (m *Mask) Positions() []int {
	if m.positions == nil || len(m.positions) != m.count {
		p := make([]int, m.count)
		for i := range p {
			p[i] = m.start + i
		}
		m.positions = p
	}
	return m.positions
}

// First returns a mask over the first n positions of m.  A sparse result
// shares storage with m.
func (m *Mask) First(n int) *Mask {
	if n >= m.count {
		return m
	}
	if n < 0 {
		n = 0
	}
	if m.dense {
		return Range(m.start, n)
	}
	return Sparse(m.positions[:n])
}

// Last returns a mask over the last n positions of m.
func (m *Mask) Last(n int) *Mask {
	if n >= m.count {
		return m
	}
	if n < 0 {
		n = 0
	}
	if m.dense {
		return Range(m.start+m.count-n, n)
	}
	return Sparse(m.positions[m.count-n:])
}

func (m *Mask) String() string {
	if m.dense {
		return "[" + strconv.Itoa(m.start) + ":" + strconv.Itoa(m.start+m.count) + ")"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range m.positions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p))
	}
	b.WriteByte('}')
	return b.String()
}
