package top

import (
	"container/heap"

	"github.com/brimdata/nitro/vector"
)

type entry[T vector.Number] struct {
	key  T
	slot int
	seq  int64
}

// entries is a min-heap.  Among equal keys the later row is smaller so it
// drains first and lands after the earlier row in the descending output.
type entries[T vector.Number] []entry[T]

func (e entries[T]) Len() int { return len(e) }

func (e entries[T]) Less(i, j int) bool {
	if e[i].key != e[j].key {
		return e[i].key < e[j].key
	}
	return e[i].seq > e[j].seq
}

func (e entries[T]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries[T]) Push(x any) { *e = append(*e, x.(entry[T])) }

func (e *entries[T]) Pop() any {
	old := *e
	n := len(old)
	x := old[n-1]
	*e = old[:n-1]
	return x
}

// selector keeps the n largest keys seen so far and the output slot each
// one occupies.
type selector interface {
	// offer considers the key at pos and returns the slot the row must be
	// copied into, or false if the row is not among the n largest.
	offer(keys vector.Any, pos int, seq int64) (int, bool)
	len() int
	// drain empties the heap and returns the occupied slots ordered by
	// descending key.
	drain() []int
}

type bounded[T vector.Number] struct {
	n int
	h entries[T]
}

func newSelector(kind vector.Kind, n int) selector {
	if kind == vector.Float64 {
		return &bounded[float64]{n: n}
	}
	return &bounded[int64]{n: n}
}

func (b *bounded[T]) offer(keys vector.Any, pos int, seq int64) (int, bool) {
	vec := vector.AsFlat[T](keys)
	if vec.Nulls[pos] || b.n <= 0 {
		return 0, false
	}
	key := vec.Values[pos]
	if key != key {
		// NaN is unordered and never qualifies.
		return 0, false
	}
	if len(b.h) < b.n {
		slot := len(b.h)
		heap.Push(&b.h, entry[T]{key: key, slot: slot, seq: seq})
		return slot, true
	}
	if key <= b.h[0].key {
		return 0, false
	}
	slot := b.h[0].slot
	b.h[0] = entry[T]{key: key, slot: slot, seq: seq}
	heap.Fix(&b.h, 0)
	return slot, true
}

func (b *bounded[T]) len() int {
	return len(b.h)
}

func (b *bounded[T]) drain() []int {
	slots := make([]int, len(b.h))
	for k := len(slots) - 1; k >= 0; k-- {
		slots[k] = heap.Pop(&b.h).(entry[T]).slot
	}
	return slots
}
