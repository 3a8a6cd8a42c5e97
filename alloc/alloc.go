// Package alloc issues the vectors operators use as scratch and output
// buffers and accounts for them per named context.
//
// An Allocator belongs to a single pipeline and is not safe for concurrent
// use.  Releasing a context resets its outstanding byte count; the memory
// itself is reclaimed by the garbage collector once the operator drops its
// references.
package alloc

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alecthomas/units"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/vector"
)

// Context names an allocation accounting scope, typically one per operator
// instance.
type Context string

// SlotBytes is the number of bytes accounted for one position of a vector of
// the given kind: the value plus its null flag.
func SlotBytes(kind vector.Kind) int64 {
	return int64(kind.Width()) + 1
}

type Stats struct {
	// Current is the number of bytes outstanding.
	Current int64
	// Peak is the largest value Current has reached.
	Peak int64
	// Total is the number of bytes ever allocated.
	Total int64
	// Reallocated is the number of bytes discarded when a vector was
	// replaced by a larger one.
	Reallocated int64
}

func (s *Stats) record(bytes int64) {
	if bytes > 0 {
		s.Total += bytes
	}
	s.Current += bytes
	if s.Current > s.Peak {
		s.Peak = s.Current
	}
}

type Allocator struct {
	stats map[Context]*Stats
	limit int64
	// outstanding is the sum of Current over all contexts.
	outstanding int64
}

func New() *Allocator {
	return &Allocator{stats: make(map[Context]*Stats)}
}

// SetLimit bounds the number of bytes outstanding across all contexts.
// Allocations that would exceed the limit raise an Overflow fault.  A limit
// of zero or less removes the bound.
func (a *Allocator) SetLimit(bytes int64) {
	a.limit = bytes
}

func (a *Allocator) Limit() int64 {
	return a.limit
}

func (a *Allocator) lookup(ctx Context) *Stats {
	s, ok := a.stats[ctx]
	if !ok {
		s = &Stats{}
		a.stats[ctx] = s
	}
	return s
}

func (a *Allocator) record(ctx Context, bytes int64) {
	if bytes > 0 && a.limit > 0 && a.outstanding+bytes > a.limit {
		errors.Panic(errors.Overflow, "allocation of %s in context %q exceeds memory limit %s",
			units.Base2Bytes(bytes), string(ctx), units.Base2Bytes(a.limit))
	}
	a.lookup(ctx).record(bytes)
	a.outstanding += bytes
}

func (a *Allocator) discard(ctx Context, vec vector.Any) {
	bytes := int64(vec.Len()) * SlotBytes(vec.Kind())
	a.record(ctx, -bytes)
	a.lookup(ctx).Reallocated += bytes
}

// Allocate returns a new vector of the given kind and length.
func (a *Allocator) Allocate(ctx Context, kind vector.Kind, size int) vector.Any {
	if size < 0 {
		errors.Panic(errors.Overflow, "negative vector size %d", size)
	}
	a.record(ctx, int64(size)*SlotBytes(kind))
	return vector.New(kind, size)
}

// Grow returns vec if it holds at least size positions.  Otherwise it
// returns a new vector of length size holding the contents of vec.  A nil
// vec is allocated with the given kind.
func (a *Allocator) Grow(ctx Context, vec vector.Any, kind vector.Kind, size int) vector.Any {
	if vec == nil {
		return a.Allocate(ctx, kind, size)
	}
	if vec.Len() >= size {
		return vec
	}
	a.discard(ctx, vec)
	a.record(ctx, int64(size)*SlotBytes(vec.Kind()))
	return vec.Copy(size)
}

// Reallocate returns vec if it is of the given kind and holds at least size
// positions.  Otherwise it returns a new, zeroed vector.  Contents are not
// preserved.
func (a *Allocator) Reallocate(ctx Context, vec vector.Any, kind vector.Kind, size int) vector.Any {
	if vec == nil {
		return a.Allocate(ctx, kind, size)
	}
	if vec.Kind() == kind && vec.Len() >= size {
		return vec
	}
	a.discard(ctx, vec)
	return a.Allocate(ctx, kind, size)
}

// Release resets the outstanding byte count of ctx.
func (a *Allocator) Release(ctx Context) {
	s := a.lookup(ctx)
	a.outstanding -= s.Current
	s.Current = 0
}

func (a *Allocator) Stats(ctx Context) Stats {
	if s, ok := a.stats[ctx]; ok {
		return *s
	}
	return Stats{}
}

// Outstanding returns the number of bytes outstanding across all contexts.
func (a *Allocator) Outstanding() int64 {
	return a.outstanding
}

// Contexts returns the names of all contexts seen so far in sorted order.
func (a *Allocator) Contexts() []Context {
	out := make([]Context, 0, len(a.stats))
	for ctx := range a.stats {
		out = append(out, ctx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (a *Allocator) String() string {
	var lines []string
	for _, ctx := range a.Contexts() {
		s := a.stats[ctx]
		lines = append(lines, fmt.Sprintf("%s: total=%s, peak=%s, current=%s",
			ctx, units.Base2Bytes(s.Total), units.Base2Bytes(s.Peak), units.Base2Bytes(s.Current)))
	}
	return strings.Join(lines, "\n")
}

// ComputeCapacity returns the capacity of a vector that can hold desired
// positions plus headroom for growth.  The headroom is about twice desired
// for small sizes and shrinks logarithmically as desired grows.
func ComputeCapacity(desired int) int {
	if desired < 0 {
		errors.Panic(errors.Overflow, "negative desired capacity %d", desired)
	}
	d := float64(desired)
	growth := 1 + 1/math.Max(math.Log(d+1)-6, 1)
	c := d + d*growth
	if c > math.MaxInt32 {
		if desired > math.MaxInt32 {
			errors.Panic(errors.Overflow, "desired capacity %d exceeds %d", desired, math.MaxInt32)
		}
		return math.MaxInt32
	}
	return int(c)
}
