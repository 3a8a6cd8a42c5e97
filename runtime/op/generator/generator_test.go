package generator

import (
	"testing"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequences(t *testing.T) {
	g := New(op.DefaultContext(), 5, 2, Sequence(10), SequenceRange(0, 3), Constant(7), Null())
	rows, err := runtime.Rows(g)
	require.NoError(t, err)
	assert.Equal(t, []nitro.Row{
		nitro.NewRow(10, 0, 7, nil),
		nitro.NewRow(11, 1, 7, nil),
		nitro.NewRow(12, 2, 7, nil),
		nitro.NewRow(13, 0, 7, nil),
		nitro.NewRow(14, 1, 7, nil),
	}, rows)
}

func TestUnrequestedColumnsSkipAhead(t *testing.T) {
	g := New(op.DefaultContext(), 9, 3, Sequence(0), SequenceRange(0, 4))
	var firsts []int64
	var seconds []int64
	for g.HasNext() {
		g.Next()
		firsts = append(firsts, vector.AsInt(g.Column(0)).Values[0])
		if len(firsts) == 3 {
			seconds = append(seconds, vector.AsInt(g.Column(1)).Values[:3]...)
		}
	}
	assert.Equal(t, []int64{0, 3, 6}, firsts)
	// Positions 6, 7 and 8 of a sequence wrapping at 4.
	assert.Equal(t, []int64{2, 3, 0}, seconds)
}

func TestNextPastEnd(t *testing.T) {
	g := New(op.DefaultContext(), 1, 0, Sequence(0))
	assert.Equal(t, 1, g.Next().Count())
	var err error
	func() {
		defer errors.Recover(&err)
		g.Next()
	}()
	assert.True(t, errors.Is(err, errors.IllegalState))
}

func TestAllocation(t *testing.T) {
	octx := op.DefaultContext()
	g := New(octx, 1, 4, Sequence(0), Sequence(1))
	stats := octx.Alloc.Stats("generator#1")
	assert.Equal(t, int64(2*4*9), stats.Current)
	require.NoError(t, g.Close())
	assert.Equal(t, int64(0), octx.Alloc.Outstanding())
}
