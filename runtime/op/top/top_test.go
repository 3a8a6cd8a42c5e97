package top_test

import (
	"testing"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/runtime/op/filter"
	"github.com/brimdata/nitro/runtime/op/generator"
	"github.com/brimdata/nitro/runtime/op/top"
	"github.com/brimdata/nitro/runtime/op/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTopN(t *testing.T) {
	octx := op.DefaultContext()
	gen := generator.New(octx, 50, 7, generator.Sequence(0), generator.Sequence(100))
	rows, err := runtime.Rows(top.New(octx, gen, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, []nitro.Row{
		nitro.Ints(49, 149),
		nitro.Ints(48, 148),
		nitro.Ints(47, 147),
		nitro.Ints(46, 146),
		nitro.Ints(45, 145),
	}, rows)
}

func TestTopNUnordered(t *testing.T) {
	octx := op.DefaultContext()
	in, err := values.New(octx, 2, []nitro.Row{
		nitro.NewRow(3, 1),
		nitro.NewRow(9, nil),
		nitro.NewRow(nil, 2),
		nitro.NewRow(1, 3),
		nitro.NewRow(7, 4),
		nitro.NewRow(9, 5),
		nitro.NewRow(4, 6),
	})
	require.NoError(t, err)
	rows, err := runtime.Rows(top.New(octx, in, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, []nitro.Row{
		nitro.NewRow(9, nil),
		nitro.NewRow(9, 5),
		nitro.NewRow(7, 4),
		nitro.NewRow(4, 6),
	}, rows)
}

func TestTopNFewerRows(t *testing.T) {
	octx := op.DefaultContext()
	odd := filter.I64(func(v int64) bool { return v%2 == 1 })
	in := filter.New(generator.New(octx, 8, 3, generator.Sequence(0)), 0, odd)
	rows, err := runtime.Rows(top.New(octx, in, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, []nitro.Row{nitro.Ints(7), nitro.Ints(5), nitro.Ints(3), nitro.Ints(1)}, rows)
}

func TestTopNEmpty(t *testing.T) {
	octx := op.DefaultContext()
	rows, err := runtime.Rows(top.New(octx, generator.New(octx, 0, 0, generator.Sequence(0)), 0, 3))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = runtime.Rows(top.New(octx, generator.New(octx, 10, 0, generator.Sequence(0)), 0, 0))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTopNLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	octx := op.NewContext(zap.New(core), nil)
	gen := generator.New(octx, 100, 0, generator.SequenceRange(0, 10))
	tp := top.New(octx, gen, 0, 3)
	require.True(t, tp.HasNext())
	mask := tp.Next()
	assert.Equal(t, 3, mask.Count())
	require.NoError(t, tp.Close())
	entries := logs.FilterMessage("top").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
}
