package limit_test

import (
	"testing"

	"github.com/brimdata/nitro"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/runtime"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/brimdata/nitro/runtime/op/generator"
	"github.com/brimdata/nitro/runtime/op/limit"
	"github.com/brimdata/nitro/runtime/op/mock"
	"github.com/brimdata/nitro/vector"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int64) []nitro.Row {
	var rows []nitro.Row
	for i := int64(0); i < n; i++ {
		rows = append(rows, nitro.Ints(i))
	}
	return rows
}

func TestLimit(t *testing.T) {
	cases := []struct {
		name  string
		rows  int64
		limit int64
		out   int64
	}{
		{"within first batch", 50, 5, 5},
		{"middle of second batch", 50, 15, 15},
		{"beyond end of source", 12, 15, 12},
		{"zero", 50, 0, 0},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			g := generator.New(op.DefaultContext(), c.rows, 10, generator.Sequence(0))
			rows, err := runtime.Rows(limit.New(g, c.limit))
			require.NoError(t, err)
			assert.Equal(t, sequence(c.out), rows)
		})
	}
}

func TestStopsPulling(t *testing.T) {
	g := generator.New(op.DefaultContext(), 50, 10, generator.Sequence(0))
	l := limit.New(g, 10)
	assert.Equal(t, 10, l.Next().Count())
	assert.False(t, l.HasNext())
	assert.True(t, g.HasNext())
	var err error
	func() {
		defer errors.Recover(&err)
		l.Next()
	}()
	assert.True(t, errors.Is(err, errors.IllegalState))
}

func TestConstrainsParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	parent := mock.NewMockOperator(ctrl)
	parent.EXPECT().HasNext().Return(true).Times(2)
	parent.EXPECT().Next().Return(vector.Sparse([]int{2, 4, 6}))
	parent.EXPECT().Constrain(vector.Sparse([]int{2, 4, 6}))
	parent.EXPECT().Next().Return(vector.All(10))
	parent.EXPECT().Constrain(vector.Range(0, 1))

	l := limit.New(parent, 4)
	assert.Equal(t, 3, l.Next().Count())
	assert.Equal(t, 1, l.Next().Count())
	assert.False(t, l.HasNext())
}
