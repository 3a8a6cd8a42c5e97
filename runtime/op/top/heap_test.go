package top

import (
	"math"
	"testing"

	"github.com/brimdata/nitro/vector"
	"github.com/stretchr/testify/assert"
)

func TestSelectorSkipsNaN(t *testing.T) {
	vals := []float64{1, math.NaN(), 5, 3, math.NaN(), 4}
	keys := vector.NewFloat(len(vals))
	for i, v := range vals {
		keys.Set(i, v)
	}
	s := newSelector(vector.Float64, 2)
	bySlot := map[int]float64{}
	for pos := range vals {
		if slot, ok := s.offer(keys, pos, int64(pos)); ok {
			bySlot[slot] = vals[pos]
		}
	}
	assert.Equal(t, 2, s.len())
	var top []float64
	for _, slot := range s.drain() {
		top = append(top, bySlot[slot])
	}
	assert.Equal(t, []float64{5, 4}, top)
}
