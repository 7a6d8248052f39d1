package queue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinQueueOrdersAscending(t *testing.T) {
	q := NewMin(8)
	for _, d := range []float32{5, 1, 4, 2, 3} {
		q.Push(Item{Distance: d})
	}

	var out []float32
	for q.Len() > 0 {
		it, ok := q.Pop()
		require.True(t, ok)
		out = append(out, it.Distance)
	}
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, out)
}

func TestMaxQueueOrdersDescending(t *testing.T) {
	q := NewMax(8)
	for _, d := range []float32{5, 1, 4, 2, 3} {
		q.Push(Item{Distance: d})
	}

	var out []float32
	for q.Len() > 0 {
		it, ok := q.Pop()
		require.True(t, ok)
		out = append(out, it.Distance)
	}
	assert.Equal(t, []float32{5, 4, 3, 2, 1}, out)
}

func TestTopDoesNotRemove(t *testing.T) {
	q := NewMin(4)
	q.Push(Item{Distance: 2})
	q.Push(Item{Distance: 1})

	top, ok := q.Top()
	require.True(t, ok)
	assert.Equal(t, float32(1), top.Distance)
	assert.Equal(t, 2, q.Len())
}

func TestSortedDrainsAscending(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewMax(100)
	for i := 0; i < 100; i++ {
		q.Push(Item{Node: int32(i), Distance: rng.Float32() * 1000})
	}

	sorted := q.Sorted()
	require.Len(t, sorted, 100)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Distance, sorted[i].Distance)
	}
	assert.Equal(t, 0, q.Len())
}

func TestPopEmpty(t *testing.T) {
	q := NewMin(1)
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestMinOnMaxQueueScans(t *testing.T) {
	q := NewMax(4)
	q.Push(Item{Node: 1, Distance: 5})
	q.Push(Item{Node: 2, Distance: 1})
	q.Push(Item{Node: 3, Distance: 3})

	min, ok := q.Min()
	require.True(t, ok)
	assert.Equal(t, int32(2), min.Node)
}
