package hnsw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEmptyIndexReturnsNil(t *testing.T) {
	idx := newTestIndex(t, 4)
	results := idx.Search([]float32{1, 2, 3, 4}, 5, 10)
	assert.Nil(t, results)
}

func TestSearchFindsExactMatch(t *testing.T) {
	idx := newTestIndex(t, 8)
	vecs := randomVectors(10, 200, 8)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}

	target := vecs[42]
	results := idx.Search(target, 1, 64)
	require.Len(t, results, 1)
	assert.Equal(t, int32(42), results[0].ID)
	assert.InDelta(t, 0, results[0].Distance, 1e-4)
}

func TestSearchResultsAreAscendingByDistance(t *testing.T) {
	idx := newTestIndex(t, 8)
	vecs := randomVectors(11, 300, 8)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}

	results := idx.Search(vecs[0], 10, 64)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
}

func TestSearchRespectsK(t *testing.T) {
	idx := newTestIndex(t, 8)
	vecs := randomVectors(12, 300, 8)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}

	results := idx.Search(vecs[0], 5, 64)
	assert.LessOrEqual(t, len(results), 5)
}

func TestSearchRecallAgainstBruteForce(t *testing.T) {
	idx := newTestIndex(t, 16)
	vecs := randomVectors(13, 1000, 16)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}

	query := randomVectors(99, 1, 16)[0]

	bruteForce := func(q []float32, k int) []int32 {
		type scored struct {
			id   int32
			dist float32
		}
		all := make([]scored, len(vecs))
		for i, v := range vecs {
			var d float32
			for j := range v {
				diff := v[j] - q[j]
				d += diff * diff
			}
			all[i] = scored{int32(i), d}
		}
		for i := 0; i < k; i++ {
			best := i
			for j := i + 1; j < len(all); j++ {
				if all[j].dist < all[best].dist {
					best = j
				}
			}
			all[i], all[best] = all[best], all[i]
		}
		out := make([]int32, k)
		for i := 0; i < k; i++ {
			out[i] = all[i].id
		}
		return out
	}

	const k = 10
	want := bruteForce(query, k)
	got := idx.Search(query, k, 128)

	wantSet := make(map[int32]struct{}, k)
	for _, id := range want {
		wantSet[id] = struct{}{}
	}

	hits := 0
	for _, r := range got {
		if _, ok := wantSet[r.ID]; ok {
			hits++
		}
	}

	// HNSW is approximate; with ef well above k on a middling-size corpus,
	// recall should be high but need not be perfect.
	assert.GreaterOrEqual(t, hits, k*7/10)
}
