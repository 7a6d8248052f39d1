package hnsw

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sant0-9/VectorVault/distance"
)

func randomVectors(seed int64, n, dim int) [][]float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, dim)
		for j := range v {
			v[j] = rng.Float32()*2 - 1
		}
		out[i] = v
	}
	return out
}

func newTestIndex(t *testing.T, dim int) *Index {
	t.Helper()
	idx, err := New(dim, func(o *Options) { o.M = 8 })
	require.NoError(t, err)
	return idx
}

func TestAddFirstNodeBecomesEntry(t *testing.T) {
	idx := newTestIndex(t, 4)
	require.NoError(t, idx.Add(1, []float32{1, 2, 3, 4}))

	assert.Equal(t, int32(1), idx.entry)
	assert.Equal(t, 1, idx.Size())
}

func TestAddRejectsDimensionMismatch(t *testing.T) {
	idx := newTestIndex(t, 4)
	err := idx.Add(1, []float32{1, 2, 3})
	require.Error(t, err)
	var dimErr *DimensionMismatchError
	assert.ErrorAs(t, err, &dimErr)
}

func TestAddRejectsDuplicateID(t *testing.T) {
	idx := newTestIndex(t, 4)
	require.NoError(t, idx.Add(1, []float32{1, 2, 3, 4}))
	err := idx.Add(1, []float32{4, 3, 2, 1})
	require.Error(t, err)
	var dupErr *DuplicateIDError
	assert.ErrorAs(t, err, &dupErr)
}

func TestAddManyVectorsGrowsEntryPoint(t *testing.T) {
	idx := newTestIndex(t, 16)
	vecs := randomVectors(1, 500, 16)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}
	assert.Equal(t, 500, idx.Size())
	assert.Greater(t, idx.MaxLevel(), 0)
}

func TestNeighborListsRespectDegreeCap(t *testing.T) {
	idx := newTestIndex(t, 8)
	vecs := randomVectors(2, 300, 8)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}

	for _, n := range idx.nodes {
		for layer, neighbors := range n.Neighbors {
			maxDegree := idx.maxMForLevel(layer)
			assert.LessOrEqualf(t, len(neighbors), maxDegree, "node %d layer %d exceeds cap", n.ID, layer)
		}
	}
}

func TestAddWithAngularMetric(t *testing.T) {
	idx, err := New(4, func(o *Options) {
		o.M = 8
		o.Metric = distance.Angular
	})
	require.NoError(t, err)

	vecs := randomVectors(3, 50, 4)
	for i, v := range vecs {
		require.NoError(t, idx.Add(int32(i), v))
	}
	assert.Equal(t, 50, idx.Size())
}
