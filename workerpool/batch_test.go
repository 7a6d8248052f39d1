package workerpool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vectorvault "github.com/Sant0-9/VectorVault"
)

func TestBatchSearchRunsAllQueries(t *testing.T) {
	ctx := context.Background()
	idx, err := vectorvault.New(4, vectorvault.WithM(4))
	require.NoError(t, err)
	require.NoError(t, idx.Add(ctx, 1, []float32{1, 2, 3, 4}))
	require.NoError(t, idx.Add(ctx, 2, []float32{4, 3, 2, 1}))

	pool := New(2, 0)
	defer pool.Close()

	queries := []BatchQuery{
		{Vector: []float32{1, 2, 3, 4}, K: 1, Ef: 10},
		{Vector: []float32{4, 3, 2, 1}, K: 1, Ef: 10},
	}
	results, err := BatchSearch(ctx, pool, idx, queries)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, int32(1), results[0].Results[0].ID)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, int32(2), results[1].Results[0].ID)
}
