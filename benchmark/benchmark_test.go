package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportsLatenciesAndRecall(t *testing.T) {
	res, err := Run(context.Background(), Config{
		Dim:           8,
		NumVectors:    200,
		NumQueries:    20,
		K:             5,
		Ef:            32,
		Seed:          1,
		ComputeRecall: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 200, res.NumVectors)
	assert.Equal(t, 20, res.NumQueries)
	assert.GreaterOrEqual(t, res.RecallAtK, 0.0)
	assert.LessOrEqual(t, res.RecallAtK, 1.0)
	assert.GreaterOrEqual(t, res.LatencyP99, res.LatencyP50)
}

func TestRunWithoutRecallLeavesItUnset(t *testing.T) {
	res, err := Run(context.Background(), Config{
		Dim:        8,
		NumVectors: 50,
		NumQueries: 5,
		K:          3,
		Ef:         16,
		Seed:       2,
	})
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.RecallAtK)
}

func TestRunWithRateLimit(t *testing.T) {
	res, err := Run(context.Background(), Config{
		Dim:              4,
		NumVectors:       30,
		NumQueries:       5,
		K:                2,
		Ef:               8,
		Seed:             3,
		QueriesPerSecond: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.NumQueries)
}
