package hnsw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sant0-9/VectorVault/distance"
)

func buildIndex(t *testing.T, n, dim int) *Index {
	t.Helper()
	idx := newTestIndex(t, dim)
	for i, v := range randomVectors(21, n, dim) {
		require.NoError(t, idx.Add(int32(i), v))
	}
	return idx
}

func TestSaveLoadRoundTripPreservesSearchResults(t *testing.T) {
	idx := buildIndex(t, 300, 16)
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, idx.Save(path))

	reloaded := newTestIndex(t, 16)
	require.NoError(t, reloaded.Load(path))

	assert.Equal(t, idx.Size(), reloaded.Size())
	assert.Equal(t, idx.MaxLevel(), reloaded.MaxLevel())

	query := randomVectors(77, 1, 16)[0]
	want := idx.Search(query, 10, 64)
	got := reloaded.Search(query, 10, 64)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.InDelta(t, want[i].Distance, got[i].Distance, 1e-6)
	}
}

func TestLoadPreservesLiveIndexOnBadMagic(t *testing.T) {
	idx := buildIndex(t, 50, 8)
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, idx.Save(path))

	corrupted := idx.encode()
	corrupted[0] ^= 0xFF
	badPath := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(badPath, corrupted, 0o644))

	liveCopy := buildIndex(t, 50, 8)
	err := liveCopy.Load(badPath)
	require.Error(t, err)
	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)

	assert.Equal(t, 50, liveCopy.Size())
}

func TestLoadDetectsCrcMismatch(t *testing.T) {
	idx := buildIndex(t, 20, 4)
	buf := idx.encode()
	buf[len(buf)-1] ^= 0xFF // corrupt the trailing CRC byte

	path := filepath.Join(t.TempDir(), "crc.bin")
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	fresh := newTestIndex(t, 4)
	err := fresh.Load(path)
	require.Error(t, err)
	var crcErr *CrcMismatchError
	assert.ErrorAs(t, err, &crcErr)
}

func TestLoadRejectsDimensionMismatch(t *testing.T) {
	idx := buildIndex(t, 10, 8)
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	require.NoError(t, idx.Save(path))

	wrongDim := newTestIndex(t, 16)
	err := wrongDim.Load(path)
	require.Error(t, err)
	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestSaveLoadEmptyIndex(t *testing.T) {
	idx := newTestIndex(t, 4)
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, idx.Save(path))

	reloaded := newTestIndex(t, 4)
	require.NoError(t, reloaded.Load(path))
	assert.Equal(t, 0, reloaded.Size())
	assert.Equal(t, -1, reloaded.MaxLevel())
}

func TestMetricSurvivesLoadAcrossConstructorMismatch(t *testing.T) {
	idx, err := New(8, func(o *Options) {
		o.M = 8
		o.Metric = distance.Angular
	})
	require.NoError(t, err)
	for i, v := range randomVectors(5, 40, 8) {
		require.NoError(t, idx.Add(int32(i), v))
	}

	path := filepath.Join(t.TempDir(), "angular.bin")
	require.NoError(t, idx.Save(path))

	l2Index := newTestIndex(t, 8) // constructed with L2, not Angular
	require.NoError(t, l2Index.Load(path))
	assert.Equal(t, distance.Angular, l2Index.params.Metric)
}
