package vectorvault

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sant0-9/VectorVault/hnsw"
)

func TestTranslateCoreErrorNil(t *testing.T) {
	assert.NoError(t, translateCoreError(nil))
}

func TestTranslateDuplicateID(t *testing.T) {
	err := translateCoreError(&hnsw.DuplicateIDError{ID: 7})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestTranslateDimensionMismatch(t *testing.T) {
	err := translateCoreError(&hnsw.DimensionMismatchError{Expected: 4, Actual: 8})
	var dimErr *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 4, dimErr.Expected)
	assert.Equal(t, 8, dimErr.Actual)
}

func TestTranslateUnrecognizedErrorPassesThrough(t *testing.T) {
	other := assertError{"boom"}
	assert.Equal(t, other, translateCoreError(other))
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
