package vectorvault

import (
	"errors"

	"github.com/Sant0-9/VectorVault/hnsw"
)

// translateCoreError maps the hnsw package's internal error kinds onto this
// package's exported ones (spec §7). Errors translateCoreError doesn't
// recognize pass through unchanged.
func translateCoreError(err error) error {
	if err == nil {
		return nil
	}

	var invalid *hnsw.InvalidParamError
	if errors.As(err, &invalid) {
		return &ErrInvalidParameter{Name: invalid.Name, Value: invalid.Value}
	}

	var dimErr *hnsw.DimensionMismatchError
	if errors.As(err, &dimErr) {
		return &ErrDimensionMismatch{Expected: dimErr.Expected, Actual: dimErr.Actual}
	}

	var dupErr *hnsw.DuplicateIDError
	if errors.As(err, &dupErr) {
		return ErrDuplicateID
	}

	var formatErr *hnsw.FormatError
	if errors.As(err, &formatErr) {
		return &ErrFormatError{Reason: formatErr.Reason}
	}

	var crcErr *hnsw.CrcMismatchError
	if errors.As(err, &crcErr) {
		return &ErrCrcMismatch{Got: crcErr.Got, Want: crcErr.Want}
	}

	return err
}
