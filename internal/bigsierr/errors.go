// Package bigsierr collects the sentinel errors the core surfaces at its
// API boundary. Callers use errors.Is/errors.As; the core performs no
// internal retries.
package bigsierr

import "errors"

var (
	// ErrMalformedMatrixFile is returned when a bit-matrix source's byte
	// size is inconsistent with its declared (rows, cols).
	ErrMalformedMatrixFile = errors.New("bigsi: malformed bit matrix file")

	// ErrMatrixOverflow is returned when a writer receives more than its
	// declared number of rows.
	ErrMatrixOverflow = errors.New("bigsi: bit matrix write overflow")

	// ErrOutputNotEmpty is returned when a writer is constructed over a
	// non-empty sink.
	ErrOutputNotEmpty = errors.New("bigsi: output is not empty")

	// ErrDimensionMismatch is returned when two indices with differing m
	// or h are merged.
	ErrDimensionMismatch = errors.New("bigsi: dimension mismatch")

	// ErrDuplicateSample is returned when SampleMetadata is asked to add
	// an already-present sample name.
	ErrDuplicateSample = errors.New("bigsi: duplicate sample name")

	// ErrSampleNotFound is returned when a colour or name lookup misses.
	ErrSampleNotFound = errors.New("bigsi: sample not found")

	// ErrKeyNotFound is returned by a Storage backend when a point get
	// misses.
	ErrKeyNotFound = errors.New("bigsi: key not found")
)

// Storage wraps a backend error so callers can distinguish core logic
// errors from passthrough storage failures while still unwrapping to the
// original cause.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storageError{op: op, err: err}
}

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return "bigsi: storage error during " + e.op + ": " + e.err.Error()
}

func (e *storageError) Unwrap() error {
	return e.err
}
