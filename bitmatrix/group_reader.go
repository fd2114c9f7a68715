package bitmatrix

import (
	"errors"
	"io"

	"github.com/bits-and-blooms/bitset"
)

// Source describes one input matrix to a GroupReader: either an already
// open io.Reader, or a path to open internally. Cols is that matrix's
// column count.
type Source struct {
	Path string
	In   io.Reader
	Cols int
}

// GroupReader virtually concatenates several same-row-count bit matrices
// horizontally: each Next() advances every sub-reader by one row and
// concatenates the results left-to-right in the order Sources were given.
// It opens all inputs at construction and closes all of them on Close,
// even if construction or a later read fails.
type GroupReader struct {
	readers []*Reader
	rows    int
}

// OpenGroupReader opens every source and returns a GroupReader over them.
// All sub-readers share rows; a mismatched source size is caught by that
// source's own Reader construction (bigsierr.ErrMalformedMatrixFile).
func OpenGroupReader(sources []Source, rows int) (*GroupReader, error) {
	if len(sources) == 0 {
		return nil, errEmptyGroup
	}
	readers := make([]*Reader, 0, len(sources))
	for _, s := range sources {
		var (
			rr  *Reader
			err error
		)
		if s.In != nil {
			rr, err = NewReader(s.In, rows, s.Cols)
		} else {
			rr, err = NewReaderFile(s.Path, rows, s.Cols)
		}
		if err != nil {
			closeAll(readers)
			return nil, err
		}
		readers = append(readers, rr)
	}
	return &GroupReader{readers: readers, rows: rows}, nil
}

func closeAll(readers []*Reader) {
	for _, r := range readers {
		r.Close()
	}
}

// Rows returns the shared declared row count.
func (g *GroupReader) Rows() int { return g.rows }

// Cols returns the total width: the sum of every source's column count.
func (g *GroupReader) Cols() int {
	total := 0
	for _, r := range g.readers {
		total += r.Cols()
	}
	return total
}

// Next returns the next concatenated row, or io.EOF once Rows rows have
// been produced by every sub-reader.
func (g *GroupReader) Next() (*bitset.BitSet, error) {
	result := bitset.New(uint(g.Cols()))
	offset := uint(0)
	for _, r := range g.readers {
		row, err := r.Next()
		if err != nil {
			return nil, err
		}
		for c := uint(0); c < uint(r.Cols()); c++ {
			if row.Test(c) {
				result.Set(offset + c)
			}
		}
		offset += uint(r.Cols())
	}
	return result, nil
}

// Close closes every sub-reader and returns the first error encountered,
// if any, after attempting to close all of them.
func (g *GroupReader) Close() error {
	var firstErr error
	for _, r := range g.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return nil
}

var errEmptyGroup = errors.New("bitmatrix: group reader has no sources")
