package bitmatrix

import (
	"io"
	"os"

	"github.com/bits-and-blooms/bitset"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
)

// Reader produces a lazy, finite, non-restartable sequence of rows read
// from a packed bit-matrix source, buffering up to RowsPerSlice rows per
// underlying read.
type Reader struct {
	in         io.Reader
	closer     io.Closer
	rows, cols int
	read       int
	sliceRows  int
	sliceLeft  int
	slice      *bitReader
}

// NewReader constructs a Reader over an already-open source, validating its
// byte size against (rows, cols) per the packed-format invariant: valid iff
// (size-1)*8 < rows*cols <= size*8. Sources whose size cannot be determined
// (see detectSize) skip the check.
func NewReader(in io.Reader, rows, cols int) (*Reader, error) {
	if size, ok := detectSize(in); ok {
		totalBits := int64(rows) * int64(cols)
		if totalBits <= (size-1)*8 || totalBits > size*8 {
			return nil, bigsierr.ErrMalformedMatrixFile
		}
	}
	closer, _ := in.(io.Closer)
	return &Reader{in: in, closer: closer, rows: rows, cols: cols}, nil
}

// NewReaderFile opens path and returns a Reader over it. Close on the
// returned Reader also closes the file.
func NewReaderFile(path string, rows, cols int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, rows, cols)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Rows returns the declared row count.
func (r *Reader) Rows() int { return r.rows }

// Cols returns the declared column count.
func (r *Reader) Cols() int { return r.cols }

// Next returns the next row, or io.EOF once all Rows rows have been
// produced. A subsequent call after io.EOF also returns io.EOF.
func (r *Reader) Next() (*bitset.BitSet, error) {
	if r.read >= r.rows {
		return nil, io.EOF
	}

	if r.sliceRows == 0 {
		rowsInSlice := RowsPerSlice
		if left := r.rows - r.read; left < rowsInSlice {
			rowsInSlice = left
		}
		nbytes := (rowsInSlice*r.cols + 7) / 8
		buf := make([]byte, nbytes)
		if _, err := io.ReadFull(r.in, buf); err != nil {
			return nil, err
		}
		r.slice = &bitReader{buf: buf}
		r.sliceRows = rowsInSlice
		r.sliceLeft = rowsInSlice
	}

	row := bitset.New(uint(r.cols))
	for c := 0; c < r.cols; c++ {
		if r.slice.readBit() {
			row.Set(uint(c))
		}
	}

	r.read++
	r.sliceLeft--
	if r.sliceLeft == 0 {
		r.sliceRows = 0
		r.slice = nil
	}

	return row, nil
}

// Close releases the underlying source if this Reader owns it.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
