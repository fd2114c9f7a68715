package bitmatrix

import (
	"io"
	"os"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
)

// Writer appends rows to a packed bit-matrix sink, buffering up to
// RowsPerSlice rows in memory before issuing one write per slice. It is a
// scoped resource: Close flushes any buffered partial slice and, if the
// sink was opened by NewWriterFile, closes the underlying file.
type Writer struct {
	out        io.Writer
	closer     io.Closer
	rows, cols int
	written    int
	sliceRows  int
	bw         bitWriter
}

// NewWriter constructs a Writer over an already-open sink that must be
// empty (byte size 0); otherwise it returns bigsierr.ErrOutputNotEmpty.
// Sinks whose size cannot be determined (see detectSize) are accepted
// without the precondition check.
func NewWriter(out io.Writer, rows, cols int) (*Writer, error) {
	if size, ok := detectSize(out); ok && size > 0 {
		return nil, bigsierr.ErrOutputNotEmpty
	}
	closer, _ := out.(io.Closer)
	return &Writer{out: out, closer: closer, rows: rows, cols: cols}, nil
}

// NewWriterFile creates a fresh, empty file at path and returns a Writer
// over it. Close on the returned Writer also closes the file.
func NewWriterFile(path string, rows, cols int) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{out: f, closer: f, rows: rows, cols: cols}, nil
}

// Write appends one row of exactly Cols bits. It fails with
// bigsierr.ErrMatrixOverflow if called more than Rows times.
func (w *Writer) Write(row Row) error {
	if w.written >= w.rows {
		return bigsierr.ErrMatrixOverflow
	}

	for c := 0; c < w.cols; c++ {
		w.bw.writeBit(row.Test(uint(c)))
	}
	w.written++
	w.sliceRows++

	if w.sliceRows == RowsPerSlice || w.written == w.rows {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if w.bw.bitLen == 0 {
		return nil
	}
	if _, err := w.out.Write(w.bw.bytes()); err != nil {
		return err
	}
	w.bw.reset()
	w.sliceRows = 0
	return nil
}

// Rows returns the declared row count.
func (w *Writer) Rows() int { return w.rows }

// Cols returns the declared column count.
func (w *Writer) Cols() int { return w.cols }

// Close flushes any buffered partial slice and closes the underlying sink
// if this Writer owns it.
func (w *Writer) Close() error {
	flushErr := w.flush()
	var closeErr error
	if w.closer != nil {
		closeErr = w.closer.Close()
	}
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
