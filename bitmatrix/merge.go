package bitmatrix

import "io"

// Merge materializes the horizontal concatenation of several bit matrices
// into a single sink: rows rows by the sum of each source's column count.
// It writes no metadata of its own; it is purely a bit-layout
// transformation, mirroring the original merge_blooms command.
func Merge(sources []Source, rows int, out io.Writer) error {
	group, err := OpenGroupReader(sources, rows)
	if err != nil {
		return err
	}
	defer group.Close()

	writer, err := NewWriter(out, rows, group.Cols())
	if err != nil {
		return err
	}
	defer writer.Close()

	for i := 0; i < rows; i++ {
		row, err := group.Next()
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// MergeToFile is the file-path convenience form used by the CLI's
// merge-blooms subcommand.
func MergeToFile(sources []Source, rows int, outPath string) error {
	group, err := OpenGroupReader(sources, rows)
	if err != nil {
		return err
	}
	defer group.Close()

	writer, err := NewWriterFile(outPath, rows, group.Cols())
	if err != nil {
		return err
	}
	defer writer.Close()

	for i := 0; i < rows; i++ {
		row, err := group.Next()
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
