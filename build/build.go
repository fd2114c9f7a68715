// Package build assembles a persisted BIGSI from one or more packed
// bit-matrix sources, batching row writes so the whole m-row matrix is
// never held in memory at once.
package build

import (
	"io"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/internal/bigsilog"
	"github.com/iqbal-lab-org/bigsi-go/metadata"
	"github.com/iqbal-lab-org/bigsi-go/storage"
)

// InsertBatchSize bounds how many rows accumulate in memory between
// Storage.SetBitarrays calls during LargeBuild.
const InsertBatchSize = 1000

// Params carries the dimensions common to every index built from the same
// set of bit-matrix sources. BatchSize overrides InsertBatchSize when
// nonzero; tests use this to exercise batching on small inputs.
type Params struct {
	NumHashes    int
	BloomFilterM int
	BatchSize    int
}

// LargeBuild concatenates sources horizontally into an m-row matrix, and
// writes it into store one InsertBatchSize-row batch at a time, calling
// Sync after each batch. It registers names under metadata in source
// order and records the final dimensions so later reads don't need to
// recompute them.
func LargeBuild(sources []bitmatrix.Source, rows int, names []string, params Params, store storage.Storage) error {
	gr, err := bitmatrix.OpenGroupReader(sources, rows)
	if err != nil {
		return err
	}
	defer gr.Close()

	batchSize := params.BatchSize
	if batchSize == 0 {
		batchSize = InsertBatchSize
	}

	keys := make([]int, 0, batchSize)
	batch := make([][]byte, 0, batchSize)

	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		if err := store.SetBitarrays(keys, batch); err != nil {
			return err
		}
		if err := store.Sync(); err != nil {
			return err
		}
		keys = keys[:0]
		batch = batch[:0]
		return nil
	}

	for row := 0; ; row++ {
		bits, err := gr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		keys = append(keys, row)
		batch = append(batch, bitmatrix.PackRow(bits, gr.Cols()))

		if len(keys) == batchSize {
			n := len(keys)
			if err := flush(); err != nil {
				return err
			}
			bigsilog.L().Info("large build: batch synced", "rows", n, "up_to_row", row)
		}
	}
	if err := flush(); err != nil {
		return err
	}

	meta := metadata.New(store)
	if err := meta.AddSamples(names); err != nil {
		return err
	}

	if err := store.SetInteger("number_of_rows", int64(rows)); err != nil {
		return err
	}
	if err := store.SetInteger("number_of_cols", int64(gr.Cols())); err != nil {
		return err
	}
	if err := store.SetInteger("bloomfilter_size", int64(params.BloomFilterM)); err != nil {
		return err
	}
	if err := store.SetInteger("num_hashes", int64(params.NumHashes)); err != nil {
		return err
	}
	// Legacy aliases kept for readers of indices built by the original
	// ksi-prefixed format.
	if err := store.SetInteger("ksi:bloomfilter_size", int64(params.BloomFilterM)); err != nil {
		return err
	}
	if err := store.SetInteger("ksi:num_hashes", int64(params.NumHashes)); err != nil {
		return err
	}

	return store.Sync()
}
