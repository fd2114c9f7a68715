package index

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/bloomfilter"
	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
)

// InsertSample appends one sample to the index: for each of the m rows,
// it reads the stored row, appends the new filter's bit for that row, and
// writes the row back, then registers the sample name at the next
// colour. This is an O(m) read-modify-write path intended for small,
// occasional additions rather than bulk builds.
func (idx *Index) InsertSample(name string, bf *bloomfilter.BloomFilter) error {
	if err := idx.requireBuilt(); err != nil {
		return err
	}
	if int(bf.M()) != idx.m || int(bf.H()) != idx.h {
		return bigsierr.ErrDimensionMismatch
	}

	if _, err := idx.meta.GetColour(name); err == nil {
		return bigsierr.ErrDuplicateSample
	}

	s, err := idx.meta.NumSamples()
	if err != nil {
		return err
	}

	keys := make([]int, idx.m)
	rows := make([][]byte, idx.m)

	for r := 0; r < idx.m; r++ {
		raw, err := idx.store.GetBitarray(r)
		if err != nil {
			return err
		}
		old := bitmatrix.UnpackRow(raw, s)

		grown := bitset.New(uint(s + 1))
		for c := 0; c < s; c++ {
			if old.Test(uint(c)) {
				grown.Set(uint(c))
			}
		}
		if bf.Bit(uint(r)) {
			grown.Set(uint(s))
		}

		keys[r] = r
		rows[r] = bitmatrix.PackRow(grown, s+1)
	}

	if err := idx.store.SetBitarrays(keys, rows); err != nil {
		return err
	}
	if err := idx.meta.AddSamples([]string{name}); err != nil {
		return err
	}
	if err := idx.store.SetInteger("number_of_cols", int64(s+1)); err != nil {
		return err
	}
	return idx.store.Sync()
}
