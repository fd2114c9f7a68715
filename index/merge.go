package index

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
)

// Merge appends other's columns onto idx. Both indices must share (m, h);
// a mismatch is rejected with bigsierr.ErrDimensionMismatch. Sample-name
// collisions between the two are rejected with bigsierr.ErrDuplicateSample
// before any row is touched, so a rejected merge leaves idx unchanged.
func (idx *Index) Merge(other *Index) error {
	if err := idx.requireBuilt(); err != nil {
		return err
	}
	if err := other.requireBuilt(); err != nil {
		return err
	}
	if idx.m != other.m || idx.h != other.h {
		return bigsierr.ErrDimensionMismatch
	}

	myNames, err := idx.meta.List()
	if err != nil {
		return err
	}
	otherNames, err := other.meta.List()
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(myNames))
	for _, n := range myNames {
		seen[n] = struct{}{}
	}
	for _, n := range otherNames {
		if _, dup := seen[n]; dup {
			return bigsierr.ErrDuplicateSample
		}
	}

	s1 := len(myNames)
	s2 := len(otherNames)

	keys := make([]int, idx.m)
	rows := make([][]byte, idx.m)

	for r := 0; r < idx.m; r++ {
		mine, err := idx.store.GetBitarray(r)
		if err != nil {
			return err
		}
		theirs, err := other.store.GetBitarray(r)
		if err != nil {
			return err
		}
		myRow := bitmatrix.UnpackRow(mine, s1)
		theirRow := bitmatrix.UnpackRow(theirs, s2)

		merged := bitset.New(uint(s1 + s2))
		for c := 0; c < s1; c++ {
			if myRow.Test(uint(c)) {
				merged.Set(uint(c))
			}
		}
		for c := 0; c < s2; c++ {
			if theirRow.Test(uint(c)) {
				merged.Set(uint(s1 + c))
			}
		}

		keys[r] = r
		rows[r] = bitmatrix.PackRow(merged, s1+s2)
	}

	if err := idx.store.SetBitarrays(keys, rows); err != nil {
		return err
	}
	if err := idx.meta.AddSamples(otherNames); err != nil {
		return err
	}
	if err := idx.store.SetInteger("number_of_cols", int64(s1+s2)); err != nil {
		return err
	}
	return idx.store.Sync()
}
