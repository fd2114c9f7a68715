// Package index implements the BIGSI index itself: the persisted
// (m, h, S) bit matrix plus the sample-colour mapping, and the build,
// insert, merge, and search operations over it.
package index

import (
	"errors"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
	"github.com/iqbal-lab-org/bigsi-go/metadata"
	"github.com/iqbal-lab-org/bigsi-go/storage"
)

var errNotBuilt = errors.New("index has not been built yet")

// Index is a handle onto one persisted BIGSI: a store plus the
// dimensions (m, h, S) read from it and the k used to split query
// sequences into k-mers. Index is single-threaded per handle, matching
// the core's "no shared mutable state" scheduling model; concurrent
// querying is done by giving each worker its own Index over its own
// Storage handle (see BulkSearch).
type Index struct {
	store storage.Storage
	meta  *metadata.SampleMetadata
	k     int
	m     int
	h     int
}

// Open returns an Index handle over store, using k to split future query
// sequences into k-mers. m and h are read back from the store's metadata
// keys; an empty store (nothing built yet) yields an Index with m=h=0,
// usable only as a target for BuildFromBlooms.
func Open(store storage.Storage, k int) (*Index, error) {
	idx := &Index{store: store, meta: metadata.New(store), k: k}

	if m, err := store.GetInteger("bloomfilter_size"); err == nil {
		idx.m = int(m)
	}
	if h, err := store.GetInteger("num_hashes"); err == nil {
		idx.h = int(h)
	}
	return idx, nil
}

// K returns the k-mer length this handle splits query sequences into.
func (idx *Index) K() int { return idx.k }

// M returns the Bloom filter width (row count).
func (idx *Index) M() int { return idx.m }

// H returns the number of hash functions.
func (idx *Index) H() int { return idx.h }

// NumSamples returns the current column count S.
func (idx *Index) NumSamples() (int, error) {
	return idx.meta.NumSamples()
}

// SampleNames returns every registered sample name, ordered by colour.
func (idx *Index) SampleNames() ([]string, error) {
	return idx.meta.List()
}

func (idx *Index) requireBuilt() error {
	if idx.m == 0 || idx.h == 0 {
		return bigsierr.Storage("open", errNotBuilt)
	}
	return nil
}
