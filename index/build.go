package index

import (
	"bytes"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/bloomfilter"
	"github.com/iqbal-lab-org/bigsi-go/build"
	"github.com/iqbal-lab-org/bigsi-go/internal/bigsilog"
	"github.com/iqbal-lab-org/bigsi-go/storage"
)

// BuildFromBlooms builds a fresh index from N per-sample Bloom filters,
// all sharing (m, h), and a parallel sample-name list. It is the
// small/medium-scale build path: a special case of LargeBuild where each
// input matrix has exactly one column.
func BuildFromBlooms(blooms []*bloomfilter.BloomFilter, names []string, k int, store storage.Storage) (*Index, error) {
	sources := make([]bitmatrix.Source, len(blooms))
	m, h := blooms[0].M(), blooms[0].H()

	for i, bf := range blooms {
		var buf bytes.Buffer
		w, err := bitmatrix.NewWriter(&buf, int(m), 1)
		if err != nil {
			return nil, err
		}
		for r := uint(0); r < m; r++ {
			if err := w.Write(bitmatrix.BoolRow{bf.Bit(r)}); err != nil {
				return nil, err
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		sources[i] = bitmatrix.Source{In: bytes.NewReader(buf.Bytes()), Cols: 1}
	}

	bigsilog.L().Info("building index from bloom filters", "samples", len(blooms), "rows", m)

	params := build.Params{NumHashes: int(h), BloomFilterM: int(m)}
	if err := build.LargeBuild(sources, int(m), names, params, store); err != nil {
		return nil, err
	}

	return Open(store, k)
}
