package index

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/hasher"
)

// SearchResult is one matched sample from a Search call.
type SearchResult struct {
	SampleName        string
	NumKmers          int
	PercentKmersFound float64
	Score             float64
}

// Search derives the query's k-mers, ANDs their hash rows, and reports
// every sample whose fraction of matched k-mers meets threshold. A query
// shorter than k yields an empty (nil) result and no error. When
// contiguous is true, Score is instead the fraction of k-mers belonging
// to the longest run of consecutively-present k-mers for that sample;
// PercentKmersFound always reports the simple count/K fraction.
func (idx *Index) Search(seq string, threshold float64, contiguous bool) ([]SearchResult, error) {
	if err := idx.requireBuilt(); err != nil {
		return nil, err
	}

	k := idx.k
	l := len(seq)
	if l < k {
		return nil, nil
	}
	numKmers := l - k + 1

	positions := make([][]int, numKmers)
	rowKeySet := make(map[int]struct{})
	for i := 0; i < numKmers; i++ {
		pos := hasher.Positions(seq[i:i+k], idx.h, idx.m)
		positions[i] = pos
		for _, p := range pos {
			rowKeySet[p] = struct{}{}
		}
	}

	rowKeys := make([]int, 0, len(rowKeySet))
	for key := range rowKeySet {
		rowKeys = append(rowKeys, key)
	}
	rawRows, err := idx.store.GetBitarrays(rowKeys)
	if err != nil {
		return nil, err
	}

	s, err := idx.meta.NumSamples()
	if err != nil {
		return nil, err
	}

	rowByKey := make(map[int]bitmatrix.BoolRow, len(rowKeys))
	for i, key := range rowKeys {
		rowByKey[key] = bitmatrix.UnpackRow(rawRows[i], s)
	}

	counts := make([]int, s)
	presentRun := make([]int, s)
	longestRun := make([]int, s)

	for i := 0; i < numKmers; i++ {
		presence := bitset.New(uint(s))
		for c := 0; c < s; c++ {
			present := true
			for _, p := range positions[i] {
				if !rowByKey[p].Test(uint(c)) {
					present = false
					break
				}
			}
			if present {
				presence.Set(uint(c))
			}
		}

		for c := 0; c < s; c++ {
			if presence.Test(uint(c)) {
				counts[c]++
				presentRun[c]++
				if presentRun[c] > longestRun[c] {
					longestRun[c] = presentRun[c]
				}
			} else {
				presentRun[c] = 0
			}
		}
	}

	var results []SearchResult
	for c := 0; c < s; c++ {
		if counts[c] == 0 {
			continue
		}
		percent := float64(counts[c]) / float64(numKmers)
		if percent < threshold {
			continue
		}

		name, err := idx.meta.GetName(c)
		if err != nil {
			return nil, err
		}

		score := percent
		if contiguous {
			score = float64(longestRun[c]) / float64(numKmers)
		}

		results = append(results, SearchResult{
			SampleName:        name,
			NumKmers:          numKmers,
			PercentKmersFound: percent,
			Score:             score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].SampleName < results[j].SampleName
	})

	return results, nil
}
