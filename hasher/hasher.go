// Package hasher implements the deterministic k-mer-to-row-positions
// mapping that every BloomFilter in the index is built from.
package hasher

import (
	"github.com/twmb/murmur3"
)

// Generate returns the h distinct-or-colliding row positions in [0, m) that
// the given k-mer hashes to. Position i is the 32-bit MurmurHash3 (x86_32)
// digest of kmer seeded with i, interpreted as a signed 32-bit integer and
// reduced modulo m with floored (non-negative) arithmetic.
//
// This exact family is fixed by the published test vectors:
//
//	Generate("ATT", 3, 25) == {2, 15, 17}
//	Generate("ATT", 1, 25) == {15}
//	Generate("ATT", 2, 50) == {15, 27}
func Generate(kmer string, h, m int) map[int]struct{} {
	positions := make(map[int]struct{}, h)
	data := []byte(kmer)
	for i := 0; i < h; i++ {
		positions[position(data, i, m)] = struct{}{}
	}
	return positions
}

// Positions is like Generate but returns the h positions in seed order,
// with duplicates preserved. Callers that need to AND/OR individual rows
// rather than de-duplicate (e.g. BloomFilter.Update) use this form.
func Positions(kmer string, h, m int) []int {
	data := []byte(kmer)
	out := make([]int, h)
	for i := 0; i < h; i++ {
		out[i] = position(data, i, m)
	}
	return out
}

func position(data []byte, seed, m int) int {
	digest := int32(murmur3.SeedSum32(uint32(seed), data))
	return floorMod(int(digest), m)
}

// floorMod returns a%m folded into [0, m), matching Python's % semantics
// for negative a (Go's % is truncated, not floored).
func floorMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
