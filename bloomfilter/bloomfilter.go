// Package bloomfilter implements the per-sample Bloom filter that backs one
// column of the BIGSI bit matrix.
package bloomfilter

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/iqbal-lab-org/bigsi-go/hasher"
)

// BloomFilter is a length-m bit vector with h hash functions. Once built,
// m and h are immutable for the life of the filter.
type BloomFilter struct {
	m, h uint
	bits *bitset.BitSet
}

// New returns a zero-initialized Bloom filter of m bits using h hash
// functions.
func New(m, h uint) *BloomFilter {
	return &BloomFilter{
		m:    m,
		h:    h,
		bits: bitset.New(m),
	}
}

// M returns the filter's bit length.
func (b *BloomFilter) M() uint { return b.m }

// H returns the number of hash functions.
func (b *BloomFilter) H() uint { return b.h }

// Update sets all h positions generated for every k-mer in kmers. It is
// idempotent: calling it again with an overlapping or identical set only
// ever sets bits, never clears them.
func (b *BloomFilter) Update(kmers []string) {
	for _, kmer := range kmers {
		for _, pos := range hasher.Positions(kmer, int(b.h), int(b.m)) {
			b.bits.Set(uint(pos))
		}
	}
}

// Insert is Update for a single k-mer.
func (b *BloomFilter) Insert(kmer string) {
	for _, pos := range hasher.Positions(kmer, int(b.h), int(b.m)) {
		b.bits.Set(uint(pos))
	}
}

// Contains reports whether all h positions generated for kmer are set. A
// true result may be a false positive; a false result is never a false
// negative.
func (b *BloomFilter) Contains(kmer string) bool {
	for _, pos := range hasher.Positions(kmer, int(b.h), int(b.m)) {
		if !b.bits.Test(uint(pos)) {
			return false
		}
	}
	return true
}

// Bit reports the value of row r, for serialization into the bit matrix's
// r-th row.
func (b *BloomFilter) Bit(r uint) bool {
	return b.bits.Test(r)
}

// BitSet exposes the underlying bit vector for serialization.
func (b *BloomFilter) BitSet() *bitset.BitSet {
	return b.bits
}

// Equal reports whether two filters of the same (m, h) have identical bit
// vectors.
func (b *BloomFilter) Equal(o *BloomFilter) bool {
	if b.m != o.m || b.h != o.h {
		return false
	}
	return b.bits.Equal(o.bits)
}
