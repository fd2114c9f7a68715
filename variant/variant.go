// Package variant builds the alternative-k-mer query sets that variant
// and amino-acid mutation search run through the index's Search engine.
// It never touches a Storage or Index itself: it is a black-box producer
// of k-mer strings, consumed the same way any other Search caller is.
package variant

import "strings"

// SubstitutionKmers returns every k-mer of the reference sequence ref
// that overlaps position pos, with ref[pos] replaced by alt. There are
// min(k, pos+1, len(ref)-pos, len(ref)-k+1) such windows; each is returned once, in
// left-to-right window order.
func SubstitutionKmers(ref string, pos int, alt byte, k int) []string {
	if pos < 0 || pos >= len(ref) || k <= 0 || k > len(ref) {
		return nil
	}

	start := pos - k + 1
	if start < 0 {
		start = 0
	}
	end := pos
	if end > len(ref)-k {
		end = len(ref) - k
	}

	var kmers []string
	for w := start; w <= end; w++ {
		b := []byte(ref[w : w+k])
		b[pos-w] = alt
		kmers = append(kmers, string(b))
	}
	return kmers
}

// StandardCodonTable maps each amino acid (single-letter IUPAC code) to
// every DNA codon that translates to it under the standard genetic code.
// Only codons callers actually exercise need to be present; this table
// covers the full standard set.
var StandardCodonTable = map[byte][]string{
	'A': {"GCT", "GCC", "GCA", "GCG"},
	'R': {"CGT", "CGC", "CGA", "CGG", "AGA", "AGG"},
	'N': {"AAT", "AAC"},
	'D': {"GAT", "GAC"},
	'C': {"TGT", "TGC"},
	'Q': {"CAA", "CAG"},
	'E': {"GAA", "GAG"},
	'G': {"GGT", "GGC", "GGA", "GGG"},
	'H': {"CAT", "CAC"},
	'I': {"ATT", "ATC", "ATA"},
	'L': {"TTA", "TTG", "CTT", "CTC", "CTA", "CTG"},
	'K': {"AAA", "AAG"},
	'M': {"ATG"},
	'F': {"TTT", "TTC"},
	'P': {"CCT", "CCC", "CCA", "CCG"},
	'S': {"TCT", "TCC", "TCA", "TCG", "AGT", "AGC"},
	'T': {"ACT", "ACC", "ACA", "ACG"},
	'W': {"TGG"},
	'Y': {"TAT", "TAC"},
	'V': {"GTT", "GTC", "GTA", "GTG"},
	'*': {"TAA", "TAG", "TGA"},
}

// AminoAcidKmers returns the union of SubstitutionKmers produced by
// substituting, at codonStart, every codon encoding targetAA under
// StandardCodonTable, for every position the replacement codon touches.
// codonStart is the reference offset of the codon's first base; ref must
// be at least codonStart+3 bases long. Results are de-duplicated.
func AminoAcidKmers(ref string, codonStart int, targetAA byte, k int) []string {
	codons := StandardCodonTable[targetAA]
	if codons == nil || codonStart < 0 || codonStart+3 > len(ref) {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, codon := range codons {
		mutated := ref[:codonStart] + codon + ref[codonStart+3:]
		for offset := 0; offset < 3; offset++ {
			pos := codonStart + offset
			for _, kmer := range SubstitutionKmers(mutated, pos, mutated[pos], k) {
				if _, dup := seen[kmer]; dup {
					continue
				}
				seen[kmer] = struct{}{}
				out = append(out, kmer)
			}
		}
	}
	return out
}

// Canonical returns the lexicographically smaller of s and its reverse
// complement over {A,C,G,T}, matching the orientation-insensitive
// convention some callers apply before querying the index. Bytes outside
// {A,C,G,T} are left unchanged by the complement step.
func Canonical(s string) string {
	rc := reverseComplement(s)
	if rc < s {
		return rc
	}
	return s
}

func reverseComplement(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := len(s) - 1; i >= 0; i-- {
		b.WriteByte(complement(s[i]))
	}
	return b.String()
}

func complement(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return c
	}
}
