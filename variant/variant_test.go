package variant

import (
	"sort"
	"testing"
)

func TestSubstitutionKmersWindowCount(t *testing.T) {
	ref := "AAAAATTTTTAAAAA"
	k := 5
	pos := 7 // inside the T run

	kmers := SubstitutionKmers(ref, pos, 'G', k)
	if len(kmers) != k {
		t.Fatalf("got %d kmers, want %d (interior position has exactly k overlapping windows)", len(kmers), k)
	}
	for _, km := range kmers {
		if len(km) != k {
			t.Fatalf("kmer %q has length %d, want %d", km, len(km), k)
		}
		if !containsByte(km, 'G') {
			t.Fatalf("kmer %q does not contain substituted base G", km)
		}
	}
}

func TestSubstitutionKmersNearBoundary(t *testing.T) {
	ref := "ACGTACGTAC"
	k := 4

	// Position 0: only windows starting at 0 fit (can't start before 0).
	kmers := SubstitutionKmers(ref, 0, 'T', k)
	if len(kmers) != 1 {
		t.Fatalf("got %d kmers at pos 0, want 1", len(kmers))
	}

	// Last position: only one window fits (can't extend past len(ref)).
	kmers = SubstitutionKmers(ref, len(ref)-1, 'T', k)
	if len(kmers) != 1 {
		t.Fatalf("got %d kmers at last pos, want 1", len(kmers))
	}
}

func TestSubstitutionKmersOutOfRange(t *testing.T) {
	ref := "ACGT"
	if kmers := SubstitutionKmers(ref, -1, 'A', 2); kmers != nil {
		t.Fatalf("expected nil for negative position, got %v", kmers)
	}
	if kmers := SubstitutionKmers(ref, 10, 'A', 2); kmers != nil {
		t.Fatalf("expected nil for out-of-range position, got %v", kmers)
	}
	if kmers := SubstitutionKmers(ref, 0, 'A', 10); kmers != nil {
		t.Fatalf("expected nil when k exceeds ref length, got %v", kmers)
	}
}

func TestAminoAcidKmersCoversAllSynonymousCodons(t *testing.T) {
	ref := "AAAAAATTTAAAAAA"
	codonStart := 6 // the "TTT" (Phe) codon
	k := 5

	kmers := AminoAcidKmers(ref, codonStart, 'L', k)
	if len(kmers) == 0 {
		t.Fatal("expected at least one kmer for Leucine substitution")
	}

	sort.Strings(kmers)
	for i := 1; i < len(kmers); i++ {
		if kmers[i] == kmers[i-1] {
			t.Fatalf("duplicate kmer %q in output", kmers[i])
		}
	}
}

func TestAminoAcidKmersRejectsOutOfRangeCodon(t *testing.T) {
	ref := "ACGT"
	if kmers := AminoAcidKmers(ref, 2, 'L', 3); kmers != nil {
		t.Fatalf("expected nil when codon does not fit, got %v", kmers)
	}
	if kmers := AminoAcidKmers(ref, 0, 'X', 3); kmers != nil {
		t.Fatalf("expected nil for unknown amino acid code, got %v", kmers)
	}
}

func TestCanonicalPicksLexicographicallySmaller(t *testing.T) {
	got := Canonical("AAAA")
	if got != "AAAA" {
		t.Fatalf("got %q, want AAAA (its own reverse complement TTTT sorts after it)", got)
	}

	got = Canonical("TTTT")
	if got != "AAAA" {
		t.Fatalf("got %q, want AAAA", got)
	}
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
