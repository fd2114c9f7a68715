package index

import (
	"context"
	"testing"

	"github.com/iqbal-lab-org/bigsi-go/bloomfilter"
	"github.com/iqbal-lab-org/bigsi-go/storage"
	"github.com/iqbal-lab-org/bigsi-go/storage/memkv"
)

func TestBulkSearchMatchesSequentialSearch(t *testing.T) {
	const m, h, k = 500, 3, 5

	s1 := bloomfilter.New(m, h)
	s1.Insert("AAAAA")
	s2 := bloomfilter.New(m, h)
	s2.Insert("CCCCC")

	store := memkv.New()
	idx, err := BuildFromBlooms([]*bloomfilter.BloomFilter{s1, s2}, []string{"s1", "s2"}, k, store)
	if err != nil {
		t.Fatal(err)
	}

	queries := []Query{
		{Sequence: "AAAAA", Threshold: 1.0},
		{Sequence: "CCCCC", Threshold: 1.0},
		{Sequence: "GGGGG", Threshold: 0.0},
	}

	open := func() (storage.Storage, error) { return store, nil }

	got, err := BulkSearch(context.Background(), queries, k, 2, open)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(queries) {
		t.Fatalf("got %d result sets, want %d", len(got), len(queries))
	}

	for i, q := range queries {
		want, err := idx.Search(q.Sequence, q.Threshold, q.Contiguous)
		if err != nil {
			t.Fatal(err)
		}
		if len(got[i]) != len(want) {
			t.Fatalf("query %d: got %+v, want %+v", i, got[i], want)
		}
		for j := range want {
			if got[i][j] != want[j] {
				t.Fatalf("query %d result %d: got %+v, want %+v", i, j, got[i][j], want[j])
			}
		}
	}
}
