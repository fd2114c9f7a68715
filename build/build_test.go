package build

import (
	"bytes"
	"testing"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/metadata"
	"github.com/iqbal-lab-org/bigsi-go/storage"
	"github.com/iqbal-lab-org/bigsi-go/storage/memkv"
)

// batchSpy wraps a Storage and records the size of every SetBitarrays
// call, so tests can assert on LargeBuild's batching without reaching
// into its internals.
type batchSpy struct {
	storage.Storage
	batchSizes []int
}

func (s *batchSpy) SetBitarrays(keys []int, rows [][]byte) error {
	s.batchSizes = append(s.batchSizes, len(keys))
	return s.Storage.SetBitarrays(keys, rows)
}

func matrixSource(t *testing.T, rows, cols int, pattern func(r int) bitmatrix.BoolRow) bitmatrix.Source {
	t.Helper()
	var buf bytes.Buffer
	w, err := bitmatrix.NewWriter(&buf, rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < rows; r++ {
		if err := w.Write(pattern(r)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return bitmatrix.Source{In: bytes.NewReader(buf.Bytes()), Cols: cols}
}

func TestLargeBuildBatchesRows(t *testing.T) {
	const rows = 5
	src := matrixSource(t, rows, 1, func(r int) bitmatrix.BoolRow {
		return bitmatrix.BoolRow{r%2 == 0}
	})

	mem := memkv.New()
	spy := &batchSpy{Storage: mem}

	params := Params{NumHashes: 3, BloomFilterM: 1000, BatchSize: 2}
	if err := LargeBuild([]bitmatrix.Source{src}, rows, []string{"s1"}, params, spy); err != nil {
		t.Fatal(err)
	}

	want := []int{2, 2, 1}
	if len(spy.batchSizes) != len(want) {
		t.Fatalf("got batch sizes %v, want %v", spy.batchSizes, want)
	}
	for i := range want {
		if spy.batchSizes[i] != want[i] {
			t.Fatalf("got batch sizes %v, want %v", spy.batchSizes, want)
		}
	}

	// Each of the 3 row batches syncs once; the metadata write and the
	// final dimension write each sync once more.
	if got := mem.SyncCount(); got != 5 {
		t.Fatalf("got %d syncs, want 5", got)
	}
}

func TestLargeBuildRoundTripsRows(t *testing.T) {
	const rows, cols = 6, 3
	pattern := [][]bool{
		{true, false, false},
		{false, true, false},
		{false, false, true},
		{true, true, false},
		{false, true, true},
		{true, false, true},
	}
	src := matrixSource(t, rows, cols, func(r int) bitmatrix.BoolRow {
		return bitmatrix.BoolRow(pattern[r])
	})

	store := memkv.New()
	params := Params{NumHashes: 4, BloomFilterM: 2000}
	if err := LargeBuild([]bitmatrix.Source{src}, rows, []string{"a", "b", "c"}, params, store); err != nil {
		t.Fatal(err)
	}

	for r := 0; r < rows; r++ {
		raw, err := store.GetBitarray(r)
		if err != nil {
			t.Fatal(err)
		}
		row := bitmatrix.UnpackRow(raw, cols)
		for c := 0; c < cols; c++ {
			if row.Test(uint(c)) != pattern[r][c] {
				t.Fatalf("row %d col %d: got %v, want %v", r, c, row.Test(uint(c)), pattern[r][c])
			}
		}
	}

	n, err := store.GetInteger("number_of_rows")
	if err != nil || n != rows {
		t.Fatalf("number_of_rows: got %d, %v", n, err)
	}
	c, err := store.GetInteger("number_of_cols")
	if err != nil || c != cols {
		t.Fatalf("number_of_cols: got %d, %v", c, err)
	}
	h, err := store.GetInteger("num_hashes")
	if err != nil || h != 4 {
		t.Fatalf("num_hashes: got %d, %v", h, err)
	}
	m, err := store.GetInteger("bloomfilter_size")
	if err != nil || m != 2000 {
		t.Fatalf("bloomfilter_size: got %d, %v", m, err)
	}

	meta := metadata.New(store)
	names, err := meta.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got names %v, want %v", names, want)
		}
	}
}

func TestLargeBuildMultipleSourcesConcatenateColumns(t *testing.T) {
	const rows = 2
	src1 := matrixSource(t, rows, 1, func(r int) bitmatrix.BoolRow { return bitmatrix.BoolRow{true} })
	src2 := matrixSource(t, rows, 2, func(r int) bitmatrix.BoolRow { return bitmatrix.BoolRow{false, true} })

	store := memkv.New()
	params := Params{NumHashes: 2, BloomFilterM: 100}
	err := LargeBuild([]bitmatrix.Source{src1, src2}, rows, []string{"x", "y", "z"}, params, store)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := store.GetBitarray(0)
	if err != nil {
		t.Fatal(err)
	}
	row := bitmatrix.UnpackRow(raw, 3)
	if !row.Test(0) || row.Test(1) || !row.Test(2) {
		t.Fatalf("got row %v, want [true false true]", row)
	}
}
