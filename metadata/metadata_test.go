package metadata

import (
	"errors"
	"testing"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
	"github.com/iqbal-lab-org/bigsi-go/storage/memkv"
)

func TestAddSamplesAssignsDenseColours(t *testing.T) {
	m := New(memkv.New())

	if err := m.AddSamples([]string{"s1", "s2", "s3"}); err != nil {
		t.Fatal(err)
	}

	for i, name := range []string{"s1", "s2", "s3"} {
		c, err := m.GetColour(name)
		if err != nil {
			t.Fatal(err)
		}
		if c != i {
			t.Fatalf("colour for %s: got %d, want %d", name, c, i)
		}
		gotName, err := m.GetName(i)
		if err != nil {
			t.Fatal(err)
		}
		if gotName != name {
			t.Fatalf("name for colour %d: got %q, want %q", i, gotName, name)
		}
	}

	n, err := m.NumSamples()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got %d samples, want 3", n)
	}
}

func TestAddSamplesContinuesFromExisting(t *testing.T) {
	m := New(memkv.New())

	if err := m.AddSamples([]string{"s1"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSamples([]string{"s2", "s3"}); err != nil {
		t.Fatal(err)
	}

	c, err := m.GetColour("s3")
	if err != nil {
		t.Fatal(err)
	}
	if c != 2 {
		t.Fatalf("got colour %d, want 2", c)
	}
}

func TestAddSamplesRejectsDuplicateAgainstExisting(t *testing.T) {
	m := New(memkv.New())

	if err := m.AddSamples([]string{"s1"}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddSamples([]string{"s2", "s1"}); !errors.Is(err, bigsierr.ErrDuplicateSample) {
		t.Fatalf("expected ErrDuplicateSample, got %v", err)
	}

	// Rejected batch must not partially apply: s2 must not have been assigned.
	if _, err := m.GetColour("s2"); !errors.Is(err, bigsierr.ErrSampleNotFound) {
		t.Fatal("s2 was registered despite the batch being rejected")
	}
}

func TestAddSamplesRejectsDuplicateWithinBatch(t *testing.T) {
	m := New(memkv.New())

	if err := m.AddSamples([]string{"s1", "s1"}); !errors.Is(err, bigsierr.ErrDuplicateSample) {
		t.Fatalf("expected ErrDuplicateSample, got %v", err)
	}
}

func TestGetColourUnknownName(t *testing.T) {
	m := New(memkv.New())
	if _, err := m.GetColour("ghost"); !errors.Is(err, bigsierr.ErrSampleNotFound) {
		t.Fatalf("expected ErrSampleNotFound, got %v", err)
	}
}

func TestGetNameUnknownColour(t *testing.T) {
	m := New(memkv.New())
	if _, err := m.GetName(0); !errors.Is(err, bigsierr.ErrSampleNotFound) {
		t.Fatalf("expected ErrSampleNotFound, got %v", err)
	}
}

func TestListOrderedByColour(t *testing.T) {
	m := New(memkv.New())
	if err := m.AddSamples([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}

	list, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(list) != len(want) {
		t.Fatalf("got %v, want %v", list, want)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("got %v, want %v", list, want)
		}
	}
}
