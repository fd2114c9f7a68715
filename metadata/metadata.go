// Package metadata persists the bidirectional colour<->sample-name mapping
// every BIGSI index needs to translate row-matrix columns back into
// human-readable sample names.
package metadata

import (
	"strconv"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
	"github.com/iqbal-lab-org/bigsi-go/storage"
)

const (
	nameToColourPrefix = "sample:name:"
	colourToNamePrefix = "sample:colour:"
	numSamplesKey      = "number_of_cols"
)

// SampleMetadata is a thin, store-backed layer over the colour<->name
// mapping. Colours are dense integers in [0, NumSamples()) assigned in
// insertion order and never reused.
type SampleMetadata struct {
	store storage.Storage
}

// New returns a SampleMetadata backed by store.
func New(store storage.Storage) *SampleMetadata {
	return &SampleMetadata{store: store}
}

// AddSamples assigns the next dense colours, in order, to names. It
// rejects the whole batch with bigsierr.ErrDuplicateSample if any name is
// already registered or repeated within names, leaving the store
// unchanged. On success it performs one store Sync after writing both
// mappings for every name, so the group of writes is atomic from the
// caller's perspective.
func (m *SampleMetadata) AddSamples(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return bigsierr.ErrDuplicateSample
		}
		seen[name] = struct{}{}
		if _, err := m.GetColour(name); err == nil {
			return bigsierr.ErrDuplicateSample
		}
	}

	next, err := m.NumSamples()
	if err != nil {
		return err
	}

	for i, name := range names {
		colour := next + i
		if err := m.store.SetString(nameToColourPrefix+name, strconv.Itoa(colour)); err != nil {
			return err
		}
		if err := m.store.SetString(colourToNamePrefix+strconv.Itoa(colour), name); err != nil {
			return err
		}
	}

	if err := m.store.SetInteger(numSamplesKey, int64(next+len(names))); err != nil {
		return err
	}

	return m.store.Sync()
}

// GetColour returns the colour assigned to name, or
// bigsierr.ErrSampleNotFound if name is not registered.
func (m *SampleMetadata) GetColour(name string) (int, error) {
	v, err := m.store.GetString(nameToColourPrefix + name)
	if err != nil {
		return 0, bigsierr.ErrSampleNotFound
	}
	return strconv.Atoi(v)
}

// GetName returns the sample name assigned to colour, or
// bigsierr.ErrSampleNotFound if colour is unassigned.
func (m *SampleMetadata) GetName(colour int) (string, error) {
	v, err := m.store.GetString(colourToNamePrefix + strconv.Itoa(colour))
	if err != nil {
		return "", bigsierr.ErrSampleNotFound
	}
	return v, nil
}

// NumSamples returns the number of samples registered so far (0 if the
// counter has never been written).
func (m *SampleMetadata) NumSamples() (int, error) {
	n, err := m.store.GetInteger(numSamplesKey)
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

// List returns every registered sample name, ordered by colour.
func (m *SampleMetadata) List() ([]string, error) {
	n, err := m.NumSamples()
	if err != nil {
		return nil, err
	}
	names := make([]string, n)
	for c := 0; c < n; c++ {
		name, err := m.GetName(c)
		if err != nil {
			return nil, err
		}
		names[c] = name
	}
	return names, nil
}
