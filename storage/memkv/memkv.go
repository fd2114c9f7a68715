// Package memkv is an in-memory Storage backend for tests and small
// indices, backed by the teacher-style generic skip list in package
// memtable rather than a plain map, so row scans come out key-ordered for
// free.
package memkv

import (
	"sync"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
	"github.com/iqbal-lab-org/bigsi-go/memtable"
)

// Store is a Storage backend that keeps rows and scalars in two in-memory
// skip lists. It is safe for concurrent use, though the core itself never
// issues concurrent writes against one handle.
type Store struct {
	mu        sync.RWMutex
	rows      *memtable.SkipList[int, []byte]
	strs      *memtable.SkipList[string, string]
	synced    bool
	syncCount int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		rows: memtable.NewSkipListMemtable[int, []byte](),
		strs: memtable.NewSkipListMemtable[string, string](),
	}
}

func (s *Store) SetBitarrays(keys []int, rows [][]byte) error {
	if len(keys) != len(rows) {
		return bigsierr.Storage("set_bitarrays", errMismatchedLengths)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, k := range keys {
		cp := append([]byte(nil), rows[i]...)
		s.rows.Put(k, cp)
	}
	return nil
}

func (s *Store) GetBitarray(key int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rows.Get(key)
	if !ok {
		return nil, bigsierr.ErrKeyNotFound
	}
	return v, nil
}

func (s *Store) GetBitarrays(keys []int) ([][]byte, error) {
	out := make([][]byte, len(keys))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, k := range keys {
		v, ok := s.rows.Get(k)
		if !ok {
			return nil, bigsierr.ErrKeyNotFound
		}
		out[i] = v
	}
	return out, nil
}

func (s *Store) SetInteger(key string, v int64) error {
	return s.SetString(key, formatInt(v))
}

func (s *Store) GetInteger(key string) (int64, error) {
	v, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	return parseInt(v)
}

func (s *Store) SetString(key, v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strs.Put(key, v)
	return nil
}

func (s *Store) GetString(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.strs.Get(key)
	if !ok {
		return "", bigsierr.ErrKeyNotFound
	}
	return v, nil
}

func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced = true
	s.syncCount++
	return nil
}

// SyncCount reports how many times Sync has been called, for tests that
// assert on batching behaviour.
func (s *Store) SyncCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncCount
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = memtable.NewSkipListMemtable[int, []byte]()
	s.strs = memtable.NewSkipListMemtable[string, string]()
	return nil
}

// Len returns the number of rows currently stored, exercising the skip
// list's own Len.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows.Len()
}
