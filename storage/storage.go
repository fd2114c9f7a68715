// Package storage defines the abstract key-value contract the BIGSI core
// requires of any backend, and is implemented by storage/memkv,
// storage/boltkv and storage/redis.
package storage

// Storage is the narrow capability set the core needs from a backend: batch
// row put, point and batch row get, integer and string scalars for
// metadata, a durable-enough flush, and teardown. No ordering guarantee is
// required across concurrent calls; the core never issues concurrent
// writes against one handle.
type Storage interface {
	// SetBitarrays batch-puts rows under integer row keys. keys and rows
	// must have equal length.
	SetBitarrays(keys []int, rows [][]byte) error

	// GetBitarray fetches one row. It returns bigsierr.ErrKeyNotFound if
	// the key is absent.
	GetBitarray(key int) ([]byte, error)

	// GetBitarrays fetches several rows, returned in the same order as
	// keys.
	GetBitarrays(keys []int) ([][]byte, error)

	SetInteger(key string, v int64) error
	GetInteger(key string) (int64, error)

	SetString(key, v string) error
	GetString(key string) (string, error)

	// Sync durably flushes any buffered writes.
	Sync() error

	// Close releases the handle.
	Close() error

	// DeleteAll removes every key the store holds, leaving it as if newly
	// created.
	DeleteAll() error
}
