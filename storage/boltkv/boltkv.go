// Package boltkv is a durable, embedded Storage backend over
// go.etcd.io/bbolt, the disk-backed family spec.md §1 names alongside
// BerkeleyDB/RocksDB as acceptable BIGSI storage engines. A small
// bloom/v3 filter guards row lookups the way the teacher's sst writer
// guards its data blocks: a cheap negative check before touching bbolt.
package boltkv

import (
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/bits-and-blooms/bloom/v3"
	bolt "go.etcd.io/bbolt"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
)

var (
	rowsBucket = []byte("rows")
	strsBucket = []byte("strings")
)

// Store is a Storage backend persisted to a single bbolt file.
type Store struct {
	db        *bolt.DB
	seenRows  *bloom.BloomFilter
	estimateN uint
}

// Open opens (creating if necessary) a bbolt database at path and returns
// a Store over it.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, bigsierr.Storage("open", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(rowsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(strsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, bigsierr.Storage("open", err)
	}

	const estimateN = 1_000_000
	seenRows := bloom.NewWithEstimates(estimateN, 0.01)
	err = db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(rowsBucket).ForEach(func(k, _ []byte) error {
			seenRows.Add(k)
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, bigsierr.Storage("open", err)
	}
	return &Store{
		db:        db,
		seenRows:  seenRows,
		estimateN: estimateN,
	}, nil
}

func rowKey(key int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(key))
	return buf
}

func (s *Store) SetBitarrays(keys []int, rows [][]byte) error {
	if len(keys) != len(rows) {
		return bigsierr.Storage("set_bitarrays", errMismatchedLengths)
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(rowsBucket)
		for i, k := range keys {
			if err := b.Put(rowKey(k), rows[i]); err != nil {
				return err
			}
			s.seenRows.Add(rowKey(k))
		}
		return nil
	})
	if err != nil {
		return bigsierr.Storage("set_bitarrays", err)
	}
	return nil
}

func (s *Store) GetBitarray(key int) ([]byte, error) {
	k := rowKey(key)
	if !s.seenRows.Test(k) {
		return nil, bigsierr.ErrKeyNotFound
	}

	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(rowsBucket).Get(k)
		if v == nil {
			return bigsierr.ErrKeyNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		if errors.Is(err, bigsierr.ErrKeyNotFound) {
			return nil, err
		}
		return nil, bigsierr.Storage("get_bitarray", err)
	}
	return out, nil
}

func (s *Store) GetBitarrays(keys []int) ([][]byte, error) {
	out := make([][]byte, len(keys))
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(rowsBucket)
		for i, k := range keys {
			v := b.Get(rowKey(k))
			if v == nil {
				return bigsierr.ErrKeyNotFound
			}
			out[i] = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, bigsierr.ErrKeyNotFound) {
			return nil, err
		}
		return nil, bigsierr.Storage("get_bitarrays", err)
	}
	return out, nil
}

func (s *Store) SetInteger(key string, v int64) error {
	return s.SetString(key, strconv.FormatInt(v, 10))
}

func (s *Store) GetInteger(key string) (int64, error) {
	v, err := s.GetString(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func (s *Store) SetString(key, v string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(strsBucket).Put([]byte(key), []byte(v))
	})
	if err != nil {
		return bigsierr.Storage("set_string", err)
	}
	return nil
}

func (s *Store) GetString(key string) (string, error) {
	var out string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(strsBucket).Get([]byte(key))
		if v == nil {
			return bigsierr.ErrKeyNotFound
		}
		out = string(v)
		return nil
	})
	if err != nil {
		if errors.Is(err, bigsierr.ErrKeyNotFound) {
			return "", err
		}
		return "", bigsierr.Storage("get_string", err)
	}
	return out, nil
}

// Sync is a no-op: bbolt commits each Update transaction durably (fsync)
// by default, so there is no additional flush to perform.
func (s *Store) Sync() error {
	return nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return bigsierr.Storage("close", err)
	}
	return nil
}

func (s *Store) DeleteAll() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(rowsBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		if err := tx.DeleteBucket(strsBucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		if _, err := tx.CreateBucket(rowsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(strsBucket)
		return err
	})
	if err != nil {
		return bigsierr.Storage("delete_all", err)
	}
	s.seenRows = bloom.NewWithEstimates(s.estimateN, 0.01)
	return nil
}

var errMismatchedLengths = errors.New("boltkv: keys and rows have different lengths")
