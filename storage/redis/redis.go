// Package redis is a networked Storage backend over
// github.com/redis/go-redis/v9, the family spec.md §1 names alongside
// BerkeleyDB/RocksDB as an acceptable BIGSI storage engine.
package redis

import (
	"context"
	"errors"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/iqbal-lab-org/bigsi-go/internal/bigsierr"
)

const rowKeyPrefix = "bigsi:row:"

// Store is a Storage backend over a single Redis connection.
type Store struct {
	client *goredis.Client
	ctx    context.Context
}

// Open connects to addr and returns a Store over it.
func Open(addr string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, bigsierr.Storage("open", err)
	}
	return &Store{client: client, ctx: ctx}, nil
}

func rowKey(key int) string {
	return rowKeyPrefix + strconv.Itoa(key)
}

func (s *Store) SetBitarrays(keys []int, rows [][]byte) error {
	if len(keys) != len(rows) {
		return bigsierr.Storage("set_bitarrays", errMismatchedLengths)
	}
	pairs := make([]interface{}, 0, len(keys)*2)
	for i, k := range keys {
		pairs = append(pairs, rowKey(k), rows[i])
	}
	if err := s.client.MSet(s.ctx, pairs...).Err(); err != nil {
		return bigsierr.Storage("set_bitarrays", err)
	}
	return nil
}

func (s *Store) GetBitarray(key int) ([]byte, error) {
	v, err := s.client.Get(s.ctx, rowKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, bigsierr.ErrKeyNotFound
	}
	if err != nil {
		return nil, bigsierr.Storage("get_bitarray", err)
	}
	return v, nil
}

func (s *Store) GetBitarrays(keys []int) ([][]byte, error) {
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = rowKey(k)
	}
	vals, err := s.client.MGet(s.ctx, redisKeys...).Result()
	if err != nil {
		return nil, bigsierr.Storage("get_bitarrays", err)
	}
	out := make([][]byte, len(keys))
	for i, v := range vals {
		if v == nil {
			return nil, bigsierr.ErrKeyNotFound
		}
		str, ok := v.(string)
		if !ok {
			return nil, bigsierr.Storage("get_bitarrays", errUnexpectedType)
		}
		out[i] = []byte(str)
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
	if err := s.client.Set(s.ctx, key, v, 0).Err(); err != nil {
		return bigsierr.Storage("set_string", err)
	}
	return nil
}

func (s *Store) GetString(key string) (string, error) {
	v, err := s.client.Get(s.ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", bigsierr.ErrKeyNotFound
	}
	if err != nil {
		return "", bigsierr.Storage("get_string", err)
	}
	return v, nil
}

// Sync flushes nothing of its own; Redis acknowledges each command once
// it is durable per its own persistence configuration. Kept to satisfy
// the Storage contract's "durable-enough flush" expectation.
func (s *Store) Sync() error {
	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		return bigsierr.Storage("close", err)
	}
	return nil
}

func (s *Store) DeleteAll() error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(s.ctx, cursor, rowKeyPrefix+"*", 1000).Result()
		if err != nil {
			return bigsierr.Storage("delete_all", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(s.ctx, keys...).Err(); err != nil {
				return bigsierr.Storage("delete_all", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return s.deleteMetadataKeys()
}

func (s *Store) deleteMetadataKeys() error {
	for _, key := range metadataKeyPrefixes {
		var cursor uint64
		for {
			keys, next, err := s.client.Scan(s.ctx, cursor, key+"*", 1000).Result()
			if err != nil {
				return bigsierr.Storage("delete_all", err)
			}
			if len(keys) > 0 {
				if err := s.client.Del(s.ctx, keys...).Err(); err != nil {
					return bigsierr.Storage("delete_all", err)
				}
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
	return nil
}

var metadataKeyPrefixes = []string{"sample:", "bloomfilter_size", "num_hashes", "number_of_rows", "number_of_cols", "ksi:"}

var errMismatchedLengths = errors.New("redis: keys and rows have different lengths")
var errUnexpectedType = errors.New("redis: unexpected value type for row key")
