package storage

import (
	"fmt"

	"github.com/iqbal-lab-org/bigsi-go/storage/boltkv"
	"github.com/iqbal-lab-org/bigsi-go/storage/memkv"
	"github.com/iqbal-lab-org/bigsi-go/storage/redis"
)

// Open constructs the Storage backend named by engine, configured by cfg.
// It is the one place that knows about every concrete adapter; callers
// above it (the CLI, BulkSearch's per-worker factory) depend only on the
// Storage interface.
func Open(engine string, cfg map[string]any) (Storage, error) {
	switch engine {
	case "mem", "memory", "":
		return memkv.New(), nil
	case "bolt", "bbolt":
		path, _ := cfg["path"].(string)
		if path == "" {
			return nil, fmt.Errorf("storage: bolt engine requires a \"path\" setting")
		}
		return boltkv.Open(path)
	case "redis":
		addr, _ := cfg["addr"].(string)
		if addr == "" {
			return nil, fmt.Errorf("storage: redis engine requires an \"addr\" setting")
		}
		return redis.Open(addr)
	default:
		return nil, fmt.Errorf("storage: unknown engine %q", engine)
	}
}
