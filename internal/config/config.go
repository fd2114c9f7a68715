// Package config loads the index-build configuration document: k, m, h,
// and the storage backend to use, plus backend-specific settings the
// core never opens itself.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the {k, m, h, storage-engine, storage-config, ...} document
// named by spec.md §6. The core only reads K, M, and H; StorageEngine and
// StorageConfig are handed to the storage adapter factory unopened.
type Config struct {
	K                int            `yaml:"k"`
	M                int            `yaml:"m"`
	H                int            `yaml:"h"`
	StorageEngine    string         `yaml:"storage-engine"`
	StorageConfig    map[string]any `yaml:"storage-config"`
	MaxBuildMemBytes int64          `yaml:"max_build_mem_bytes,omitempty"`
	NProc            int            `yaml:"nproc,omitempty"`
}

// Load reads and parses a Config document from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
