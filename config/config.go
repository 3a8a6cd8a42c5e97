// Package config loads engine settings from YAML or TOML files.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/units"
	"github.com/brimdata/nitro/errors"
	"github.com/brimdata/nitro/pkg/logger"
	"github.com/brimdata/nitro/runtime/op"
	"github.com/pbnjay/memory"
	"gopkg.in/yaml.v3"
)

// ByteSize is a number of bytes written as a human size like "512MiB".
// The value "auto" means half of physical memory.
type ByteSize int64

func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "0":
		return 0, nil
	case "auto":
		return ByteSize(memory.TotalMemory() / 2), nil
	}
	n, err := units.ParseStrictBytes(s)
	if err != nil {
		return 0, errors.E(errors.Invalid, "bad byte size %q: %w", s, err)
	}
	if n < 0 {
		return 0, errors.E(errors.Invalid, "negative byte size %q", s)
	}
	return ByteSize(n), nil
}

func (b ByteSize) String() string {
	return units.Base2Bytes(b).String()
}

func (b *ByteSize) Set(s string) error {
	n, err := ParseByteSize(s)
	if err != nil {
		return err
	}
	*b = n
	return nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	return b.Set(node.Value)
}

type Config struct {
	BatchSize   int           `yaml:"batch_size" toml:"batch_size"`
	MemoryLimit ByteSize      `yaml:"memory_limit" toml:"memory_limit"`
	Metrics     bool          `yaml:"metrics" toml:"metrics"`
	Log         logger.Config `yaml:"log" toml:"log"`
}

func Default() Config {
	return Config{
		BatchSize: op.DefaultBatchSize,
		Log:       logger.DefaultConfig(),
	}
}

// Load reads path over the defaults.  The format follows the file
// extension.
func Load(path string) (Config, error) {
	conf := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&conf); err != nil && err != io.EOF {
			return conf, errors.E(errors.Invalid, "%s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(b), &conf)
		if err != nil {
			return conf, errors.E(errors.Invalid, "%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return conf, errors.E(errors.Invalid, "%s: unknown key %q", path, undecoded[0].String())
		}
	default:
		return conf, errors.E(errors.Invalid, "%s: unknown config format %q", path, ext)
	}
	return conf, conf.Validate()
}

func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.E(errors.Invalid, "batch_size must be positive")
	}
	return nil
}
