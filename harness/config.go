package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/bitpack/format"
)

// FileConfig is a YAML run configuration.
//
//	strategies: [spanning, overflow]
//	main_bits: 10
//	baselines: [zstd, lz4]
//	bench_rounds: 1
//	data: [1, 2, 3, 4095, 7]
//
// Every key is optional. Unknown keys are rejected.
type FileConfig struct {
	Strategies  []string `yaml:"strategies"`
	MainBits    int      `yaml:"main_bits"`
	Baselines   []string `yaml:"baselines"`
	BenchRounds int      `yaml:"bench_rounds"`
	Data        []int64  `yaml:"data"`
}

// LoadConfig reads and parses a YAML run configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return ParseConfig(raw)
}

// ParseConfig parses a YAML run configuration. An empty document yields a
// zero FileConfig.
func ParseConfig(raw []byte) (*FileConfig, error) {
	fc := &FileConfig{}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return fc, nil
}

// Options converts the file settings into Run options. Zero values leave the
// defaults in place.
//
// Returns:
//   - []Option: Options for Run and Benchmark
//   - error: errs.ErrUnknownStrategy or errs.ErrUnknownCompression for a bad name
func (fc *FileConfig) Options() ([]Option, error) {
	var opts []Option

	if len(fc.Strategies) > 0 {
		strategies := make([]format.Strategy, 0, len(fc.Strategies))
		for _, name := range fc.Strategies {
			s, err := format.ParseStrategy(name)
			if err != nil {
				return nil, err
			}
			strategies = append(strategies, s)
		}
		opts = append(opts, WithStrategies(strategies...))
	}

	if fc.MainBits != 0 {
		opts = append(opts, WithMainBits(fc.MainBits))
	}

	if len(fc.Baselines) > 0 {
		types := make([]format.CompressionType, 0, len(fc.Baselines))
		for _, name := range fc.Baselines {
			t, err := format.ParseCompressionType(name)
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		opts = append(opts, WithBaselines(types...))
	}

	return opts, nil
}
