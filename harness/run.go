package harness

import (
	"fmt"
	"slices"

	"github.com/arloliu/bitpack/compress"
	"github.com/arloliu/bitpack/endian"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/internal/hash"
	"github.com/arloliu/bitpack/internal/pool"
	"github.com/arloliu/bitpack/packing"
)

// Run exercises every configured strategy on data and returns the report.
//
// A decode mismatch is not an error: it is recorded in the report and logged
// as a warning. Errors are reserved for inputs the codecs refuse (for example
// errs.ErrUnsupportedValue) and for invalid options.
//
// Parameters:
//   - data: Sequence to verify
//   - opts: WithStrategies, WithMainBits, WithBaselines, WithLogger
//
// Returns:
//   - *Report: Per-strategy results and baseline sizes
//   - error: Option, construction or compression error
func Run(data []int64, opts ...Option) (*Report, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		InputLen: len(data),
		RawSize:  len(data) * packing.WordBytes,
		Results:  make([]StrategyResult, 0, len(cfg.strategies)),
	}

	for _, strategy := range cfg.strategies {
		res, err := runStrategy(cfg, strategy, data)
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			cfg.logger.Warn("round-trip mismatch",
				"strategy", strategy.String(),
				"round_trip", res.RoundTripOK,
				"sample_index", res.SampleIndex,
				"want", res.SampleWant,
				"got", res.SampleGot)
		}
		report.Results = append(report.Results, res)
	}

	if len(cfg.baselines) > 0 {
		report.Baselines, err = runBaselines(cfg, data)
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

func runStrategy(cfg *Config, strategy format.Strategy, data []int64) (StrategyResult, error) {
	c, err := cfg.create(strategy, packing.WithMainBits(cfg.mainBits))
	if err != nil {
		return StrategyResult{}, err
	}
	if err := c.Compress(data); err != nil {
		return StrategyResult{}, fmt.Errorf("%s: %w", strategy, err)
	}

	res := StrategyResult{
		Strategy:       strategy,
		Len:            c.Len(),
		BitsPerElement: c.BitsPerElement(),
		Words:          len(c.Words()),
		SizeInBytes:    c.SizeInBytes(),
		Fingerprint:    hash.Words(c.Words()),
		RoundTripOK:    slices.Equal(data, c.Decompress()) && iterMatches(c, data),
		SampleIndex:    -1,
		SampleOK:       true,
	}
	if o, ok := c.(*packing.Overflow); ok {
		res.OverflowCount = o.OverflowCount()
	}

	if len(data) > 0 {
		idx := len(data) / 2
		got, err := c.Get(idx)
		if err != nil {
			return StrategyResult{}, fmt.Errorf("%s: get(%d): %w", strategy, idx, err)
		}
		res.SampleIndex = idx
		res.SampleWant = data[idx]
		res.SampleGot = got
		res.SampleOK = got == data[idx]
	}

	cfg.logger.Debug("strategy run",
		"strategy", strategy.String(),
		"len", res.Len,
		"bits", res.BitsPerElement,
		"words", res.Words,
		"size", res.SizeInBytes,
		"overflow", res.OverflowCount)

	return res, nil
}

// iterMatches drains c.All into pooled scratch and compares it with data.
// Indices must arrive in order with no gaps.
func iterMatches(c packing.Compressor, data []int64) bool {
	if c.Len() != len(data) {
		return false
	}

	scratch, cleanup := pool.GetInt64Slice(len(data))
	defer cleanup()

	seen := 0
	for i, v := range c.All() {
		if i != seen || seen == len(scratch) {
			return false
		}
		scratch[i] = v
		seen++
	}

	return seen == len(data) && slices.Equal(data, scratch)
}

// runBaselines compresses data laid out as little-endian 32-bit words with
// each configured codec. data has already been accepted by a packer, so every
// value fits in a word.
func runBaselines(cfg *Config, data []int64) ([]compress.CompressionStats, error) {
	words, cleanup := pool.GetUint32Slice(len(data))
	defer cleanup()
	for i, v := range data {
		words[i] = uint32(v) //nolint:gosec // range checked by Compress
	}

	buf := pool.GetWordBuffer()
	defer pool.PutWordBuffer(buf)
	buf.AppendWords(endian.GetLittleEndianEngine(), words)

	stats := make([]compress.CompressionStats, 0, len(cfg.baselines))
	for _, ct := range cfg.baselines {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return nil, err
		}
		s, err := compress.Measure(ct, codec, buf.Bytes())
		if err != nil {
			return nil, err
		}
		cfg.logger.Debug("baseline run",
			"codec", ct.String(),
			"size", s.CompressedSize,
			"ratio", s.CompressionRatio())
		stats = append(stats, s)
	}

	return stats, nil
}
