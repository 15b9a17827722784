package harness

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/packing"
)

// Base repetition counts of one Benchmark round.
const (
	CompressRuns   = 10
	DecompressRuns = 100
	GetRuns        = 1000
)

// Timing holds the mean latency of each operation for one strategy.
type Timing struct {
	Strategy   format.Strategy
	Compress   time.Duration
	Decompress time.Duration
	// Get is measured at len/2 and stays zero for an empty input.
	Get time.Duration
}

// Benchmark measures the mean latency of Compress, Decompress and Get(len/2)
// for each configured strategy.
//
// Each operation repeats rounds times its base count (CompressRuns,
// DecompressRuns, GetRuns); the reported value is the mean of one call.
// Compression happens on a fresh codec for every run.
//
// Parameters:
//   - data: Sequence to time
//   - rounds: Multiplier of the base counts, at least 1
//   - opts: WithStrategies, WithMainBits, WithLogger
//
// Returns:
//   - []Timing: One entry per strategy, in configured order
//   - error: errs.ErrInvalidConfiguration for rounds < 1, or a codec error
func Benchmark(data []int64, rounds int, opts ...Option) ([]Timing, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("%w: bench rounds %d", errs.ErrInvalidConfiguration, rounds)
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	timings := make([]Timing, 0, len(cfg.strategies))
	for _, strategy := range cfg.strategies {
		t, err := benchStrategy(cfg, strategy, data, rounds)
		if err != nil {
			return nil, err
		}
		cfg.logger.Debug("benchmark",
			"strategy", strategy.String(),
			"compress", t.Compress,
			"decompress", t.Decompress,
			"get", t.Get)
		timings = append(timings, t)
	}

	return timings, nil
}

func benchStrategy(cfg *Config, strategy format.Strategy, data []int64, rounds int) (Timing, error) {
	t := Timing{Strategy: strategy}

	var c packing.Compressor
	runs := CompressRuns * rounds
	var total time.Duration
	for range runs {
		fresh, err := cfg.create(strategy, packing.WithMainBits(cfg.mainBits))
		if err != nil {
			return t, err
		}
		start := time.Now()
		if err := fresh.Compress(data); err != nil {
			return t, fmt.Errorf("%s: %w", strategy, err)
		}
		total += time.Since(start)
		c = fresh
	}
	t.Compress = total / time.Duration(runs)

	runs = DecompressRuns * rounds
	start := time.Now()
	for range runs {
		_ = c.Decompress()
	}
	t.Decompress = time.Since(start) / time.Duration(runs)

	if len(data) == 0 {
		return t, nil
	}

	mid := len(data) / 2
	runs = GetRuns * rounds
	start = time.Now()
	for range runs {
		if _, err := c.Get(mid); err != nil {
			return t, fmt.Errorf("%s: get(%d): %w", strategy, mid, err)
		}
	}
	t.Get = time.Since(start) / time.Duration(runs)

	return t, nil
}

// GenerateOutlierData builds n values for an overflow main width of mainBits.
//
// With probability ratio a value is an outlier drawn from
// [sentinel, 10*sentinel] (capped at math.MaxUint32); otherwise it is drawn
// from [0, sentinel-1], where sentinel is (1<<mainBits)-1. The same seed
// always yields the same sequence.
//
// Returns:
//   - []int64: Generated sequence
//   - error: errs.ErrInvalidConfiguration for n < 0, mainBits outside
//     [1, 32] or ratio outside [0, 1]
func GenerateOutlierData(n, mainBits int, ratio float64, seed int64) ([]int64, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: length %d", errs.ErrInvalidConfiguration, n)
	case mainBits < 1 || mainBits > packing.WordBits:
		return nil, fmt.Errorf("%w: main bits %d outside [1, %d]", errs.ErrInvalidConfiguration, mainBits, packing.WordBits)
	case ratio < 0 || ratio > 1 || math.IsNaN(ratio):
		return nil, fmt.Errorf("%w: outlier ratio %v outside [0, 1]", errs.ErrInvalidConfiguration, ratio)
	}

	sentinel := int64(1)<<mainBits - 1
	hi := min(10*sentinel, math.MaxUint32)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible test data
	data := make([]int64, n)
	for i := range data {
		if rng.Float64() < ratio {
			data[i] = sentinel + rng.Int63n(hi-sentinel+1)
		} else {
			data[i] = rng.Int63n(sentinel)
		}
	}

	return data, nil
}
