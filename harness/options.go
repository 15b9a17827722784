package harness

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/arloliu/bitpack/compress"
	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/internal/options"
	"github.com/arloliu/bitpack/packing"
)

// compressorFactory matches packing.CreateCompressor.
type compressorFactory func(format.Strategy, ...packing.Option) (packing.Compressor, error)

// Config holds the settings applied by Option values.
type Config struct {
	strategies []format.Strategy
	mainBits   int
	baselines  []format.CompressionType
	logger     *slog.Logger
	create     compressorFactory
}

// Option configures Run and Benchmark.
type Option = options.Option[*Config]

// NewConfig applies opts over the defaults: every strategy, main width
// packing.DefaultMainBits, no baselines and a discarding logger.
//
// Run and Benchmark resolve their options the same way; callers use NewConfig
// to inspect the settings a set of options produces.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		strategies: format.Strategies,
		mainBits:   packing.DefaultMainBits,
		logger:     slog.New(slog.DiscardHandler),
		create:     packing.CreateCompressor,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Strategies returns the strategies that will be exercised.
func (c *Config) Strategies() []format.Strategy { return c.strategies }

// MainBits returns the overflow main width.
func (c *Config) MainBits() int { return c.mainBits }

// Baselines returns the general-purpose codecs measured next to the packers.
func (c *Config) Baselines() []format.CompressionType { return c.baselines }

// WithStrategies selects which strategies to run, in order.
// The default is all three.
func WithStrategies(strategies ...format.Strategy) Option {
	return options.New(func(c *Config) error {
		if len(strategies) == 0 {
			return fmt.Errorf("%w: no strategies selected", errs.ErrInvalidConfiguration)
		}
		for _, s := range strategies {
			if !slices.Contains(format.Strategies, s) {
				return fmt.Errorf("%w: %d", errs.ErrUnknownStrategy, uint8(s))
			}
		}
		c.strategies = strategies

		return nil
	})
}

// WithMainBits sets the overflow main width passed to packing.WithMainBits.
func WithMainBits(bits int) Option {
	return options.New(func(c *Config) error {
		if bits < 1 || bits > packing.WordBits {
			return fmt.Errorf("%w: main bits %d outside [1, %d]", errs.ErrInvalidConfiguration, bits, packing.WordBits)
		}
		c.mainBits = bits

		return nil
	})
}

// WithBaselines adds general-purpose codecs to the report. None is a valid
// entry and reports the raw word size.
func WithBaselines(types ...format.CompressionType) Option {
	return options.New(func(c *Config) error {
		for _, t := range types {
			if _, err := compress.CreateCodec(t, "baseline"); err != nil {
				return err
			}
		}
		c.baselines = types

		return nil
	})
}

// WithLogger sets the logger used for per-strategy debug records and
// mismatch warnings. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// withFactory replaces the compressor factory.
func withFactory(create compressorFactory) Option {
	return options.NoError(func(c *Config) {
		c.create = create
	})
}
