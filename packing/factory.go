package packing

import (
	"fmt"

	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/internal/options"
)

// DefaultMainBits is the overflow main width used when WithMainBits is not given.
const DefaultMainBits = 8

// Config holds the settings applied by Option values.
type Config struct {
	mainBits int
}

// MainBits returns the configured overflow main width.
func (c *Config) MainBits() int { return c.mainBits }

// Option configures CreateCompressor.
type Option = options.Option[*Config]

// WithMainBits sets the overflow main width k'. Other strategies ignore it.
//
// Returns errs.ErrInvalidConfiguration from CreateCompressor when bits is
// outside [1, 32].
func WithMainBits(bits int) Option {
	return options.New(func(c *Config) error {
		if err := validateMainBits(bits); err != nil {
			return err
		}
		c.mainBits = bits

		return nil
	})
}

// CreateCompressor is a factory function that creates an empty Compressor
// for the given strategy.
//
// Parameters:
//   - strategy: One of format.StrategyNonSpanning, StrategySpanning, StrategyOverflow
//   - opts: Optional settings (WithMainBits for overflow)
//
// Returns:
//   - Compressor: A freshly constructed, empty codec
//   - error: errs.ErrUnknownStrategy or errs.ErrInvalidConfiguration
func CreateCompressor(strategy format.Strategy, opts ...Option) (Compressor, error) {
	cfg := &Config{mainBits: DefaultMainBits}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	switch strategy {
	case format.StrategyNonSpanning:
		return NewNonSpanning(), nil
	case format.StrategySpanning:
		return NewSpanning(), nil
	case format.StrategyOverflow:
		c, err := NewOverflow(cfg.mainBits)
		if err != nil {
			return nil, err
		}

		return c, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownStrategy, uint8(strategy))
	}
}

// CreateCompressorByName parses name with format.ParseStrategy and calls
// CreateCompressor.
func CreateCompressorByName(name string, opts ...Option) (Compressor, error) {
	strategy, err := format.ParseStrategy(name)
	if err != nil {
		return nil, err
	}

	return CreateCompressor(strategy, opts...)
}
