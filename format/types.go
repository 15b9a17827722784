package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/bitpack/errs"
)

type (
	Strategy        uint8
	CompressionType uint8
)

const (
	StrategyNonSpanning Strategy = 0x1 // StrategyNonSpanning keeps every element inside one word.
	StrategySpanning    Strategy = 0x2 // StrategySpanning lets elements straddle word boundaries.
	StrategyOverflow    Strategy = 0x3 // StrategyOverflow diverts large outliers to a side array.

	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.
)

// Strategies lists every packing strategy in a stable order.
var Strategies = []Strategy{StrategyNonSpanning, StrategySpanning, StrategyOverflow}

// CompressionTypes lists every baseline compression type in a stable order.
var CompressionTypes = []CompressionType{
	CompressionNone,
	CompressionZstd,
	CompressionS2,
	CompressionLZ4,
	CompressionSnappy,
}

// String returns the canonical strategy name used by the factory and the CLI.
func (s Strategy) String() string {
	switch s {
	case StrategyNonSpanning:
		return "non_spanning"
	case StrategySpanning:
		return "spanning"
	case StrategyOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a strategy name to its Strategy value.
//
// Names are matched case-insensitively after trimming surrounding spaces.
// Unrecognized names return errs.ErrUnknownStrategy naming the input.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "non_spanning":
		return StrategyNonSpanning, nil
	case "spanning":
		return StrategySpanning, nil
	case "overflow":
		return StrategyOverflow, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownStrategy, name)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive codec name to its CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, name)
	}
}
