// Package bitpack packs sequences of non-negative integers into dense
// buffers of 32-bit words, using the fewest bits that hold the largest value.
//
// Three strategies are available:
//
//   - non_spanning: every element sits inside one word; leftover high bits of
//     a word are wasted, but Get reads a single word
//   - spanning: elements are laid out back to back and may straddle two words,
//     so no bit is wasted
//   - overflow: rare large values are moved to a side array so the rest of the
//     sequence packs at a small fixed width
//
// All strategies support random access with Get, full decoding with
// Decompress or All, and report their storage cost with SizeInBytes.
//
// # Basic Usage
//
//	c, err := bitpack.NewCompressor("overflow", packing.WithMainBits(3))
//	if err != nil {
//	    return err
//	}
//	if err := c.Compress([]int64{1, 2, 3, 1024, 4, 5, 2048, 6}); err != nil {
//	    return err
//	}
//	v, _ := c.Get(6)        // 2048
//	size := c.SizeInBytes() // 12: one packed word plus two side values
//
// # Package Structure
//
// This package provides thin top-level wrappers around the packing package.
// The harness package verifies and times the strategies on real input, and
// the compress package provides general-purpose codecs to compare against.
package bitpack

import (
	"github.com/arloliu/bitpack/internal/hash"
	"github.com/arloliu/bitpack/packing"
)

// NewCompressor creates an empty compressor from a strategy name
// ("non_spanning", "spanning" or "overflow", case-insensitive).
//
// Parameters:
//   - name: Strategy name
//   - opts: packing.WithMainBits for the overflow strategy (default 8)
//
// Returns:
//   - packing.Compressor: Empty compressor ready for Compress
//   - error: errs.ErrUnknownStrategy or errs.ErrInvalidConfiguration
//
// Example:
//
//	c, err := bitpack.NewCompressor("spanning")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = c.Compress([]int64{100, 2000, 4095, 0, 1234, 567})
func NewCompressor(name string, opts ...packing.Option) (packing.Compressor, error) {
	return packing.CreateCompressorByName(name, opts...)
}

// NewNonSpanning creates an empty non-spanning packer.
func NewNonSpanning() *packing.NonSpanning {
	return packing.NewNonSpanning()
}

// NewSpanning creates an empty spanning packer.
func NewSpanning() *packing.Spanning {
	return packing.NewSpanning()
}

// NewOverflow creates an empty overflow packer with a main width of mainBits.
//
// Returns errs.ErrInvalidConfiguration when mainBits is outside [1, 32].
func NewOverflow(mainBits int) (*packing.Overflow, error) {
	return packing.NewOverflow(mainBits)
}

// Fingerprint returns the xxHash64 of a packed word buffer, computed over its
// little-endian byte form.
//
// Two compressors holding identical buffers have the same fingerprint,
// whatever the host byte order.
func Fingerprint(words []uint32) uint64 {
	return hash.Words(words)
}
