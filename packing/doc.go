// Package packing implements fixed-width integer bit-packing codecs.
//
// A codec encodes an ordered sequence of non-negative integers into a buffer
// of 32-bit words, storing every element in k bits, where k is the bit length
// of the largest value (1 when every value is zero). Single elements can be
// read back without decoding the whole buffer.
//
// # Strategies
//
// Three strategies implement the Compressor interface:
//
//	Strategy      | Layout                                    | Get cost
//	--------------|-------------------------------------------|-----------------
//	NonSpanning   | floor(32/k) elements per word, padded     | one word read
//	Spanning      | contiguous bitstream, fields may straddle | one or two reads
//	Overflow      | Spanning at k' bits + outlier side array  | O(1) with rank
//
// NonSpanning trades the unused high bits of every word for branch-free
// reads. With k=12 it stores 2 elements per word and wastes 8 bits of each.
//
// Spanning treats the buffer as one bitstream: element i occupies bits
// [i*k, i*k+k). Nothing is wasted except the tail of the last word.
//
// Overflow wraps a Spanning packer with a caller-chosen main width k'. Values
// below the sentinel (1<<k')-1 are stored directly; larger values are replaced
// by the sentinel and appended, in order, to a side array of full 32-bit words.
// A sequence of small values with rare large outliers then costs about k' bits
// per element instead of the width of the largest outlier.
//
// # Basic Usage
//
//	c := packing.NewSpanning()
//	if err := c.Compress([]int64{1, 2, 3, 4, 5, 6, 7, 0, 1, 3}); err != nil {
//	    return err
//	}
//	v, err := c.Get(3)     // 4
//	all := c.Decompress()  // original sequence
//	size := c.SizeInBytes() // 4: thirty bits fit in one word
//
// Strategies can be created by name through the factory:
//
//	strategy, err := format.ParseStrategy("overflow")
//	c, err := packing.CreateCompressor(strategy, packing.WithMainBits(10))
//
// # Value Range
//
// Inputs are int64 so that negative values can be rejected instead of being
// reinterpreted. Values must lie in [0, math.MaxUint32]; anything else makes
// Compress return errs.ErrUnsupportedValue without touching the codec state.
//
// # Thread Safety
//
// Compress is not safe for concurrent use and replaces the codec state in
// place. Once Compress returns, Get, Decompress, All, Words and SizeInBytes
// never mutate the codec and may be called from any number of goroutines.
package packing
