package packing

import (
	"fmt"
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
)

// WordBits is the width of one storage word. All cursor and mask arithmetic
// in this package is derived from it.
const WordBits = 32

// WordBytes is the size of one storage word in bytes.
const WordBytes = WordBits / 8

const (
	wordShift = 5 // log2(WordBits)
	wordMask  = WordBits - 1
)

// Compressor is the contract shared by every packing strategy.
//
// A Compressor starts empty. Compress populates all of its state in one shot,
// replacing anything stored before; every other method is a pure reader.
type Compressor interface {
	// Strategy reports which packing layout the codec uses.
	Strategy() format.Strategy

	// Compress packs data, replacing any previously stored sequence.
	//
	// Empty input is accepted and leaves the codec empty. Negative values and
	// values above math.MaxUint32 return errs.ErrUnsupportedValue, in which
	// case the previous state is kept.
	Compress(data []int64) error

	// Get returns the element at index i without decoding the others.
	// It returns errs.ErrInvalidIndex when i is outside [0, Len()).
	Get(i int) (int64, error)

	// Decompress returns the full sequence. The result is never nil.
	Decompress() []int64

	// All iterates over (index, value) pairs in order in linear time.
	All() iter.Seq2[int, int64]

	// Len returns the number of stored elements.
	Len() int

	// BitsPerElement returns the width k of every packed field, 0 when empty.
	BitsPerElement() int

	// Words returns the packed word buffer. The caller must not modify it.
	Words() []uint32

	// SizeInBytes returns the storage footprint: the word buffer plus any
	// side arrays. It is 0 for an empty codec.
	SizeInBytes() int
}

// bitWidth returns the minimum number of bits needed to store maxVal.
// Zero still needs one bit.
func bitWidth(maxVal uint32) int {
	if maxVal == 0 {
		return 1
	}

	return bits.Len32(maxVal)
}

// lowMask returns a mask of the k low bits, for k in [0, WordBits].
func lowMask(k int) uint32 {
	return uint32(math.MaxUint32) >> (WordBits - k)
}

// maxValue validates data and returns its largest element.
func maxValue(data []int64) (uint32, error) {
	var maxVal int64
	for i, v := range data {
		if v < 0 {
			return 0, fmt.Errorf("%w: negative value %d at index %d", errs.ErrUnsupportedValue, v, i)
		}
		if v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: value %d at index %d exceeds %d bits", errs.ErrUnsupportedValue, v, i, WordBits)
		}
		maxVal = max(maxVal, v)
	}

	return uint32(maxVal), nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrInvalidIndex, i, n)
	}

	return nil
}

// collect drains an All iterator into a non-nil slice of length n.
func collect(n int, seq iter.Seq2[int, int64]) []int64 {
	out := make([]int64, n)
	for i, v := range seq {
		out[i] = v
	}

	return out
}
