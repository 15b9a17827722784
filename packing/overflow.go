package packing

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/internal/pool"
)

// Overflow stores most values in a Spanning packer at a fixed main width and
// diverts the rest to a side array.
//
// With main width k', the sentinel is (1<<k')-1. A value below the sentinel is
// packed as is; any other value, including one equal to the sentinel, is
// packed as the sentinel and appended to the side array. Side array entries
// keep their original order, so the j-th sentinel in the main stream refers to
// the j-th side array entry.
//
// Overflow keeps a rank directory of diverted positions: one bit per element
// and a running count per 64-element block. Get resolves a sentinel to its side
// array slot in constant time instead of rescanning the main stream.
type Overflow struct {
	inner    *Spanning
	mainBits int
	sentinel uint32
	n        int

	overflow []uint32
	marks    []uint64 // bit i%64 of marks[i/64] is set when element i is diverted
	ranks    []uint32 // number of diverted elements before block b
}

var _ Compressor = (*Overflow)(nil)

// NewOverflow creates an empty overflow packer with main width mainBits.
//
// Parameters:
//   - mainBits: Width k' of the main stream, in [1, 32]
//
// Returns:
//   - *Overflow: Empty packer
//   - error: errs.ErrInvalidConfiguration if mainBits is out of range
func NewOverflow(mainBits int) (*Overflow, error) {
	if err := validateMainBits(mainBits); err != nil {
		return nil, err
	}

	return &Overflow{
		inner:    NewSpanning(),
		mainBits: mainBits,
		sentinel: lowMask(mainBits),
	}, nil
}

func validateMainBits(mainBits int) error {
	if mainBits < 1 || mainBits > WordBits {
		return fmt.Errorf("%w: main bits %d not in [1, %d]", errs.ErrInvalidConfiguration, mainBits, WordBits)
	}

	return nil
}

// Strategy returns format.StrategyOverflow.
func (c *Overflow) Strategy() format.Strategy {
	return format.StrategyOverflow
}

// Compress splits data into the main stream and the side array and packs the
// main stream, replacing any previously stored sequence.
//
// The main stream gets one extra trailing value, sentinel-1, before packing.
// It forces the inner packer to exactly MainBits() bits even when every
// stored value is small. The extra field is never counted by Len or returned
// by any reader.
func (c *Overflow) Compress(data []int64) error {
	if _, err := maxValue(data); err != nil {
		return err
	}

	n := len(data)
	if n == 0 {
		c.inner = NewSpanning()
		c.n = 0
		c.overflow, c.marks, c.ranks = nil, nil, nil

		return nil
	}

	main, cleanup := pool.GetUint32Slice(n + 1)
	defer cleanup()

	var overflow []uint32
	marks := make([]uint64, (n+63)/64)
	for i, v := range data {
		val := uint32(v)
		if val < c.sentinel {
			main[i] = val
			continue
		}

		main[i] = c.sentinel
		marks[i>>6] |= 1 << (i & 63)
		overflow = append(overflow, val)
	}
	main[n] = c.sentinel - 1

	inner := NewSpanning()
	inner.load(main)

	c.inner = inner
	c.n = n
	c.overflow = overflow
	c.marks, c.ranks = nil, nil
	if len(overflow) > 0 {
		c.marks = marks
		c.ranks = buildRanks(marks)
	}

	return nil
}

func buildRanks(marks []uint64) []uint32 {
	ranks := make([]uint32, len(marks))

	var total uint32
	for b, m := range marks {
		ranks[b] = total
		total += uint32(bits.OnesCount64(m))
	}

	return ranks
}

// rank returns the number of diverted elements before index i.
func (c *Overflow) rank(i int) int {
	block := i >> 6
	below := c.marks[block] & (1<<(i&63) - 1)

	return int(c.ranks[block]) + bits.OnesCount64(below)
}

// Get returns the element at index i.
func (c *Overflow) Get(i int) (int64, error) {
	if err := checkIndex(i, c.n); err != nil {
		return 0, err
	}

	v := c.inner.at(i)
	if v != c.sentinel {
		return int64(v), nil
	}

	return int64(c.overflow[c.rank(i)]), nil
}

// Decompress returns the full sequence in one forward pass that consumes the
// side array in order.
func (c *Overflow) Decompress() []int64 {
	return collect(c.n, c.All())
}

// All iterates over the stored elements in order.
func (c *Overflow) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		next := 0
		c.inner.fields(c.n, func(i int, v uint32) bool {
			if v == c.sentinel {
				v = c.overflow[next]
				next++
			}

			return yield(i, int64(v))
		})
	}
}

// Len returns the number of stored elements, excluding the internal
// width-forcing field.
func (c *Overflow) Len() int { return c.n }

// BitsPerElement returns the width of the main stream, MainBits() once
// anything is stored.
func (c *Overflow) BitsPerElement() int { return c.inner.BitsPerElement() }

// MainBits returns the configured main width k'.
func (c *Overflow) MainBits() int { return c.mainBits }

// Sentinel returns (1<<MainBits())-1.
func (c *Overflow) Sentinel() uint32 { return c.sentinel }

// OverflowValues returns the side array. The caller must not modify it.
func (c *Overflow) OverflowValues() []uint32 { return c.overflow }

// OverflowCount returns the number of diverted values.
func (c *Overflow) OverflowCount() int { return len(c.overflow) }

// Words returns the main stream's packed buffer.
func (c *Overflow) Words() []uint32 { return c.inner.Words() }

// SizeInBytes returns the main stream size plus 4 bytes per side array entry.
// The rank directory is a read index and is not counted.
func (c *Overflow) SizeInBytes() int {
	return c.inner.SizeInBytes() + len(c.overflow)*WordBytes
}
