package packing

import (
	"iter"

	"github.com/arloliu/bitpack/format"
)

// NonSpanning packs floor(32/k) elements into each word and never lets an
// element cross a word boundary.
//
// Word w holds elements [w*perWord, (w+1)*perWord) in k-bit sub-fields at
// offsets local*k; the unused high bits of every word stay zero. Reads touch
// exactly one word.
type NonSpanning struct {
	words   []uint32
	n       int
	k       int
	perWord int
}

var _ Compressor = (*NonSpanning)(nil)

// NewNonSpanning creates an empty non-spanning packer.
func NewNonSpanning() *NonSpanning {
	return &NonSpanning{}
}

// Strategy returns format.StrategyNonSpanning.
func (c *NonSpanning) Strategy() format.Strategy {
	return format.StrategyNonSpanning
}

// Compress packs data, replacing any previously stored sequence.
//
// Returns errs.ErrUnsupportedValue for negative values or values wider than
// a word; the previous state is kept in that case.
func (c *NonSpanning) Compress(data []int64) error {
	maxVal, err := maxValue(data)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		*c = NonSpanning{}
		return nil
	}

	k := bitWidth(maxVal)
	perWord := WordBits / k
	words := make([]uint32, (len(data)+perWord-1)/perWord)

	idx, slot := 0, 0
	for _, v := range data {
		words[idx] |= uint32(v) << (slot * k)
		slot++
		if slot == perWord {
			idx++
			slot = 0
		}
	}

	c.words = words
	c.n = len(data)
	c.k = k
	c.perWord = perWord

	return nil
}

// Get returns the element at index i.
func (c *NonSpanning) Get(i int) (int64, error) {
	if err := checkIndex(i, c.n); err != nil {
		return 0, err
	}

	offset := (i % c.perWord) * c.k

	return int64((c.words[i/c.perWord] >> offset) & lowMask(c.k)), nil
}

// Decompress returns the full sequence by walking the buffer word by word.
func (c *NonSpanning) Decompress() []int64 {
	return collect(c.n, c.All())
}

// All iterates over the stored elements in order.
func (c *NonSpanning) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		mask := lowMask(c.k)
		i := 0
		for _, w := range c.words {
			for slot := 0; slot < c.perWord && i < c.n; slot++ {
				if !yield(i, int64((w>>(slot*c.k))&mask)) {
					return
				}
				i++
			}
		}
	}
}

// Len returns the number of stored elements.
func (c *NonSpanning) Len() int { return c.n }

// BitsPerElement returns k.
func (c *NonSpanning) BitsPerElement() int { return c.k }

// ElementsPerWord returns floor(32/k), or 0 when empty.
func (c *NonSpanning) ElementsPerWord() int { return c.perWord }

// Words returns the packed buffer.
func (c *NonSpanning) Words() []uint32 { return c.words }

// SizeInBytes returns len(Words())*4.
func (c *NonSpanning) SizeInBytes() int { return len(c.words) * WordBytes }
