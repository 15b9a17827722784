package packing

import (
	"iter"

	"github.com/arloliu/bitpack/format"
)

// Spanning packs elements back to back in one contiguous bitstream.
//
// Element i occupies bits [i*k, i*k+k) of the buffer, counting from bit 0 of
// word 0. A field may start in one word and finish in the low bits of the next.
type Spanning struct {
	words []uint32
	n     int
	k     int
}

var _ Compressor = (*Spanning)(nil)

// NewSpanning creates an empty spanning packer.
func NewSpanning() *Spanning {
	return &Spanning{}
}

// Strategy returns format.StrategySpanning.
func (c *Spanning) Strategy() format.Strategy {
	return format.StrategySpanning
}

// Compress packs data, replacing any previously stored sequence.
//
// Returns errs.ErrUnsupportedValue for negative values or values wider than
// a word; the previous state is kept in that case.
func (c *Spanning) Compress(data []int64) error {
	maxVal, err := maxValue(data)
	if err != nil {
		return err
	}

	storeSpanning(c, data, maxVal)

	return nil
}

// load packs values that are already known to fit in a word.
func (c *Spanning) load(values []uint32) {
	var maxVal uint32
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	storeSpanning(c, values, maxVal)
}

func storeSpanning[T int64 | uint32](c *Spanning, data []T, maxVal uint32) {
	if len(data) == 0 {
		*c = Spanning{}
		return
	}

	k := bitWidth(maxVal)
	c.words = packSpanning(data, k)
	c.n = len(data)
	c.k = k
}

// packSpanning writes every value into the bitstream with a global bit cursor.
// The cursor advances by exactly k per value, so the OR-writes of one value
// never reach into the field of the next.
func packSpanning[T int64 | uint32](data []T, k int) []uint32 {
	words := make([]uint32, (len(data)*k+WordBits-1)/WordBits)
	mask := lowMask(k)

	cursor := 0
	for _, v := range data {
		val := uint32(v) & mask
		idx := cursor >> wordShift
		offset := cursor & wordMask

		words[idx] |= val << offset
		if written := WordBits - offset; written < k && idx+1 < len(words) {
			words[idx+1] |= val >> written
		}

		cursor += k
	}

	return words
}

// readField extracts the k-bit field starting at bit cursor.
func readField(words []uint32, cursor, k int) uint32 {
	idx := cursor >> wordShift
	offset := cursor & wordMask

	val := words[idx] >> offset
	if read := WordBits - offset; read < k && idx+1 < len(words) {
		val |= (words[idx+1] & lowMask(k-read)) << read
	}

	return val & lowMask(k)
}

// at returns element i without a bounds check against n.
func (c *Spanning) at(i int) uint32 {
	return readField(c.words, i*c.k, c.k)
}

// Get returns the element at index i.
func (c *Spanning) Get(i int) (int64, error) {
	if err := checkIndex(i, c.n); err != nil {
		return 0, err
	}

	return int64(c.at(i)), nil
}

// Decompress returns the full sequence with a single forward cursor.
func (c *Spanning) Decompress() []int64 {
	return collect(c.n, c.All())
}

// All iterates over the stored elements in order.
func (c *Spanning) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		c.fields(c.n, func(i int, v uint32) bool {
			return yield(i, int64(v))
		})
	}
}

// fields walks the first n fields, stopping when fn returns false.
func (c *Spanning) fields(n int, fn func(int, uint32) bool) {
	cursor := 0
	for i := 0; i < n; i++ {
		if !fn(i, readField(c.words, cursor, c.k)) {
			return
		}
		cursor += c.k
	}
}

// Len returns the number of stored elements.
func (c *Spanning) Len() int { return c.n }

// BitsPerElement returns k.
func (c *Spanning) BitsPerElement() int { return c.k }

// Words returns the packed buffer.
func (c *Spanning) Words() []uint32 { return c.words }

// SizeInBytes returns len(Words())*4.
func (c *Spanning) SizeInBytes() int { return len(c.words) * WordBytes }
