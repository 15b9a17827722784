// Package endian provides the byte-order engines used to serialize packed
// word buffers.
//
// A packed buffer is a []uint32. Its only byte form is the raw sequence of
// 4-byte words in a chosen byte order, with no header:
//
//	engine := endian.GetLittleEndianEngine()
//	raw := endian.AppendWords(engine, nil, c.Words())
//	words, err := endian.DecodeWords(engine, raw)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/bitpack/errs"
)

// WordSize is the serialized size of one packed word in bytes.
const WordSize = 4

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendWords appends each word of words to dst as 4 bytes in engine's order.
//
// Parameters:
//   - engine: Byte order to write
//   - dst: Destination slice, may be nil
//   - words: Packed word buffer
//
// Returns:
//   - []byte: dst extended by len(words)*WordSize bytes
func AppendWords(engine EndianEngine, dst []byte, words []uint32) []byte {
	for _, w := range words {
		dst = engine.AppendUint32(dst, w)
	}

	return dst
}

// DecodeWords parses a raw word buffer written by AppendWords.
//
// Parameters:
//   - engine: Byte order the buffer was written with
//   - data: Raw bytes; length must be a multiple of WordSize
//
// Returns:
//   - []uint32: Decoded words (nil for empty data)
//   - error: errs.ErrInvalidWordBuffer if len(data) is not a multiple of WordSize
func DecodeWords(engine EndianEngine, data []byte) ([]uint32, error) {
	if len(data)%WordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidWordBuffer, len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}

	words := make([]uint32, len(data)/WordSize)
	for i := range words {
		words[i] = engine.Uint32(data[i*WordSize:])
	}

	return words, nil
}
