package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Words computes the xxHash64 of a packed word buffer.
//
// Words are hashed as little-endian 4-byte units regardless of host byte
// order, so the fingerprint of a buffer is stable across platforms.
func Words(words []uint32) uint64 {
	d := xxhash.New()

	var chunk [256]byte
	n := 0
	for _, w := range words {
		binary.LittleEndian.PutUint32(chunk[n:], w)
		n += 4
		if n == len(chunk) {
			_, _ = d.Write(chunk[:])
			n = 0
		}
	}
	if n > 0 {
		_, _ = d.Write(chunk[:n])
	}

	return d.Sum64()
}

// Bytes computes the xxHash64 of raw bytes.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
