package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4MaxDecodedSize rejects corrupted length prefixes before allocating.
const lz4MaxDecodedSize = 128 * 1024 * 1024

// LZ4Compressor is the LZ4 baseline.
//
// A raw LZ4 block does not record its decoded length, so each payload is a
// uvarint of the input length followed by one LZ4 block, the same framing
// Snappy and S2 blocks carry. The prefix costs at most a few bytes and is
// included in the reported size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates the LZ4 baseline codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress writes the length prefix and one LZ4 block. Empty input encodes
// to nil.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	prefix := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:prefix+n], nil
}

// Decompress reads the length prefix and decodes the block into a buffer of
// exactly that size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	if prefix <= 0 || size > lz4MaxDecodedSize {
		return nil, fmt.Errorf("lz4 decompression failed: invalid length prefix")
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[prefix:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("lz4 decompression failed: decoded %d of %d bytes", n, size)
	}

	return out, nil
}
