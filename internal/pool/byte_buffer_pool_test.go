package pool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitpack/endian"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 128, cap(bb.B))
}

func TestByteBuffer_AppendWords(t *testing.T) {
	t.Run("little endian", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.AppendWords(endian.GetLittleEndianEngine(), []uint32{0x04030201, 0xAABBCCDD})

		require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0xDD, 0xCC, 0xBB, 0xAA}, bb.Bytes())
	})

	t.Run("big endian", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.AppendWords(endian.GetBigEndianEngine(), []uint32{0x04030201})

		require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, bb.Bytes())
	})

	t.Run("empty words", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.AppendWords(endian.GetLittleEndianEngine(), nil)

		require.Equal(t, 0, bb.Len())
	})
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity is a no-op", func(t *testing.T) {
		bb := NewByteBuffer(64)
		before := cap(bb.B)
		bb.Grow(32)
		assert.Equal(t, before, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.B = append(bb.B, make([]byte, 16)...)
		bb.Grow(1)
		assert.GreaterOrEqual(t, cap(bb.B), 16+WordBufferDefaultSize)
		assert.Equal(t, 16, bb.Len())
	})

	t.Run("large request wins over default growth", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(WordBufferDefaultSize * 10)
		assert.GreaterOrEqual(t, cap(bb.B), WordBufferDefaultSize*10)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("abcd"))
		bb.Grow(1024)
		assert.Equal(t, []byte("abcd"), bb.Bytes())
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("packed"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "packed", out.String())

	_, err = bb.WriteTo(failingWriter{})
	require.EqualError(t, err, "disk full")
}

func TestWordBufferPool(t *testing.T) {
	bb := GetWordBuffer()
	require.NotNil(t, bb)
	require.GreaterOrEqual(t, cap(bb.B), WordBufferDefaultSize)

	bb.AppendWords(endian.GetLittleEndianEngine(), []uint32{1, 2, 3})
	PutWordBuffer(bb)

	again := GetWordBuffer()
	defer PutWordBuffer(again)
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	require.NotPanics(t, func() { PutWordBuffer(nil) })
}

func TestByteBufferPool_DropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(8, 16)
	bb := p.Get()
	bb.Grow(1024)
	require.NotPanics(t, func() { p.Put(bb) })
}
