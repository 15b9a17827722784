package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/internal/hash"
	"github.com/arloliu/bitpack/packing"
)

func TestNewCompressor(t *testing.T) {
	tests := []struct {
		name     string
		strategy format.Strategy
	}{
		{"non_spanning", format.StrategyNonSpanning},
		{"spanning", format.StrategySpanning},
		{"overflow", format.StrategyOverflow},
		{" Spanning ", format.StrategySpanning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompressor(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.strategy, c.Strategy())
			require.Zero(t, c.Len())
		})
	}

	_, err := NewCompressor("zigzag")
	require.ErrorIs(t, err, errs.ErrUnknownStrategy)
	require.ErrorContains(t, err, "zigzag")

	_, err = NewCompressor("overflow", packing.WithMainBits(0))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestScenarios(t *testing.T) {
	simple := []int64{1, 2, 3, 4, 5, 6, 7, 0, 1, 3}
	medium := []int64{100, 2000, 4095, 0, 1234, 567}
	outliers := []int64{1, 2, 3, 1024, 4, 5, 2048, 6}

	ns := NewNonSpanning()
	require.NoError(t, ns.Compress(simple))
	require.Equal(t, 3, ns.BitsPerElement())
	require.Equal(t, 10, ns.ElementsPerWord())
	require.Equal(t, 4, ns.SizeInBytes())
	require.Equal(t, simple, ns.Decompress())

	sp := NewSpanning()
	require.NoError(t, sp.Compress(medium))
	require.Equal(t, 12, sp.BitsPerElement())
	require.Equal(t, 12, sp.SizeInBytes())
	v, err := sp.Get(3)
	require.NoError(t, err)
	require.Equal(t, int64(0), v)

	ov, err := NewOverflow(3)
	require.NoError(t, err)
	require.NoError(t, ov.Compress(outliers))
	require.Equal(t, []uint32{1024, 2048}, ov.OverflowValues())
	require.Equal(t, 12, ov.SizeInBytes())
	v, err = ov.Get(6)
	require.NoError(t, err)
	require.Equal(t, int64(2048), v)
	require.Equal(t, outliers, ov.Decompress())

	_, err = NewOverflow(33)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestFingerprint(t *testing.T) {
	a := NewSpanning()
	require.NoError(t, a.Compress([]int64{100, 2000, 4095, 0, 1234, 567}))
	b := NewSpanning()
	require.NoError(t, b.Compress([]int64{100, 2000, 4095, 0, 1234, 567}))
	c := NewSpanning()
	require.NoError(t, c.Compress([]int64{100, 2000, 4095, 0, 1234, 568}))

	require.Equal(t, Fingerprint(a.Words()), Fingerprint(b.Words()))
	require.NotEqual(t, Fingerprint(a.Words()), Fingerprint(c.Words()))
	require.Equal(t, hash.Bytes(nil), Fingerprint(nil))
}
