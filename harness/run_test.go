package harness

import (
	"bytes"
	"iter"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/internal/hash"
	"github.com/arloliu/bitpack/packing"
)

var scenarioB = []int64{100, 2000, 4095, 0, 1234, 567}

func TestRun_AllStrategies(t *testing.T) {
	report, err := Run(scenarioB)
	require.NoError(t, err)
	require.True(t, report.OK())
	require.NoError(t, report.Err())
	require.Equal(t, 6, report.InputLen)
	require.Equal(t, 24, report.RawSize)
	require.Len(t, report.Results, 3)

	byStrategy := make(map[format.Strategy]StrategyResult)
	for _, res := range report.Results {
		byStrategy[res.Strategy] = res
		require.Equal(t, 6, res.Len)
		require.Equal(t, 3, res.SampleIndex)
		require.Equal(t, int64(0), res.SampleWant)
		require.Equal(t, int64(0), res.SampleGot)
	}

	ns := byStrategy[format.StrategyNonSpanning]
	require.Equal(t, 12, ns.BitsPerElement)
	require.Equal(t, 12, ns.SizeInBytes)

	sp := byStrategy[format.StrategySpanning]
	require.Equal(t, 12, sp.BitsPerElement)
	require.Equal(t, 3, sp.Words)
	require.Equal(t, 12, sp.SizeInBytes)

	// Main width 8: 2000, 4095, 1234 and 567 reach the sentinel 255.
	ov := byStrategy[format.StrategyOverflow]
	require.Equal(t, 8, ov.BitsPerElement)
	require.Equal(t, 4, ov.OverflowCount)
	require.Equal(t, 2, ov.Words)
	require.Equal(t, 2*4+4*4, ov.SizeInBytes)
}

func TestRun_Fingerprint(t *testing.T) {
	report, err := Run(scenarioB, WithStrategies(format.StrategySpanning))
	require.NoError(t, err)

	c := packing.NewSpanning()
	require.NoError(t, c.Compress(scenarioB))
	require.Equal(t, hash.Words(c.Words()), report.Results[0].Fingerprint)
}

func TestRun_EmptyInput(t *testing.T) {
	report, err := Run([]int64{}, WithBaselines(format.CompressionTypes...))
	require.NoError(t, err)
	require.True(t, report.OK())

	for _, res := range report.Results {
		require.Equal(t, -1, res.SampleIndex)
		require.Zero(t, res.SizeInBytes)
		require.True(t, res.RoundTripOK)
	}
	require.Len(t, report.Baselines, len(format.CompressionTypes))
}

func TestRun_UnsupportedValue(t *testing.T) {
	_, err := Run([]int64{1, -2, 3})
	require.ErrorIs(t, err, errs.ErrUnsupportedValue)

	_, err = Run([]int64{1 << 33})
	require.ErrorIs(t, err, errs.ErrUnsupportedValue)
}

func TestRun_Baselines(t *testing.T) {
	data, err := GenerateOutlierData(4096, 10, 0.05, 7)
	require.NoError(t, err)

	report, err := Run(data, WithBaselines(format.CompressionNone, format.CompressionZstd))
	require.NoError(t, err)
	require.Len(t, report.Baselines, 2)

	require.Equal(t, format.CompressionNone, report.Baselines[0].Algorithm)
	require.Equal(t, int64(report.RawSize), report.Baselines[0].CompressedSize)
	for _, b := range report.Baselines[1:] {
		require.Less(t, b.CompressedSize, int64(report.RawSize), b.Algorithm.String())
	}
}

type skewedGet struct {
	packing.Compressor
}

func (s skewedGet) Get(i int) (int64, error) {
	v, err := s.Compressor.Get(i)
	return v + 1, err
}

func skewedFactory(strategy format.Strategy, opts ...packing.Option) (packing.Compressor, error) {
	c, err := packing.CreateCompressor(strategy, opts...)
	if err != nil {
		return nil, err
	}

	return skewedGet{c}, nil
}

func TestRun_DetectsMismatch(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	report, err := Run(scenarioB,
		WithStrategies(format.StrategyOverflow),
		WithLogger(logger),
		withFactory(skewedFactory),
	)
	require.NoError(t, err)
	require.False(t, report.OK())

	res := report.Results[0]
	require.True(t, res.RoundTripOK)
	require.False(t, res.SampleOK)
	require.Equal(t, int64(1), res.SampleGot)

	err = report.Err()
	require.ErrorIs(t, err, errs.ErrRoundTripMismatch)
	require.ErrorContains(t, err, "overflow")

	require.Contains(t, logs.String(), "round-trip mismatch")
	require.Contains(t, logs.String(), "strategy=overflow")

	var out bytes.Buffer
	report.Print(&out)
	require.Contains(t, out.String(), "MISMATCH")
}

// truncatedAll yields every element but the last.
type truncatedAll struct {
	packing.Compressor
}

func (c truncatedAll) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		for i, v := range c.Compressor.All() {
			if i == c.Len()-1 || !yield(i, v) {
				return
			}
		}
	}
}

func TestRun_DetectsIteratorMismatch(t *testing.T) {
	create := func(strategy format.Strategy, opts ...packing.Option) (packing.Compressor, error) {
		c, err := packing.CreateCompressor(strategy, opts...)
		if err != nil {
			return nil, err
		}

		return truncatedAll{c}, nil
	}

	report, err := Run(scenarioB, WithStrategies(format.StrategySpanning), withFactory(create))
	require.NoError(t, err)
	require.False(t, report.OK())
	require.False(t, report.Results[0].RoundTripOK)
	require.True(t, report.Results[0].SampleOK)
	require.ErrorIs(t, report.Err(), errs.ErrRoundTripMismatch)

	// An empty sequence has nothing to drop.
	report, err = Run([]int64{}, WithStrategies(format.StrategySpanning), withFactory(create))
	require.NoError(t, err)
	require.True(t, report.OK())
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, format.Strategies, cfg.Strategies())
	require.Equal(t, packing.DefaultMainBits, cfg.MainBits())
	require.Empty(t, cfg.Baselines())

	cfg, err = NewConfig(WithMainBits(5), WithMainBits(12), WithStrategies(format.StrategyOverflow))
	require.NoError(t, err)
	require.Equal(t, 12, cfg.MainBits())
	require.Equal(t, []format.Strategy{format.StrategyOverflow}, cfg.Strategies())
}

func TestRun_DebugLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(scenarioB, WithLogger(logger), WithBaselines(format.CompressionLZ4))
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(logs.String(), "msg=\"strategy run\""))
	require.Contains(t, logs.String(), "codec=LZ4")
}

func TestRun_InvalidOptions(t *testing.T) {
	_, err := Run(scenarioB, WithMainBits(0))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = Run(scenarioB, WithMainBits(33))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = Run(scenarioB, WithStrategies())
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = Run(scenarioB, WithStrategies(format.Strategy(9)))
	require.ErrorIs(t, err, errs.ErrUnknownStrategy)

	_, err = Run(scenarioB, WithBaselines(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestReport_Print(t *testing.T) {
	report, err := Run(scenarioB, WithBaselines(format.CompressionNone))
	require.NoError(t, err)

	var out bytes.Buffer
	report.Print(&out)
	text := out.String()

	require.Contains(t, text, "input: 6 elements, 24 bytes as 32-bit words")
	require.Contains(t, text, "strategy       : non_spanning")
	require.Contains(t, text, "strategy       : spanning")
	require.Contains(t, text, "overflow count : 4")
	require.Contains(t, text, "size           : 12 bytes (50.0% of raw)")
	require.Contains(t, text, "round trip     : ok")
	require.Contains(t, text, "get(3)")
	require.Contains(t, text, "want=0 got=0 ok")
	require.Contains(t, text, "baselines on raw 32-bit words:")
	require.NotContains(t, text, "MISMATCH")
}
