// Command bitpack verifies the bit-packing strategies on an integer sequence.
//
// The sequence comes from -generate, -data, the data key of a -config file,
// or standard input, in that order of preference:
//
//	bitpack -data "[100, 2000, 4095, 0, 1234, 567]"
//	echo 1 2 3 4 5 6 7 0 1 3 | bitpack -strategies spanning
//	bitpack -generate 10000 -main-bits 10 -baselines zstd,lz4 -bench 1
//
// Flags given on the command line override the -config file.
//
// The exit status is 1 when a strategy fails to reproduce its input or when
// the input or settings are rejected.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/arloliu/bitpack/endian"
	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
	"github.com/arloliu/bitpack/harness"
	"github.com/arloliu/bitpack/internal/pool"
	"github.com/arloliu/bitpack/packing"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bitpack", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dataFlag := fs.String("data", "", "Integer sequence, e.g. \"[1, 2, 3]\" or \"1,2,3\"")
	configPath := fs.String("config", "", "YAML run configuration file")
	strategiesFlag := fs.String("strategies", "", "Comma-separated strategies: non_spanning, spanning, overflow (default all)")
	mainBits := fs.Int("main-bits", packing.DefaultMainBits, "Overflow main bit width")
	baselinesFlag := fs.String("baselines", "", "Comma-separated baseline codecs: none, zstd, s2, lz4, snappy")
	benchFlag := fs.Int("bench", 0, "Benchmark rounds multiplier (0 disables timing)")
	generate := fs.Int("generate", 0, "Generate N outlier-heavy values instead of reading input")
	seed := fs.Int64("seed", 1, "Seed for -generate")
	outPath := fs.String("out", "", "Write the packed words of the first strategy to this file")
	bigEndian := fs.Bool("big-endian", false, "Write -out words in big-endian byte order")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var (
		opts        []harness.Option
		fileData    []int64
		benchRounds int
	)
	if *configPath != "" {
		fc, err := harness.LoadConfig(*configPath)
		if err == nil {
			opts, err = fc.Options()
		}
		if err != nil {
			logger.Error("invalid config", "path", *configPath, "error", err)
			return 1
		}
		fileData = fc.Data
		benchRounds = fc.BenchRounds
	}

	flagOpts, err := flagOptions(set, *strategiesFlag, *mainBits, *baselinesFlag)
	if err != nil {
		logger.Error("invalid flags", "error", err)
		return 1
	}
	opts = append(opts, flagOpts...)
	opts = append(opts, harness.WithLogger(logger))

	cfg, err := harness.NewConfig(opts...)
	if err != nil {
		logger.Error("invalid settings", "error", err)
		return 1
	}

	if set["bench"] {
		benchRounds = *benchFlag
	}
	if benchRounds < 0 {
		logger.Error("invalid settings", "error", fmt.Sprintf("bench rounds must not be negative, got %d", benchRounds))
		return 1
	}

	data, err := loadData(set, *dataFlag, fileData, *generate, cfg.MainBits(), *seed, stdin)
	if err != nil {
		logger.Error("invalid input", "error", err)
		return 1
	}

	report, err := harness.Run(data, opts...)
	if err != nil {
		logger.Error("run failed", "error", err)
		return 1
	}
	report.Print(stdout)

	if benchRounds > 0 {
		timings, err := harness.Benchmark(data, benchRounds, opts...)
		if err != nil {
			logger.Error("benchmark failed", "error", err)
			return 1
		}
		printTimings(stdout, timings, benchRounds)
	}

	if *outPath != "" {
		engine := endian.GetLittleEndianEngine()
		if *bigEndian {
			engine = endian.GetBigEndianEngine()
		}
		strategy := cfg.Strategies()[0]
		if err := writeWords(*outPath, strategy, cfg.MainBits(), data, engine); err != nil {
			logger.Error("write packed words", "path", *outPath, "error", err)
			return 1
		}
		logger.Info("packed words written", "path", *outPath, "strategy", strategy.String())
	}

	if err := report.Err(); err != nil {
		logger.Error("verification failed", "error", err)
		return 1
	}

	return 0
}

// flagOptions turns the explicitly set flags into harness options. They are
// applied after the -config options, so they win.
func flagOptions(set map[string]bool, strategies string, mainBits int, baselines string) ([]harness.Option, error) {
	var opts []harness.Option

	if set["strategies"] {
		var list []format.Strategy
		for _, name := range splitList(strategies) {
			st, err := format.ParseStrategy(name)
			if err != nil {
				return nil, err
			}
			list = append(list, st)
		}
		opts = append(opts, harness.WithStrategies(list...))
	}

	if set["main-bits"] {
		opts = append(opts, harness.WithMainBits(mainBits))
	}

	if set["baselines"] {
		var list []format.CompressionType
		for _, name := range splitList(baselines) {
			ct, err := format.ParseCompressionType(name)
			if err != nil {
				return nil, err
			}
			list = append(list, ct)
		}
		opts = append(opts, harness.WithBaselines(list...))
	}

	return opts, nil
}

func loadData(set map[string]bool, data string, fileData []int64, generate, mainBits int, seed int64, stdin io.Reader) ([]int64, error) {
	switch {
	case generate > 0:
		return harness.GenerateOutlierData(generate, mainBits, 0.05, seed)
	case set["data"]:
		return harness.ParseInput(data)
	case fileData != nil:
		return fileData, nil
	default:
		return harness.ReadInput(stdin)
	}
}

func splitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func printTimings(w io.Writer, timings []harness.Timing, rounds int) {
	fmt.Fprintln(w, strings.Repeat("-", 48))
	fmt.Fprintf(w, "benchmark (compress x%d, decompress x%d, get x%d):\n",
		harness.CompressRuns*rounds, harness.DecompressRuns*rounds, harness.GetRuns*rounds)
	for _, t := range timings {
		fmt.Fprintf(w, "  %-13s compress=%-12s decompress=%-12s get=%s\n",
			t.Strategy, t.Compress, t.Decompress, t.Get)
	}
}

// writeWords packs data with strategy, writes the raw word buffer with no
// header to path, then reads the file back and checks that it decodes to
// the same words.
func writeWords(path string, strategy format.Strategy, mainBits int, data []int64, engine endian.EndianEngine) error {
	c, err := packing.CreateCompressor(strategy, packing.WithMainBits(mainBits))
	if err != nil {
		return err
	}
	if err := c.Compress(data); err != nil {
		return err
	}

	buf := pool.GetWordBuffer()
	defer pool.PutWordBuffer(buf)
	buf.AppendWords(engine, c.Words())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return verifyWords(path, engine, c.Words())
}

func verifyWords(path string, engine endian.EndianEngine, want []uint32) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	got, err := endian.DecodeWords(engine, raw)
	if err != nil {
		return err
	}
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: %s holds %d words, want %d", errs.ErrRoundTripMismatch, path, len(got), len(want))
	}

	return nil
}
