package harness

import (
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/bitpack/compress"
	"github.com/arloliu/bitpack/errs"
	"github.com/arloliu/bitpack/format"
)

// StrategyResult is the outcome of one strategy on the input sequence.
type StrategyResult struct {
	Strategy       format.Strategy
	Len            int
	BitsPerElement int
	Words          int
	SizeInBytes    int
	// OverflowCount is the side array length; zero for non-overflow strategies.
	OverflowCount int
	// Fingerprint is the xxHash64 of the packed words.
	Fingerprint uint64

	RoundTripOK bool
	// SampleIndex is len/2, or -1 when the input is empty and Get was skipped.
	SampleIndex int
	SampleWant  int64
	SampleGot   int64
	SampleOK    bool
}

// OK reports whether both the full decode and the sampled Get matched.
func (r StrategyResult) OK() bool {
	return r.RoundTripOK && r.SampleOK
}

// Report collects the results of Run.
type Report struct {
	InputLen int
	// RawSize is the input stored as one 32-bit word per element.
	RawSize   int
	Results   []StrategyResult
	Baselines []compress.CompressionStats
}

// OK reports whether every strategy round-tripped.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return false
		}
	}

	return true
}

// Err returns nil when OK, else an error wrapping errs.ErrRoundTripMismatch
// that names the failing strategies.
func (r *Report) Err() error {
	var failed []string
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res.Strategy.String())
		}
	}
	if len(failed) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %s", errs.ErrRoundTripMismatch, strings.Join(failed, ", "))
}

// Print writes a human-readable report to w.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "input: %d elements, %d bytes as 32-bit words\n", r.InputLen, r.RawSize)

	for _, res := range r.Results {
		fmt.Fprintln(w, strings.Repeat("-", 48))
		fmt.Fprintf(w, "strategy       : %s\n", res.Strategy)
		fmt.Fprintf(w, "bits/element   : %d\n", res.BitsPerElement)
		fmt.Fprintf(w, "words          : %d\n", res.Words)
		if res.Strategy == format.StrategyOverflow {
			fmt.Fprintf(w, "overflow count : %d\n", res.OverflowCount)
		}
		fmt.Fprintf(w, "size           : %d bytes (%s)\n", res.SizeInBytes, ratio(res.SizeInBytes, r.RawSize))
		fmt.Fprintf(w, "fingerprint    : %016x\n", res.Fingerprint)
		fmt.Fprintf(w, "round trip     : %s\n", verdict(res.RoundTripOK))
		if res.SampleIndex >= 0 {
			fmt.Fprintf(w, "get(%d)%s: want=%d got=%d %s\n",
				res.SampleIndex, pad(res.SampleIndex), res.SampleWant, res.SampleGot, verdict(res.SampleOK))
		}
	}

	if len(r.Baselines) > 0 {
		fmt.Fprintln(w, strings.Repeat("-", 48))
		fmt.Fprintln(w, "baselines on raw 32-bit words:")
		for _, b := range r.Baselines {
			fmt.Fprintf(w, "  %-8s %10d bytes (%s)\n",
				b.Algorithm, b.CompressedSize, ratio(int(b.CompressedSize), r.RawSize))
		}
	}
}

func verdict(ok bool) string {
	if ok {
		return "ok"
	}

	return "MISMATCH"
}

func ratio(size, raw int) string {
	if raw == 0 {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%% of raw", 100*float64(size)/float64(raw))
}

// pad aligns the "get(i)" label with the other field names.
func pad(i int) string {
	n := 15 - len(fmt.Sprintf("get(%d)", i))
	if n < 1 {
		n = 1
	}

	return strings.Repeat(" ", n)
}
