// Package harness verifies and times the bit-packing codecs on a concrete
// integer sequence.
//
// Run compresses the sequence with each requested strategy, decodes it back,
// samples Get at the middle index and records the packed size, the xxHash64
// fingerprint of the packed words and, optionally, the size general-purpose
// codecs reach on the same input stored as raw 32-bit words:
//
//	report, err := harness.Run(data,
//	    harness.WithMainBits(10),
//	    harness.WithBaselines(format.CompressionZstd, format.CompressionLZ4),
//	)
//	if err != nil {
//	    return err
//	}
//	report.Print(os.Stdout)
//	if !report.OK() {
//	    return report.Err()
//	}
//
// Benchmark measures mean compress, decompress and Get latencies, and
// GenerateOutlierData builds the mostly-small, occasionally-huge sequences the
// overflow strategy is designed for. LoadConfig reads the same settings from a
// YAML file.
package harness
