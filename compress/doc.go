// Package compress provides general-purpose byte codecs used as size baselines
// for packed word buffers.
//
// Bit packing exploits one property of a sequence: the width of its largest
// value. General-purpose compressors exploit repetition instead. Comparing the
// bit-packed footprint against the raw input run through Zstd, S2, LZ4 or
// Snappy shows whether a strategy pays off on a given data set; the harness
// reports both side by side.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are obtained by type:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "baseline")
//	stats, err := compress.Measure(format.CompressionZstd, codec, raw)
//	fmt.Printf("%s: %d -> %d bytes\n", stats.Algorithm, stats.OriginalSize, stats.CompressedSize)
//
// # Supported Algorithms
//
//	Type              | Library                      | Notes
//	------------------|------------------------------|------------------------------
//	CompressionNone   | -                            | returns input unchanged
//	CompressionZstd   | klauspost/compress/zstd      | best ratio, pooled coders
//	CompressionS2     | klauspost/compress/s2        | fast, Snappy-derived
//	CompressionLZ4    | pierrec/lz4/v4               | block mode, fastest decode
//	CompressionSnappy | golang/snappy                | block format
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4
// keep their heavy coder state in sync.Pools.
package compress
