// Package errs defines the sentinel errors returned by bitpack packages.
//
// Callers match them with errors.Is; returned errors usually wrap one of these
// with the offending value or index.
package errs

import "errors"

// Codec usage errors.
var (
	// ErrInvalidIndex is returned by Get when the index is outside [0, Len()).
	ErrInvalidIndex = errors.New("index out of range")

	// ErrUnknownStrategy is returned when a strategy name or value is not recognized.
	ErrUnknownStrategy = errors.New("unknown compressor strategy")

	// ErrInvalidConfiguration is returned for unsupported codec settings,
	// such as an overflow main bit width outside [1, 32].
	ErrInvalidConfiguration = errors.New("invalid compressor configuration")

	// ErrUnsupportedValue is returned by Compress for negative values or values
	// wider than a 32-bit word.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Harness and baseline errors.
var (
	// ErrUnknownCompression is returned for an unrecognized baseline codec.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrInvalidInput is returned when an integer sequence cannot be parsed.
	ErrInvalidInput = errors.New("invalid input sequence")

	// ErrRoundTripMismatch is returned when decoded data differs from the input.
	ErrRoundTripMismatch = errors.New("round-trip mismatch")

	// ErrInvalidWordBuffer is returned when a raw word buffer has a length
	// that is not a multiple of the word size.
	ErrInvalidWordBuffer = errors.New("invalid word buffer length")
)
