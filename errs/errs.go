// Package errs defines the sentinel errors returned by huffpack packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is rather than by equality:
//
//	data, err := huffman.Decompress(container)
//	if errors.Is(err, errs.ErrMalformedContainer) {
//	    // reject the file
//	}
package errs

import "errors"

// Huffman codec errors.
var (
	// ErrEmptyFrequencyTable is returned when a tree is requested for a table with no symbols.
	ErrEmptyFrequencyTable = errors.New("frequency table is empty")
	// ErrMalformedTree is returned when serialized tree text cannot be parsed.
	ErrMalformedTree = errors.New("malformed huffman tree")
	// ErrMalformedContainer is returned when a compressed container cannot be decoded.
	ErrMalformedContainer = errors.New("malformed huffman container")
	// ErrInvalidPadding is returned when a padding bit count is out of range.
	ErrInvalidPadding = errors.New("invalid padding bit count")
	// ErrTruncatedCode is returned when the bitstream ends in the middle of a code.
	ErrTruncatedCode = errors.New("bitstream ends inside a code")
)

// Frame envelope errors.
var (
	// ErrInvalidFrameHeader is returned when the frame header is short or has a bad magic.
	ErrInvalidFrameHeader = errors.New("invalid frame header")
	// ErrUnsupportedVersion is returned for frame versions this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported frame version")
	// ErrSizeMismatch is returned when the decoded length differs from the recorded length.
	ErrSizeMismatch = errors.New("decoded size mismatch")
	// ErrChecksumMismatch is returned when the decoded data fails checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Codec selection errors.
var (
	// ErrUnsupportedCompression is returned for unknown compression types.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	// ErrInputTooLarge is returned when an input exceeds a configured size limit.
	ErrInputTooLarge = errors.New("input exceeds size limit")
)

// Configuration errors.
var (
	// ErrInvalidConfig is returned when a configuration file or value is rejected.
	ErrInvalidConfig = errors.New("invalid configuration")
)
