package frame

import (
	"fmt"

	"github.com/arloliu/huffpack/endian"
	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/format"
)

const (
	// HeaderSize is the fixed size of a frame header in bytes.
	HeaderSize = 24

	// Magic identifies a frame.
	Magic = "HFPK"

	// Version is the only frame version this package reads and writes.
	Version uint8 = 1

	// FlagBigEndian marks the 64-bit header fields as big-endian.
	FlagBigEndian uint8 = 0x01

	knownFlags = FlagBigEndian
)

// Header is the fixed-size frame header.
type Header struct {
	// Version is the frame format version. byte offset 4
	Version uint8
	// Compression identifies the codec that produced the payload. byte offset 5
	Compression format.CompressionType
	// Flags holds the FlagXxx bits. byte offset 6
	Flags uint8
	// OriginalSize is the length of the uncompressed data. byte offset 8-15
	OriginalSize uint64
	// Checksum is the xxHash64 of the uncompressed data. byte offset 16-23
	Checksum uint64
}

// IsBigEndian reports whether the 64-bit fields are stored big-endian.
func (h *Header) IsBigEndian() bool {
	return h.Flags&FlagBigEndian != 0
}

// Engine returns the byte order of the 64-bit fields.
func (h *Header) Engine() endian.EndianEngine {
	return endian.GetEngine(h.IsBigEndian())
}

// Bytes serializes the header into a new HeaderSize-byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst and returns the extended slice.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Engine()

	dst = append(dst, Magic...)
	dst = append(dst, h.Version, byte(h.Compression), h.Flags, 0)
	dst = engine.AppendUint64(dst, h.OriginalSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidFrameHeader for a wrong size, magic, flag or reserved byte,
//     ErrUnsupportedVersion or ErrUnsupportedCompression
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: size %d, want %d", errs.ErrInvalidFrameHeader, len(data), HeaderSize)
	}
	if string(data[0:4]) != Magic {
		return fmt.Errorf("%w: bad magic %q", errs.ErrInvalidFrameHeader, data[0:4])
	}

	h.Version = data[4]
	h.Compression = format.CompressionType(data[5])
	h.Flags = data[6]

	engine := h.Engine()
	h.OriginalSize = engine.Uint64(data[8:16])
	h.Checksum = engine.Uint64(data[16:24])

	return h.Validate(data[7])
}

// Validate checks the fields a decoder depends on.
func (h *Header) Validate(reserved byte) error {
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	if h.Flags&^knownFlags != 0 {
		return fmt.Errorf("%w: unknown flags 0x%02x", errs.ErrInvalidFrameHeader, h.Flags&^knownFlags)
	}
	if reserved != 0 {
		return fmt.Errorf("%w: reserved byte is 0x%02x", errs.ErrInvalidFrameHeader, reserved)
	}
	if !h.Compression.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedCompression, uint8(h.Compression))
	}

	return nil
}

// ParseHeader parses a Header from the start of a frame.
//
// Parameters:
//   - data: Byte slice containing the frame (must be at least HeaderSize bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidFrameHeader or another validation error
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than a header", errs.ErrInvalidFrameHeader, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// IsFramed reports whether data starts with the frame magic.
// It does not validate the rest of the header.
func IsFramed(data []byte) bool {
	return len(data) >= HeaderSize && string(data[0:4]) == Magic
}
