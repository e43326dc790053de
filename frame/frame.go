package frame

import (
	"fmt"
	"slices"

	"github.com/arloliu/huffpack/compress"
	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/format"
	"github.com/arloliu/huffpack/internal/hash"
	"github.com/arloliu/huffpack/internal/options"
)

// Config holds the settings of Encode and Decode.
type Config struct {
	compression format.CompressionType
	bigEndian   bool
	maxSize     uint64
}

// Option represents a functional option for configuring Encode and Decode.
// This is a type alias for the generic Option interface specialized for Config.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		compression: format.CompressionHuffman,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression selects the codec Encode uses. The default is Huffman.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrUnsupportedCompression, uint8(comp))
		}
		c.compression = comp

		return nil
	})
}

// WithLittleEndian stores the 64-bit header fields little-endian.
// It is the default option.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = false
	})
}

// WithBigEndian stores the 64-bit header fields big-endian.
// Decoders follow the header flag, so this only matters for external readers.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = true
	})
}

// WithMaxSize limits the original size: Encode rejects longer input and
// Decode rejects frames that claim a larger size before decompressing.
// Zero means no limit.
func WithMaxSize(n uint64) Option {
	return options.NoError(func(c *Config) {
		c.maxSize = n
	})
}

// Encode compresses data and wraps it in a frame.
//
// Parameters:
//   - data: Bytes to compress; may be empty
//   - opts: WithCompression, WithBigEndian, WithMaxSize
//
// Returns:
//   - []byte: Header followed by the codec payload
//   - error: Option error, ErrInputTooLarge, or a codec error
func Encode(data []byte, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	size := uint64(len(data))
	if cfg.maxSize > 0 && size > cfg.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", errs.ErrInputTooLarge, size, cfg.maxSize)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress with %s: %w", cfg.compression, err)
	}

	h := Header{
		Version:      Version,
		Compression:  cfg.compression,
		OriginalSize: size,
		Checksum:     hash.Checksum(data),
	}
	if cfg.bigEndian {
		h.Flags |= FlagBigEndian
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = h.AppendTo(out)
	out = append(out, payload...)

	return out, nil
}

// Decode verifies a frame and returns the original data.
//
// The header is validated first, then the payload is decompressed with the
// recorded codec, and finally its length and checksum are compared with
// the header. The returned slice never aliases framed.
//
// Parameters:
//   - framed: A frame produced by Encode
//   - opts: WithMaxSize; encoding options are ignored
//
// Returns:
//   - []byte: The original data
//   - error: A header error, ErrInputTooLarge, a codec error, ErrSizeMismatch or ErrChecksumMismatch
func Decode(framed []byte, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	h, err := ParseHeader(framed)
	if err != nil {
		return nil, err
	}
	if cfg.maxSize > 0 && h.OriginalSize > cfg.maxSize {
		return nil, fmt.Errorf("%w: frame holds %d bytes, limit is %d", errs.ErrInputTooLarge, h.OriginalSize, cfg.maxSize)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(framed[HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress with %s: %w", h.Compression, err)
	}
	if h.Compression == format.CompressionNone {
		out = slices.Clone(out)
	}

	if uint64(len(out)) != h.OriginalSize {
		return nil, fmt.Errorf("%w: decoded %d bytes, header says %d", errs.ErrSizeMismatch, len(out), h.OriginalSize)
	}
	if sum := hash.Checksum(out); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	return out, nil
}
