package huffman

import (
	"fmt"

	"github.com/arloliu/huffpack/internal/options"
)

// CodecConfig holds the settings shared by Compress, Decompress and Inspect.
type CodecConfig struct {
	sentinelScan bool
	maxSize      int
}

// CodecOption represents a functional option for configuring the codec.
// This is a type alias for the generic Option interface specialized for CodecConfig.
type CodecOption = options.Option[*CodecConfig]

func newCodecConfig(opts ...CodecOption) (*CodecConfig, error) {
	cfg := &CodecConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSentinelScan makes the decoder split the container at the first zero
// byte after the padding byte instead of parsing the tree to find its end.
//
// This reproduces the legacy decoder and fails with ErrMalformedContainer on
// any container whose tree holds a leaf for the byte value 0.
// It has no effect on Compress.
func WithSentinelScan() CodecOption {
	return options.NoError(func(c *CodecConfig) {
		c.sentinelScan = true
	})
}

// WithMaxSize limits the size of the uncompressed data: Compress rejects
// longer input and Decompress stops once its output would exceed the limit.
// Zero means no limit, which is the default.
func WithMaxSize(n int) CodecOption {
	return options.New(func(c *CodecConfig) error {
		if n < 0 {
			return fmt.Errorf("max size must not be negative: %d", n)
		}
		c.maxSize = n

		return nil
	})
}
