package compress

// ZstdCompressor provides Zstandard compression.
//
// The default build uses the pure-Go klauspost/compress encoder and decoder
// from pools. Building with both cgo and the gozstd tag switches to the
// valyala/gozstd bindings to the reference C library; the two produce
// interchangeable Zstandard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
