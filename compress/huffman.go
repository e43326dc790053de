package compress

import "github.com/arloliu/huffpack/huffman"

// HuffmanCompressor adapts the self-describing Huffman container to the Codec interface.
//
// Unlike the dictionary codecs it has no state to pool: every call builds a
// tree from the input's own byte frequencies and stores it in the output.
type HuffmanCompressor struct {
	opts []huffman.CodecOption
}

var _ Codec = (*HuffmanCompressor)(nil)

// NewHuffmanCompressor creates a Huffman compressor.
//
// Parameters:
//   - opts: Options passed to every Compress and Decompress call
//
// Returns:
//   - HuffmanCompressor: New Huffman compressor instance
func NewHuffmanCompressor(opts ...huffman.CodecOption) HuffmanCompressor {
	return HuffmanCompressor{opts: opts}
}

// Compress encodes data into a Huffman container.
func (c HuffmanCompressor) Compress(data []byte) ([]byte, error) {
	return huffman.Compress(data, c.opts...)
}

// Decompress decodes a Huffman container.
func (c HuffmanCompressor) Decompress(data []byte) ([]byte, error) {
	return huffman.Decompress(data, c.opts...)
}
