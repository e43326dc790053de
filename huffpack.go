// Package huffpack compresses files with a self-describing Huffman container.
//
// The container produced by Compress holds everything needed to decode it:
// a padding byte, the serialized code tree, a zero separator and the packed
// bitstream. Pack adds an optional frame around any codec's output with a
// magic number, the original size and an xxHash64 checksum.
//
// # Basic Usage
//
// Bare containers:
//
//	container, err := huffpack.Compress(data)
//	if err != nil {
//	    return err
//	}
//	original, err := huffpack.Decompress(container)
//
// Framed payloads with integrity checking:
//
//	framed, err := huffpack.Pack(data, frame.WithCompression(format.CompressionHuffman))
//	if err != nil {
//	    return err
//	}
//	original, err := huffpack.Unpack(framed)
//
// Unpack accepts both frames and bare containers and picks the decoder from
// the first byte.
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control, use the subpackages directly:
//
//   - huffman: frequency analysis, tree building, code tables, bit packing and the container
//   - compress: the Codec interface with Huffman, Zstd, S2, LZ4 and no-op codecs
//   - frame: the checksummed envelope
//   - errs: sentinel errors for errors.Is
//   - format: compression type identifiers
package huffpack

import (
	"fmt"

	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/format"
	"github.com/arloliu/huffpack/frame"
	"github.com/arloliu/huffpack/huffman"
	"github.com/arloliu/huffpack/internal/hash"
)

// Compress encodes data into a bare Huffman container.
// Empty input yields empty output.
//
// Parameters:
//   - data: Bytes to compress
//   - opts: Codec options such as huffman.WithMaxSize
//
// Returns:
//   - []byte: The container
//   - error: ErrInputTooLarge or an option error
func Compress(data []byte, opts ...huffman.CodecOption) ([]byte, error) {
	return huffman.Compress(data, opts...)
}

// Decompress decodes a bare Huffman container.
// Empty input yields empty output.
//
// Parameters:
//   - container: Container bytes
//   - opts: Codec options such as huffman.WithSentinelScan
//
// Returns:
//   - []byte: The original data
//   - error: ErrMalformedContainer and the more specific errors it wraps
func Decompress(container []byte, opts ...huffman.CodecOption) ([]byte, error) {
	return huffman.Decompress(container, opts...)
}

// Pack compresses data and wraps it in a checksummed frame.
// The codec defaults to Huffman.
func Pack(data []byte, opts ...frame.Option) ([]byte, error) {
	return frame.Encode(data, opts...)
}

// Unpack decodes either a frame or a bare Huffman container.
//
// Data starting with the frame magic is decoded and verified as a frame;
// anything else is decoded as a bare container. Frame options apply only to
// frames.
//
// Parameters:
//   - data: A frame or a bare container
//   - opts: Frame options such as frame.WithMaxSize
//
// Returns:
//   - []byte: The original data
//   - error: Frame, codec or container errors
func Unpack(data []byte, opts ...frame.Option) ([]byte, error) {
	if frame.IsFramed(data) {
		return frame.Decode(data, opts...)
	}

	return huffman.Decompress(data)
}

// Inspect reports the layout of a bare Huffman container, or of the
// Huffman container inside a frame, without decoding the payload.
func Inspect(data []byte) (huffman.ContainerInfo, error) {
	if frame.IsFramed(data) {
		h, err := frame.ParseHeader(data)
		if err != nil {
			return huffman.ContainerInfo{}, err
		}
		if h.Compression != format.CompressionHuffman {
			return huffman.ContainerInfo{}, fmt.Errorf("%w: frame holds %s data, not a Huffman container",
				errs.ErrUnsupportedCompression, h.Compression)
		}
		data = data[frame.HeaderSize:]
	}

	return huffman.Inspect(data)
}

// Checksum returns the xxHash64 of data, the value frames record for their content.
func Checksum(data []byte) uint64 {
	return hash.Checksum(data)
}
