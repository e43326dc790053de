// Package compress provides interchangeable whole-buffer codecs behind a common interface.
//
// The huffpack tool defaults to its own Huffman container and can store a
// file with any other codec registered here. The frame package records which
// codec produced a payload so decoding never has to guess.
//
// # Architecture
//
// The package defines three core interfaces:
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
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone) returns its input unchanged. It backs the
// CLI's raw mode.
//
// **Huffman** (format.CompressionHuffman) wraps the huffman package. Its
// output carries the code tree, so it needs no dictionary and no out-of-band
// state. It only exploits uneven byte frequencies, never repeated strings.
//
// **Zstandard** (format.CompressionZstd) gives the best ratio of the general
// purpose codecs. The default build uses pooled klauspost/compress encoders;
// building with cgo and the gozstd tag switches to valyala/gozstd.
//
// **S2** (format.CompressionS2) is the Snappy-compatible block format from
// klauspost/compress, balanced between speed and ratio.
//
// **LZ4** (format.CompressionLZ4) uses pierrec/lz4 blocks with pooled compressors
// and the fastest decompression.
//
// # Choosing a Codec
//
//	codec, err := compress.CreateCodec(format.CompressionHuffman, "payload")
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(data)
//
// GetCodec returns shared built-in instances instead of creating new ones.
// Unknown compression types fail with errs.ErrUnsupportedCompression.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use.
//
// # Empty Input
//
// Every codec compresses empty input to empty output and decompresses empty
// input to empty output.
package compress
