// Package frame wraps a compressed payload in a small self-identifying envelope.
//
// A bare Huffman container carries no magic number, codec identifier or
// integrity check. Frames add all three so that huffpack can store a file with
// any codec from the compress package and detect corruption on the way back.
//
// # Layout
//
//	offset  size  field
//	0       4     magic "HFPK"
//	4       1     version, currently 1
//	5       1     compression type (format.CompressionType)
//	6       1     flags; bit 0 set means the 64-bit fields are big-endian
//	7       1     reserved, must be zero
//	8       8     original (uncompressed) size
//	16      8     xxHash64 of the original bytes
//	24      ...   codec payload
//
// The first magic byte is 'H' (0x48). A bare Huffman container starts with its
// padding length, which is at most 7, so IsFramed can tell the two apart.
//
// # Usage
//
//	framed, err := frame.Encode(data, frame.WithCompression(format.CompressionHuffman))
//	if err != nil {
//	    return err
//	}
//
//	original, err := frame.Decode(framed)
//	if errors.Is(err, errs.ErrChecksumMismatch) {
//	    // the payload was damaged
//	}
package frame
