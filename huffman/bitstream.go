package huffman

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/internal/pool"
)

// BitWriter packs a stream of bits into bytes, most significant bit first.
//
// Bits are accumulated in a 64-bit buffer and flushed to a pooled byte buffer
// whenever it fills. The final partial byte is completed with zero bits by
// Finish, which reports how many were added.
//
// A BitWriter is single-use: call Finish exactly once.
type BitWriter struct {
	buf       *pool.ByteBuffer
	start     int    // Offset of the first payload byte in buf
	owned     bool   // buf came from the pool and is returned by Finish
	bitBuf    uint64 // Bit buffer for accumulating bits before writing to buf
	bitCount  int    // Number of valid bits in bitBuf
	totalBits uint64 // Number of bits written so far
}

// NewBitWriter creates a BitWriter backed by a pooled buffer.
func NewBitWriter() *BitWriter {
	return &BitWriter{
		buf:   pool.GetPayloadBuffer(),
		owned: true,
	}
}

// newBitWriterTo creates a BitWriter that appends to the end of buf.
func newBitWriterTo(buf *pool.ByteBuffer) *BitWriter {
	return &BitWriter{
		buf:   buf,
		start: buf.Len(),
	}
}

// WriteBit writes a single bit. Any nonzero value is written as 1.
func (w *BitWriter) WriteBit(bit uint8) {
	var b uint64
	if bit != 0 {
		b = 1
	}

	w.bitBuf = (w.bitBuf << 1) | b
	w.bitCount++
	w.totalBits++

	if w.bitCount == 64 {
		w.flushBits()
	}
}

// WriteCode writes all bits of c in order.
func (w *BitWriter) WriteCode(c Code) {
	remaining := int(c.Size)
	for i := 0; remaining > 0; i++ {
		n := min(remaining, 64)
		w.writeBits(c.words[i]>>(64-uint(n)), n)
		remaining -= n
	}
}

// BitLen returns the number of bits written so far.
func (w *BitWriter) BitLen() uint64 {
	return w.totalBits
}

// Finish flushes the pending bits and returns the packed bytes together with
// the number of zero bits appended to complete the last byte (0-7).
//
// The returned slice is owned by the caller. The writer must not be used afterwards.
func (w *BitWriter) Finish() ([]byte, uint8) {
	padding := w.finish()

	packed := w.buf.Clone()
	if w.owned {
		pool.PutPayloadBuffer(w.buf)
	}
	w.buf = nil

	return packed, padding
}

// finish flushes the pending bits into the underlying buffer and returns the padding length.
func (w *BitWriter) finish() uint8 {
	w.flushBits()

	return uint8((8 - w.totalBits%8) % 8) //nolint: gosec
}

// writeBits writes the low numBits bits of value, most significant first.
//
// Parameters:
//   - value: the bits to write (only the least significant 'numBits' are used)
//   - numBits: number of bits to write (1-64)
func (w *BitWriter) writeBits(value uint64, numBits int) {
	if numBits == 0 {
		return
	}

	if numBits < 64 {
		value &= (1 << numBits) - 1
	}
	w.totalBits += uint64(numBits) //nolint: gosec

	available := 64 - w.bitCount
	if numBits <= available {
		if numBits == 64 {
			w.bitBuf = value
		} else {
			w.bitBuf = (w.bitBuf << numBits) | value
		}
		w.bitCount += numBits

		if w.bitCount == 64 {
			w.flushBits()
		}

		return
	}

	// Split across buffer boundary: high bits complete the current word
	highBits := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> highBits)
	w.bitCount = 64
	w.flushBits()

	w.bitBuf = value & ((1 << highBits) - 1)
	w.bitCount = highBits
}

// flushBits writes the current bit buffer to the byte buffer, left-aligned
// and zero-filled to a whole number of bytes.
func (w *BitWriter) flushBits() {
	if w.bitCount == 0 {
		return
	}

	numBytes := (w.bitCount + 7) / 8
	alignedBits := w.bitBuf << (64 - w.bitCount)

	startLen := w.buf.Len()
	w.buf.ExtendOrGrow(numBytes)
	bs := w.buf.Slice(startLen, startLen+numBytes)

	if numBytes == 8 {
		binary.BigEndian.PutUint64(bs, alignedBits)
	} else {
		for i := range numBytes {
			bs[i] = byte(alignedBits >> (56 - i*8))
		}
	}

	w.bitBuf = 0
	w.bitCount = 0
}

// bitReader reads a bounded number of bits from a byte slice, most significant bit first.
type bitReader struct {
	data      []byte // Source data
	bytePos   int    // Current byte position
	bitBuf    uint64 // Buffer holding current bits
	bitCount  int    // Number of valid bits in buffer
	remaining uint64 // Number of meaningful bits not yet read
}

// newBitReader creates a reader over the first numBits bits of data.
func newBitReader(data []byte, numBits uint64) *bitReader {
	return &bitReader{
		data:      data,
		remaining: numBits,
	}
}

// readBit reads a single bit from the stream.
//
// Returns:
//   - The bit value (0 or 1) and true if successful
//   - Zero and false once all meaningful bits have been read
func (br *bitReader) readBit() (uint8, bool) {
	if br.remaining == 0 {
		return 0, false
	}

	if br.bitCount == 0 {
		if !br.fillBuffer() {
			return 0, false
		}
	}

	bit := uint8(br.bitBuf >> 63)
	br.bitBuf <<= 1
	br.bitCount--
	br.remaining--

	return bit, true
}

// fillBuffer refills the bit buffer from the byte stream.
//
// Returns true if buffer was filled successfully, false if no more data.
func (br *bitReader) fillBuffer() bool {
	if br.bytePos >= len(br.data) {
		return false
	}

	if br.bytePos+8 <= len(br.data) {
		br.bitBuf = binary.BigEndian.Uint64(br.data[br.bytePos:])
		br.bitCount = 64
		br.bytePos += 8

		return true
	}

	br.bitBuf = 0
	br.bitCount = 0
	for br.bytePos < len(br.data) {
		br.bitBuf |= uint64(br.data[br.bytePos]) << (56 - br.bitCount)
		br.bitCount += 8
		br.bytePos++
	}

	return true
}

// payloadBits returns the number of meaningful bits in a packed payload.
func payloadBits(packed []byte, padding uint8) (uint64, error) {
	if padding > 7 {
		return 0, fmt.Errorf("%w: %d exceeds 7", errs.ErrInvalidPadding, padding)
	}
	if len(packed) == 0 && padding != 0 {
		return 0, fmt.Errorf("%w: %d with empty payload", errs.ErrInvalidPadding, padding)
	}

	return uint64(len(packed))*8 - uint64(padding), nil
}

// PackBits packs a sequence of bit values into bytes, most significant bit first.
//
// Each element of bits is one bit; any nonzero value counts as 1. The last
// byte is completed with zero bits.
//
// Parameters:
//   - bits: Bit values in stream order
//
// Returns:
//   - []byte: ceil(len(bits)/8) packed bytes
//   - uint8: Number of zero bits appended (0-7)
func PackBits(bits []byte) ([]byte, uint8) {
	w := NewBitWriter()
	for _, b := range bits {
		w.WriteBit(b)
	}

	return w.Finish()
}

// UnpackBits expands packed bytes into one byte per bit, dropping the
// trailing padding bits. It is the inverse of PackBits.
//
// Parameters:
//   - packed: Packed bytes, most significant bit first
//   - padding: Number of trailing zero bits to drop (0-7)
//
// Returns:
//   - []byte: Bit values, each 0 or 1
//   - error: ErrInvalidPadding if padding exceeds 7, or is nonzero for an empty payload
func UnpackBits(packed []byte, padding uint8) ([]byte, error) {
	numBits, err := payloadBits(packed, padding)
	if err != nil {
		return nil, err
	}

	bits := make([]byte, 0, numBits)
	br := newBitReader(packed, numBits)
	for {
		bit, ok := br.readBit()
		if !ok {
			break
		}
		bits = append(bits, bit)
	}

	return bits, nil
}
