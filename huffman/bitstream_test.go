package huffman

import (
	"math/rand/v2"
	"testing"

	"github.com/arloliu/huffpack/errs"
	"github.com/stretchr/testify/require"
)

// === PackBits / UnpackBits Tests ===

func TestPackBits(t *testing.T) {
	tests := []struct {
		name    string
		bits    []byte
		packed  []byte
		padding uint8
	}{
		{"empty", nil, nil, 0},
		{"single one", []byte{1}, []byte{0x80}, 7},
		{"three bits", []byte{1, 0, 1}, []byte{0xA0}, 5},
		{"full byte", []byte{0, 1, 1, 0, 1, 1, 1, 0}, []byte{0x6E}, 0},
		{"nine bits", []byte{1, 1, 1, 1, 1, 1, 1, 1, 1}, []byte{0xFF, 0x80}, 7},
		{"nonzero counts as one", []byte{2, 0, 0xFF}, []byte{0xA0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed, padding := PackBits(tt.bits)
			require.Equal(t, tt.packed, packed)
			require.Equal(t, tt.padding, padding)
		})
	}
}

func TestUnpackBits_Inverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))

	for n := range 200 {
		bits := randomBytes(rng, n, 2)

		packed, padding := PackBits(bits)
		require.Len(t, packed, (n+7)/8)
		require.Equal(t, uint8((8-n%8)%8), padding) //nolint: gosec

		unpacked, err := UnpackBits(packed, padding)
		require.NoError(t, err)
		require.Len(t, unpacked, n)
		if n > 0 {
			require.Equal(t, bits, unpacked)
		}
	}
}

func TestUnpackBits_InvalidPadding(t *testing.T) {
	tests := []struct {
		name    string
		packed  []byte
		padding uint8
	}{
		{"padding above seven", []byte{0xFF}, 8},
		{"padding byte max", []byte{0xFF, 0x00}, 255},
		{"padding with empty payload", nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnpackBits(tt.packed, tt.padding)
			require.ErrorIs(t, err, errs.ErrInvalidPadding)
		})
	}
}

func TestUnpackBits_DropsPadding(t *testing.T) {
	bits, err := UnpackBits([]byte{0x6E, 0x8A, 0xDC}, 1)
	require.NoError(t, err)

	want := []byte{0, 1, 1, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1, 0, 1, 0, 1, 1, 0, 1, 1, 1, 0}
	require.Equal(t, want, bits)
}

// === BitWriter Tests ===

func TestBitWriter_WriteCodeMatchesPackBits(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 16))

	for range 20 {
		w := NewBitWriter()
		var all []byte

		for range 1 + rng.IntN(40) {
			size := 1 + rng.IntN(MaxCodeSize)
			var c Code
			for range size {
				bit := uint8(rng.IntN(2)) //nolint: gosec
				c = c.appendBit(bit)
				all = append(all, bit)
			}
			w.WriteCode(c)
		}
		require.Equal(t, uint64(len(all)), w.BitLen())

		gotPacked, gotPadding := w.Finish()
		wantPacked, wantPadding := PackBits(all)
		require.Equal(t, wantPacked, gotPacked)
		require.Equal(t, wantPadding, gotPadding)
	}
}

func TestBitWriter_MixedWrites(t *testing.T) {
	w := NewBitWriter()
	w.WriteBit(1)
	w.WriteCode(MakeCode(63, 0))
	w.WriteCode(MakeCode(3, 0b111))
	w.WriteBit(0)

	packed, padding := w.Finish()
	require.Equal(t, []byte{0x80, 0, 0, 0, 0, 0, 0, 0, 0xE0}, packed)
	require.Equal(t, uint8(4), padding)
}

func TestBitReader_StopsAtLimit(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	br := newBitReader(data, 75)

	count := 0
	for {
		bit, ok := br.readBit()
		if !ok {
			break
		}
		require.Equal(t, uint8(1), bit)
		count++
	}
	require.Equal(t, 75, count)
}
