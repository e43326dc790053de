package huffman

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// === Code Tests ===

func TestMakeCode(t *testing.T) {
	tests := []struct {
		name string
		size uint8
		bits uint64
		want string
	}{
		{"empty", 0, 0, `""`},
		{"single zero", 1, 0, `"0"`},
		{"single one", 1, 1, `"1"`},
		{"leading zeros kept", 4, 0b0110, `"0110"`},
		{"full word", 64, 1 << 63, `"1` + string(bytes.Repeat([]byte("0"), 63)) + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MakeCode(tt.size, tt.bits)
			require.Equal(t, tt.size, c.Size)
			require.Equal(t, tt.want, c.String())
		})
	}
}

func TestMakeCode_TooLong(t *testing.T) {
	require.Panics(t, func() { MakeCode(65, 0) })
}

func TestCode_AppendBitAcrossWords(t *testing.T) {
	var c Code
	want := make([]byte, 0, 150)
	for i := range 150 {
		bit := uint8(i % 3 & 1) //nolint: gosec
		c = c.appendBit(bit)
		want = append(want, '0'+bit)
	}

	require.Equal(t, uint8(150), c.Size)
	require.Equal(t, `"`+string(want)+`"`, c.String())
	for i := range 150 {
		require.Equal(t, want[i]-'0', c.Bit(i))
	}
}

func TestCode_HasPrefix(t *testing.T) {
	tests := []struct {
		name   string
		code   Code
		prefix Code
		want   bool
	}{
		{"empty prefix", MakeCode(3, 0b101), Code{}, true},
		{"equal", MakeCode(3, 0b101), MakeCode(3, 0b101), true},
		{"proper prefix", MakeCode(3, 0b101), MakeCode(2, 0b10), true},
		{"mismatch", MakeCode(3, 0b101), MakeCode(2, 0b11), false},
		{"longer prefix", MakeCode(2, 0b10), MakeCode(3, 0b101), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.code.HasPrefix(tt.prefix))
		})
	}
}

func TestCode_HasPrefixAcrossWords(t *testing.T) {
	var long, prefix Code
	for i := range 100 {
		bit := uint8(i & 1) //nolint: gosec
		long = long.appendBit(bit)
		if i < 70 {
			prefix = prefix.appendBit(bit)
		}
	}

	require.True(t, long.HasPrefix(prefix))

	flipped := prefix
	flipped.words[1] ^= 1 << 60
	require.False(t, long.HasPrefix(flipped))
}

// === BuildCodeTable Tests ===

func TestBuildCodeTable_Empty(t *testing.T) {
	ct := BuildCodeTable(nil)

	require.Equal(t, 0, ct.Len())
	require.Equal(t, uint8(0), ct.MinSize())
	require.Equal(t, uint8(0), ct.MaxSize())
}

func TestBuildCodeTable_SingleSymbol(t *testing.T) {
	ft := CountFrequencies([]byte("zzz"))
	tree, err := BuildTree(&ft)
	require.NoError(t, err)

	ct := BuildCodeTable(tree)
	require.Equal(t, 1, ct.Len())
	require.Equal(t, `"0"`, ct['z'].String())
	require.Equal(t, uint64(3), WeightedLength(&ft, ct))
}

func TestBuildCodeTable_Abracadabra(t *testing.T) {
	ft := CountFrequencies(abracadabra)
	tree, err := BuildTree(&ft)
	require.NoError(t, err)

	ct := BuildCodeTable(tree)
	want := map[byte]string{
		'a': `"0"`,
		'c': `"100"`,
		'd': `"101"`,
		'b': `"110"`,
		'r': `"111"`,
	}
	require.Equal(t, len(want), ct.Len())
	for sym, code := range want {
		require.Equal(t, code, ct[sym].String(), "symbol %q", sym)
	}
	require.Equal(t, uint8(1), ct.MinSize())
	require.Equal(t, uint8(3), ct.MaxSize())
	require.Equal(t, uint64(23), WeightedLength(&ft, ct))
}

func TestBuildCodeTable_EqualWeightsAreBinaryCounters(t *testing.T) {
	var ft FrequencyTable
	for sym := range MaxSymbols {
		ft[sym] = 1
	}
	tree, err := BuildTree(&ft)
	require.NoError(t, err)

	ct := BuildCodeTable(tree)
	for sym := range MaxSymbols {
		require.Equal(t, MakeCode(8, uint64(sym)), ct[sym], "symbol 0x%02x", sym)
	}
}

func TestBuildCodeTable_PrefixFree(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	inputs := map[string]FrequencyTable{
		"uniform":   CountFrequencies(randomBytes(rng, 10000, 256)),
		"small":     CountFrequencies(randomBytes(rng, 500, 5)),
		"skewed":    CountFrequencies(skewedBytes(rng, 10000)),
		"fibonacci": fibonacciFrequencies(80),
	}

	for name, ft := range inputs {
		t.Run(name, func(t *testing.T) {
			tree, err := BuildTree(&ft)
			require.NoError(t, err)

			ct := BuildCodeTable(tree)
			require.Equal(t, ft.Len(), ct.Len())
			requirePrefixFree(t, ct)
		})
	}
}

func TestBuildCodeTable_Minimal(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))

	for i := range 50 {
		var ft FrequencyTable
		n := 2 + rng.IntN(MaxSymbols-1)
		for range n {
			ft[rng.IntN(MaxSymbols)] += 1 + uint64(rng.IntN(1000)) //nolint: gosec
		}
		if ft.Len() < 2 {
			continue
		}

		tree, err := BuildTree(&ft)
		require.NoError(t, err)

		ct := BuildCodeTable(tree)
		require.Equal(t, optimalWeightedLength(&ft), WeightedLength(&ft, ct), "round %d", i)
	}
}

func TestBuildCodeTable_LongCodes(t *testing.T) {
	ft := fibonacciFrequencies(80)
	tree, err := BuildTree(&ft)
	require.NoError(t, err)

	ct := BuildCodeTable(tree)
	require.Equal(t, uint8(79), ct.MaxSize())
	require.Equal(t, uint8(1), ct.MinSize())
	require.Equal(t, optimalWeightedLength(&ft), WeightedLength(&ft, ct))
}

func TestCodeTable_Dump(t *testing.T) {
	ft := CountFrequencies([]byte("aab"))
	tree, err := BuildTree(&ft)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := BuildCodeTable(tree).Dump(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)

	want := "CodeTable{\n" +
		"\tMinSize() = 1\n" +
		"\tMaxSize() = 1\n" +
		"\tEncode(0x61) = \"1\"\n" +
		"\tEncode(0x62) = \"0\"\n" +
		"}\n"
	require.Equal(t, want, buf.String())
}
