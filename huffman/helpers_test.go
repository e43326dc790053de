package huffman

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// abracadabra and its container are the reference vector for the container layout.
var (
	abracadabra          = []byte("abracadabra")
	abracadabraTree      = "01a001c1d01b1r"
	abracadabraContainer = append(append([]byte{0x01}, abracadabraTree...), 0x00, 0x6E, 0x8A, 0xDC)
)

// fibonacciFrequencies returns a table whose first n symbols carry Fibonacci
// weights, which forces a tree of depth n-1.
func fibonacciFrequencies(n int) FrequencyTable {
	var ft FrequencyTable
	a, b := uint64(1), uint64(1)
	for i := range n {
		ft[i] = a
		a, b = b, a+b
	}

	return ft
}

// optimalWeightedLength computes the minimal total code length for the given
// weights with the two-queue method, independently of BuildTree.
func optimalWeightedLength(ft *FrequencyTable) uint64 {
	leaves := make([]uint64, 0, MaxSymbols)
	for _, count := range ft {
		if count != 0 {
			leaves = append(leaves, count)
		}
	}
	slices.Sort(leaves)

	var merged []uint64
	takeMin := func() uint64 {
		if len(merged) == 0 || (len(leaves) > 0 && leaves[0] <= merged[0]) {
			v := leaves[0]
			leaves = leaves[1:]

			return v
		}
		v := merged[0]
		merged = merged[1:]

		return v
	}

	var total uint64
	for len(leaves)+len(merged) > 1 {
		w := takeMin() + takeMin()
		total += w
		merged = append(merged, w)
	}

	return total
}

func randomBytes(rng *rand.Rand, n int, alphabet int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(rng.IntN(alphabet))
	}

	return data
}

// skewedBytes draws bytes with a roughly geometric distribution so that
// code lengths vary widely.
func skewedBytes(rng *rand.Rand, n int) []byte {
	data := make([]byte, n)
	for i := range data {
		sym := 0
		for sym < 255 && rng.IntN(3) != 0 {
			sym++
		}
		data[i] = byte(sym)
	}

	return data
}

func requirePrefixFree(t *testing.T, ct *CodeTable) {
	t.Helper()

	for a := range MaxSymbols {
		if ct[a].Size == 0 {
			continue
		}
		for b := range MaxSymbols {
			if a == b || ct[b].Size == 0 {
				continue
			}
			require.Falsef(t, ct[a].HasPrefix(ct[b]), "code of 0x%02x %s has prefix %s of 0x%02x", a, ct[a], ct[b], b)
		}
	}
}
