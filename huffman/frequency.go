package huffman

// MaxSymbols is the size of the byte alphabet.
const MaxSymbols = 256

// FrequencyTable holds the number of occurrences of each byte value.
// A zero entry means the symbol does not occur.
type FrequencyTable [MaxSymbols]uint64

// CountFrequencies counts the occurrences of every byte value in data.
// Empty input yields a table with no symbols.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range data {
		ft[b]++
	}

	return ft
}

// Len returns the number of distinct symbols present in the table.
func (ft *FrequencyTable) Len() int {
	n := 0
	for _, count := range ft {
		if count != 0 {
			n++
		}
	}

	return n
}

// Symbols returns the present symbols in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	symbols := make([]byte, 0, ft.Len())
	for sym, count := range ft {
		if count != 0 {
			symbols = append(symbols, byte(sym))
		}
	}

	return symbols
}

// Total returns the sum of all counts, which equals the length of the counted input.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range ft {
		total += count
	}

	return total
}
