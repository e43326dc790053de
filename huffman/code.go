package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	// MaxCodeSize is the longest code a tree over MaxSymbols leaves can assign.
	MaxCodeSize = MaxSymbols - 1

	codeWords = (MaxCodeSize + 63) / 64
)

// Code represents a sequence of bits assigned to one symbol.
//
// Bits are stored MSB-first: bit 0 is the most significant bit of the first
// word. A zero Size means the symbol has no code.
type Code struct {
	// Size holds the number of valid bits.
	Size uint8

	words [codeWords]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// The first bit of the code is bit size-1 of bits, so MakeCode(3, 0b110)
// is the code "110".
func MakeCode(size uint8, bits uint64) Code {
	if size > 64 {
		panic(fmt.Sprintf("huffman: MakeCode size %d exceeds 64 bits", size))
	}

	c := Code{Size: size}
	if size > 0 {
		c.words[0] = bits << (64 - uint(size))
	}

	return c
}

// Bit returns the i-th bit of the code, 0 or 1.
func (c Code) Bit(i int) uint8 {
	return uint8(c.words[i/64] >> (63 - uint(i%64)) & 1) //nolint: gosec
}

// HasPrefix reports whether p is a prefix of c. Every code has the empty code as a prefix.
func (c Code) HasPrefix(p Code) bool {
	if p.Size > c.Size {
		return false
	}

	full := int(p.Size) / 64
	for w := range full {
		if c.words[w] != p.words[w] {
			return false
		}
	}

	rem := int(p.Size) % 64
	if rem == 0 {
		return true
	}
	mask := ^uint64(0) << (64 - uint(rem))

	return c.words[full]&mask == p.words[full]&mask
}

// appendBit returns a copy of c extended by one bit.
func (c Code) appendBit(bit uint8) Code {
	i := int(c.Size)
	if bit != 0 {
		c.words[i/64] |= 1 << (63 - uint(i%64))
	}
	c.Size++

	return c
}

// String returns the quoted bit string of the code, such as "0110".
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(int(c.Size) + 2)
	sb.WriteByte('"')
	for i := range int(c.Size) {
		sb.WriteByte('0' + c.Bit(i))
	}
	sb.WriteByte('"')

	return sb.String()
}

var _ fmt.Stringer = Code{}

// singleLeafCode is assigned to the only symbol of a single-leaf tree.
var singleLeafCode = MakeCode(1, 0)

// CodeTable maps each symbol to its code. Absent symbols have a zero Code.
type CodeTable [MaxSymbols]Code

// BuildCodeTable derives the code of every leaf from the tree shape.
//
// Walking to a left child appends 0 and walking to a right child appends 1.
// If the root is itself a leaf, its symbol is assigned the code "0".
// An empty tree yields an empty table.
//
// The walk is iterative, so trees of any depth are safe to process.
func BuildCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{}
	if t.IsEmpty() {
		return ct
	}

	root := t.nodes[t.root]
	if root.IsLeaf() {
		ct[root.Symbol] = singleLeafCode
		return ct
	}

	type stackItem struct {
		node int32
		code Code
	}

	stack := make([]stackItem, 0, 64)
	stack = append(stack, stackItem{node: t.root})
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[item.node]
		if n.IsLeaf() {
			ct[n.Symbol] = item.code
			continue
		}
		stack = append(stack,
			stackItem{node: n.Right, code: item.code.appendBit(1)},
			stackItem{node: n.Left, code: item.code.appendBit(0)},
		)
	}

	return ct
}

// Len returns the number of symbols that have a code.
func (ct *CodeTable) Len() int {
	n := 0
	for _, c := range ct {
		if c.Size != 0 {
			n++
		}
	}

	return n
}

// MinSize returns the length of the shortest assigned code, or 0 if none.
func (ct *CodeTable) MinSize() uint8 {
	var minSize uint8
	for _, c := range ct {
		if c.Size != 0 && (minSize == 0 || c.Size < minSize) {
			minSize = c.Size
		}
	}

	return minSize
}

// MaxSize returns the length of the longest assigned code.
func (ct *CodeTable) MaxSize() uint8 {
	var maxSize uint8
	for _, c := range ct {
		maxSize = max(maxSize, c.Size)
	}

	return maxSize
}

// Dump writes a programmer-readable listing of the assigned codes to w.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.MaxSize())
	for sym, c := range ct {
		if c.Size == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(0x%02x) = %s\n", sym, c)
	}
	buf.WriteString("}\n")

	return buf.WriteTo(w)
}

// WeightedLength returns the total number of payload bits the table produces
// for input with the given symbol counts.
func WeightedLength(freq *FrequencyTable, ct *CodeTable) uint64 {
	var total uint64
	for sym, count := range freq {
		total += count * uint64(ct[sym].Size)
	}

	return total
}
