package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/huffpack/errs"
	"github.com/arloliu/huffpack/internal/pool"
)

const (
	// separator terminates the tree text inside a container.
	separator = 0x00

	// headerSize is the size of the padding-length byte.
	headerSize = 1
)

// Compress encodes data into a self-describing Huffman container.
//
// Empty input yields empty output. Otherwise the container holds the padding
// length, the serialized tree, a zero separator and the packed code stream,
// in that order. The output depends only on data.
//
// Parameters:
//   - data: Bytes to compress
//   - opts: Optional settings such as WithMaxSize
//
// Returns:
//   - []byte: The container
//   - error: ErrInputTooLarge if data exceeds the configured limit, or an option error
func Compress(data []byte, opts ...CodecOption) ([]byte, error) {
	cfg, err := newCodecConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}
	if cfg.maxSize > 0 && len(data) > cfg.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", errs.ErrInputTooLarge, len(data), cfg.maxSize)
	}

	freq := CountFrequencies(data)
	tree, err := BuildTree(&freq)
	if err != nil {
		return nil, err
	}
	codes := BuildCodeTable(tree)

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	payloadSize := int((WeightedLength(&freq, codes) + 7) / 8) //nolint: gosec
	buf.Grow(headerSize + 3*tree.Len() + 1 + payloadSize)

	_ = buf.WriteByte(0) // padding length, patched below
	buf.B = AppendTree(buf.B, tree)
	_ = buf.WriteByte(separator)

	w := newBitWriterTo(buf)
	for _, b := range data {
		w.WriteCode(codes[b])
	}
	buf.B[0] = w.finish()

	return buf.Clone(), nil
}

// Decompress decodes a container produced by Compress.
//
// Empty input yields empty output. Trailing zero bits are dropped according
// to the padding byte, and the payload is decoded by walking the tree from
// the root, emitting a symbol at every leaf. Under a single-leaf tree each
// 0 bit emits the symbol.
//
// Parameters:
//   - container: Container bytes
//   - opts: Optional settings such as WithSentinelScan or WithMaxSize
//
// Returns:
//   - []byte: The original data
//   - error: ErrMalformedContainer (possibly also wrapping ErrMalformedTree,
//     ErrInvalidPadding or ErrTruncatedCode), or ErrInputTooLarge
func Decompress(container []byte, opts ...CodecOption) ([]byte, error) {
	cfg, err := newCodecConfig(opts...)
	if err != nil {
		return nil, err
	}

	if len(container) == 0 {
		return nil, nil
	}

	c, err := parseContainer(container, cfg.sentinelScan)
	if err != nil {
		return nil, err
	}

	out := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(out)

	if err := decodePayload(c, out, cfg.maxSize); err != nil {
		return nil, err
	}

	return out.Clone(), nil
}

// parsedContainer is the validated layout of a non-empty container.
type parsedContainer struct {
	padding      uint8
	tree         *Tree
	treeSize     int
	separatorPos int
	payload      []byte
	payloadBits  uint64
}

func parseContainer(container []byte, sentinelScan bool) (*parsedContainer, error) {
	padding := container[0]
	if padding > 7 {
		return nil, fmt.Errorf("%w: %w: padding byte %d exceeds 7", errs.ErrMalformedContainer, errs.ErrInvalidPadding, padding)
	}

	var (
		tree   *Tree
		sepPos int
		err    error
	)
	if sentinelScan {
		tree, sepPos, err = scanTree(container)
	} else {
		tree, sepPos, err = locateTree(container)
	}
	if err != nil {
		return nil, err
	}

	payload := container[sepPos+1:]
	numBits, err := payloadBits(payload, padding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedContainer, err)
	}

	return &parsedContainer{
		padding:      padding,
		tree:         tree,
		treeSize:     sepPos - headerSize,
		separatorPos: sepPos,
		payload:      payload,
		payloadBits:  numBits,
	}, nil
}

// locateTree parses the tree directly after the padding byte and requires
// the separator to follow it.
func locateTree(container []byte) (*Tree, int, error) {
	tree, n, err := ParseTree(container[headerSize:])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errs.ErrMalformedContainer, err)
	}

	sepPos := headerSize + n
	if sepPos >= len(container) {
		return nil, 0, fmt.Errorf("%w: separator not found after tree", errs.ErrMalformedContainer)
	}
	if container[sepPos] != separator {
		return nil, 0, fmt.Errorf("%w: expected separator at offset %d, found 0x%02x",
			errs.ErrMalformedContainer, sepPos, container[sepPos])
	}

	return tree, sepPos, nil
}

// scanTree splits the container at the first zero byte after the padding
// byte and parses the text before it as the tree.
func scanTree(container []byte) (*Tree, int, error) {
	idx := bytes.IndexByte(container[headerSize:], separator)
	if idx < 0 {
		return nil, 0, fmt.Errorf("%w: separator not found", errs.ErrMalformedContainer)
	}

	sepPos := headerSize + idx
	tree, _, err := ParseTree(container[headerSize:sepPos])
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", errs.ErrMalformedContainer, err)
	}

	return tree, sepPos, nil
}

func decodePayload(c *parsedContainer, out *pool.ByteBuffer, maxSize int) error {
	t := c.tree
	br := newBitReader(c.payload, c.payloadBits)

	emit := func(sym byte) error {
		if maxSize > 0 && out.Len() >= maxSize {
			return fmt.Errorf("%w: decoded output exceeds limit of %d", errs.ErrInputTooLarge, maxSize)
		}

		return out.WriteByte(sym)
	}

	root := t.nodes[t.root]
	if root.IsLeaf() {
		for pos := uint64(0); ; pos++ {
			bit, ok := br.readBit()
			if !ok {
				return nil
			}
			if bit != 0 {
				return fmt.Errorf("%w: bit 1 at payload bit %d under a single-leaf tree", errs.ErrMalformedContainer, pos)
			}
			if err := emit(root.Symbol); err != nil {
				return err
			}
		}
	}

	cur := t.root
	for {
		bit, ok := br.readBit()
		if !ok {
			break
		}

		n := &t.nodes[cur]
		if bit == 0 {
			cur = n.Left
		} else {
			cur = n.Right
		}

		if next := &t.nodes[cur]; next.IsLeaf() {
			if err := emit(next.Symbol); err != nil {
				return err
			}
			cur = t.root
		}
	}

	if cur != t.root {
		return fmt.Errorf("%w: %w", errs.ErrMalformedContainer, errs.ErrTruncatedCode)
	}

	return nil
}

// ContainerInfo describes the layout of a container without decoding its payload.
type ContainerInfo struct {
	// Size is the total container size in bytes.
	Size int
	// Padding is the number of zero bits that complete the last payload byte.
	Padding uint8
	// TreeSize is the size of the serialized tree in bytes.
	TreeSize int
	// SeparatorOffset is the position of the separator byte.
	SeparatorOffset int
	// PayloadSize is the size of the packed payload in bytes.
	PayloadSize int
	// PayloadBits is the number of meaningful payload bits.
	PayloadBits uint64
	// Leaves is the number of distinct symbols in the tree.
	Leaves int
	// InternalNodes is the number of internal tree nodes.
	InternalNodes int
	// Depth is the length of the longest code.
	Depth int
	// Tree is the deserialized tree.
	Tree *Tree
	// Codes holds the code of every symbol in the tree.
	Codes *CodeTable
}

// Inspect parses the container header and tree and reports the layout.
// An empty container yields a zero ContainerInfo. The payload is not decoded,
// so a truncated code stream is not detected.
func Inspect(container []byte, opts ...CodecOption) (ContainerInfo, error) {
	cfg, err := newCodecConfig(opts...)
	if err != nil {
		return ContainerInfo{}, err
	}

	if len(container) == 0 {
		return ContainerInfo{Codes: &CodeTable{}}, nil
	}

	c, err := parseContainer(container, cfg.sentinelScan)
	if err != nil {
		return ContainerInfo{}, err
	}

	return ContainerInfo{
		Size:            len(container),
		Padding:         c.padding,
		TreeSize:        c.treeSize,
		SeparatorOffset: c.separatorPos,
		PayloadSize:     len(c.payload),
		PayloadBits:     c.payloadBits,
		Leaves:          c.tree.LeafCount(),
		InternalNodes:   c.tree.InternalCount(),
		Depth:           c.tree.Depth(),
		Tree:            c.tree,
		Codes:           BuildCodeTable(c.tree),
	}, nil
}

// Dump writes a programmer-readable description of the container to w.
func (ci ContainerInfo) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Container{\n")
	fmt.Fprintf(&buf, "\tSize = %d\n", ci.Size)
	fmt.Fprintf(&buf, "\tPadding = %d\n", ci.Padding)
	fmt.Fprintf(&buf, "\tTreeSize = %d\n", ci.TreeSize)
	fmt.Fprintf(&buf, "\tSeparatorOffset = %d\n", ci.SeparatorOffset)
	fmt.Fprintf(&buf, "\tPayloadSize = %d\n", ci.PayloadSize)
	fmt.Fprintf(&buf, "\tPayloadBits = %d\n", ci.PayloadBits)
	fmt.Fprintf(&buf, "\tLeaves = %d\n", ci.Leaves)
	fmt.Fprintf(&buf, "\tInternalNodes = %d\n", ci.InternalNodes)
	fmt.Fprintf(&buf, "\tDepth = %d\n", ci.Depth)
	buf.WriteString("}\n")

	n, err := buf.WriteTo(w)
	if err != nil || ci.Codes == nil {
		return n, err
	}

	m, err := ci.Codes.Dump(w)

	return n + m, err
}
