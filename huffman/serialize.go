package huffman

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/huffpack/errs"
)

const (
	markerInternal = '0'
	markerLeaf     = '1'

	// maxLeafCodePoint is the largest code point a leaf character may carry.
	maxLeafCodePoint = MaxSymbols - 1
)

// AppendTree appends the serialized form of t to dst and returns the extended slice.
//
// Nodes are written in pre-order: a leaf becomes '1' followed by the UTF-8
// encoding of the character whose code point equals its symbol, and an
// internal node becomes '0' followed by its left then right subtree.
// An empty tree appends nothing.
func AppendTree(dst []byte, t *Tree) []byte {
	if t.IsEmpty() {
		return dst
	}

	stack := make([]int32, 0, 64)
	stack = append(stack, t.root)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[idx]
		if n.IsLeaf() {
			dst = append(dst, markerLeaf)
			dst = utf8.AppendRune(dst, rune(n.Symbol))

			continue
		}
		dst = append(dst, markerInternal)
		stack = append(stack, n.Right, n.Left)
	}

	return dst
}

// SerializeTree returns the textual pre-order form of t.
// An empty tree serializes to the empty string.
func SerializeTree(t *Tree) string {
	if t.IsEmpty() {
		return ""
	}

	return string(AppendTree(make([]byte, 0, 2*t.Len()), t))
}

// DeserializeTree rebuilds a tree from its textual form. It is the inverse of
// SerializeTree: the empty string yields an empty (nil) tree, and any text
// left over after a complete tree is rejected.
//
// Returns:
//   - *Tree: The rebuilt tree; node weights are zero
//   - error: ErrMalformedTree if the text is not exactly one serialized tree
func DeserializeTree(s string) (*Tree, error) {
	if s == "" {
		return nil, nil
	}

	t, n, err := ParseTree([]byte(s))
	if err != nil {
		return nil, err
	}
	if n != len(s) {
		return nil, fmt.Errorf("%w: %d trailing bytes after tree at offset %d", errs.ErrMalformedTree, len(s)-n, n)
	}

	return t, nil
}

// ParseTree reads one serialized tree from the start of text and reports how
// many bytes it consumed. Bytes after the tree are not examined, so the tree
// text can be located inside a larger buffer without a delimiter.
//
// Parsing is iterative and stops with an error as soon as the text cannot be
// a tree: it runs out before the tree is complete, holds a marker other than
// '0' or '1', holds invalid UTF-8 or a code point above 255 after a leaf
// marker, or describes more nodes than a tree over 256 symbols can have.
//
// Returns:
//   - *Tree: The rebuilt tree; node weights are zero
//   - int: Number of bytes consumed
//   - error: ErrMalformedTree wrapped with the failing offset
func ParseTree(text []byte) (*Tree, int, error) {
	type pending struct {
		node    int32
		hasLeft bool
	}

	t := &Tree{
		nodes: make([]Node, 0, min(maxNodes, len(text))),
		root:  noChild,
	}
	stack := make([]pending, 0, 64)
	pos := 0

	for {
		if pos >= len(text) {
			return nil, pos, fmt.Errorf("%w: text ends before tree is complete at offset %d", errs.ErrMalformedTree, pos)
		}
		if len(t.nodes) >= maxNodes {
			return nil, pos, fmt.Errorf("%w: more than %d nodes", errs.ErrMalformedTree, maxNodes)
		}

		marker := text[pos]
		pos++

		var done int32
		switch marker {
		case markerInternal:
			idx := t.add(Node{Left: noChild, Right: noChild})
			stack = append(stack, pending{node: idx})

			continue
		case markerLeaf:
			r, size := utf8.DecodeRune(text[pos:])
			switch {
			case size == 0:
				return nil, pos, fmt.Errorf("%w: text ends after leaf marker at offset %d", errs.ErrMalformedTree, pos-1)
			case r == utf8.RuneError && size == 1:
				return nil, pos, fmt.Errorf("%w: invalid UTF-8 at offset %d", errs.ErrMalformedTree, pos)
			case r > maxLeafCodePoint:
				return nil, pos, fmt.Errorf("%w: code point U+%04X at offset %d is not a byte symbol", errs.ErrMalformedTree, r, pos)
			}
			pos += size
			done = t.add(Node{Left: noChild, Right: noChild, Symbol: byte(r)})
		default:
			return nil, pos, fmt.Errorf("%w: unexpected marker 0x%02x at offset %d", errs.ErrMalformedTree, marker, pos-1)
		}

		// Attach the completed subtree to the nearest open internal node,
		// closing every ancestor whose right child it completes.
		for {
			if len(stack) == 0 {
				t.root = done
				return t, pos, nil
			}

			top := &stack[len(stack)-1]
			if !top.hasLeft {
				t.nodes[top.node].Left = done
				top.hasLeft = true

				break
			}
			t.nodes[top.node].Right = done
			done = top.node
			stack = stack[:len(stack)-1]
		}
	}
}
