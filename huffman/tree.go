package huffman

import (
	"container/heap"
	"fmt"

	"github.com/arloliu/huffpack/errs"
)

const (
	// maxNodes is the node count of a full binary tree with MaxSymbols leaves.
	maxNodes = 2*MaxSymbols - 1

	noChild int32 = -1
)

// Node is a single entry of a Tree's node arena.
//
// A leaf has no children and carries a symbol. An internal node has exactly
// two children and its Symbol is meaningless. Weight is the symbol count for
// leaves and the sum of the children's weights for internal nodes; trees
// rebuilt from serialized text carry zero weights.
type Node struct {
	Weight uint64
	Left   int32
	Right  int32
	Symbol byte
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == noChild
}

// Tree is a Huffman prefix tree stored as an arena of nodes addressed by index.
//
// Each node is referenced by at most one parent, so the structure never
// contains a cycle.
type Tree struct {
	nodes []Node
	root  int32
}

// IsEmpty reports whether the tree has no nodes. A nil *Tree is empty.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.root == noChild
}

// Root returns the index of the root node, or -1 for an empty tree.
func (t *Tree) Root() int32 {
	if t == nil {
		return noChild
	}

	return t.root
}

// Node returns the node stored at index i.
func (t *Tree) Node(i int32) Node {
	return t.nodes[i]
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	if t.IsEmpty() {
		return 0
	}

	return len(t.nodes)
}

// LeafCount returns the number of leaf nodes.
func (t *Tree) LeafCount() int {
	if t.IsEmpty() {
		return 0
	}

	n := 0
	for _, node := range t.nodes {
		if node.IsLeaf() {
			n++
		}
	}

	return n
}

// InternalCount returns the number of internal nodes.
func (t *Tree) InternalCount() int {
	return t.Len() - t.LeafCount()
}

// Depth returns the length of the longest root-to-leaf path.
// A single-leaf tree and an empty tree both have depth 0.
func (t *Tree) Depth() int {
	if t.IsEmpty() {
		return 0
	}

	type item struct {
		node  int32
		depth int
	}

	maxDepth := 0
	stack := []item{{node: t.root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[it.node]
		if n.IsLeaf() {
			maxDepth = max(maxDepth, it.depth)
			continue
		}
		stack = append(stack, item{n.Left, it.depth + 1}, item{n.Right, it.depth + 1})
	}

	return maxDepth
}

func (t *Tree) add(n Node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1) //nolint: gosec
}

// BuildTree builds a Huffman tree from a frequency table.
//
// The tree minimizes the sum of weight × depth over all leaves. Ties between
// equal weights are resolved by queue order: leaves enter in ascending symbol
// order, merged nodes enter after everything already queued, and the first of
// each extracted pair becomes the left child.
//
// A table with a single symbol yields a tree whose root is that leaf.
//
// Parameters:
//   - freq: Symbol counts; must contain at least one symbol
//
// Returns:
//   - *Tree: The built tree
//   - error: ErrEmptyFrequencyTable if freq has no symbols
func BuildTree(freq *FrequencyTable) (*Tree, error) {
	numSymbols := freq.Len()
	if numSymbols == 0 {
		return nil, errs.ErrEmptyFrequencyTable
	}

	t := &Tree{
		nodes: make([]Node, 0, 2*numSymbols-1),
		root:  noChild,
	}

	h := make(nodeHeap, 0, numSymbols)
	var seq uint32
	for sym, count := range freq {
		if count == 0 {
			continue
		}
		idx := t.add(Node{Weight: count, Left: noChild, Right: noChild, Symbol: byte(sym)})
		h = append(h, heapItem{weight: count, seq: seq, node: idx})
		seq++
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a, _ := heap.Pop(&h).(heapItem)
		b, _ := heap.Pop(&h).(heapItem)

		weight := a.weight + b.weight
		idx := t.add(Node{Weight: weight, Left: a.node, Right: b.node})
		heap.Push(&h, heapItem{weight: weight, seq: seq, node: idx})
		seq++
	}

	t.root = h[0].node

	return t, nil
}

// String returns a short description of the tree shape.
func (t *Tree) String() string {
	if t.IsEmpty() {
		return "(empty Huffman tree)"
	}

	return fmt.Sprintf("(Huffman tree with %d leaves, %d internal nodes, depth %d)",
		t.LeafCount(), t.InternalCount(), t.Depth())
}

var _ fmt.Stringer = (*Tree)(nil)

// type heapItem + type nodeHeap {{{

type heapItem struct {
	weight uint64
	seq    uint32
	node   int32
}

type nodeHeap []heapItem

func (h nodeHeap) Len() int {
	return len(h)
}

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}

	return a.seq < b.seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *nodeHeap) Push(x any) {
	item, _ := x.(heapItem)
	*h = append(*h, item)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
