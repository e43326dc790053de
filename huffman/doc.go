// Package huffman implements a byte-oriented Huffman codec with a self-describing container.
//
// # Overview
//
// Compression runs a fixed pipeline over a single in-memory buffer:
//
//  1. CountFrequencies counts the occurrences of each byte value.
//  2. BuildTree merges the weighted symbols into a prefix tree.
//  3. BuildCodeTable walks the tree and assigns each symbol its bit code.
//  4. AppendTree serializes the tree so the output is self-contained.
//  5. A BitWriter packs the concatenated codes MSB-first into bytes.
//
// Decompression reverses the pipeline using only the container bytes.
//
// # Container Format
//
//	offset 0    padding length, 0-7 zero bits appended to the payload
//	offset 1..  serialized tree, UTF-8 text
//	next        separator byte 0x00
//	rest        packed payload
//
// The serialized tree is written in pre-order: a leaf is the marker '1'
// followed by the character whose code point equals the symbol, and an
// internal node is the marker '0' followed by its left and right subtrees.
// Symbols 0x80-0xFF therefore occupy two bytes of UTF-8 text.
//
// # Tie-Breaking
//
// Nodes of equal weight are merged in insertion order: leaves are queued in
// ascending symbol order and every merged node is queued after all existing
// nodes. The first node taken from the queue becomes the left child. The same
// input always produces the same tree, codes and container bytes.
//
// # Degenerate Inputs
//
// Empty input compresses to empty output and empty output decompresses to
// empty input. Input with a single distinct byte value produces a tree made
// of one leaf; that symbol is given the one-bit code "0" so the payload still
// records how many times it occurred.
//
// # Locating the Separator
//
// A leaf for the byte value 0 serializes to a literal 0x00 inside the tree
// text, which is indistinguishable from the separator by value alone. The
// decoder therefore parses the tree as a self-delimiting token stream and
// expects the separator immediately after it. WithSentinelScan restores the
// older behavior of splitting at the first zero byte, which cannot decode
// containers whose tree holds symbol 0.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Trees, code tables and writers
// are owned by the caller and are not safe for concurrent mutation.
package huffman
