// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"fmt"
	"sort"
)

// CodeTable is a bijective mapping between symbols and codewords.  A CodeTable is never modified after it is
// constructed.
type CodeTable struct {
	codes   map[Symbol]Code
	symbols map[Code]Symbol
}

// CodeEntry pairs a symbol with its codeword.
type CodeEntry struct {
	Symbol Symbol
	Code   Code
}

func newCodeTable(size int) *CodeTable {
	return &CodeTable{
		codes:   make(map[Symbol]Code, size),
		symbols: make(map[Code]Symbol, size),
	}
}

func (ct *CodeTable) put(s Symbol, code Code) {
	ct.codes[s] = code
	ct.symbols[code] = s
}

// GenerateCodes walks the tree from root, appending '0' for each left branch and '1' for each right branch,
// and records the path to each leaf.  A tree that is a single leaf gets the code "0", since an empty code
// could not be packed.
func GenerateCodes(root *Node) *CodeTable {
	type pending struct {
		node *Node
		path Code
	}

	ct := newCodeTable(0)
	if root == nil {
		return ct
	}
	if root.IsLeaf() {
		ct.put(root.symbol, "0")
		return ct
	}

	// Right is pushed first so that left subtrees are visited first.
	stack := []pending{{root, ""}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node.IsLeaf() {
			ct.put(top.node.symbol, top.path)
			continue
		}
		if top.node.right != nil {
			stack = append(stack, pending{top.node.right, top.path + "1"})
		}
		if top.node.left != nil {
			stack = append(stack, pending{top.node.left, top.path + "0"})
		}
	}

	log.Debugf("generated %d codes", len(ct.codes))
	return ct
}

// NewCodeTable constructs a CodeTable from an explicit symbol to codeword mapping, or returns an error if
// the mapping could not have come from a Huffman tree.
func NewCodeTable(codes map[Symbol]Code) (*CodeTable, error) {
	ct := newCodeTable(len(codes))
	for s, code := range codes {
		if _, dup := ct.symbols[code]; dup {
			return nil, fmt.Errorf("%w: code %s used twice", ErrCodeTableInconsistent, code)
		}
		ct.put(s, code)
	}
	if err := ct.Check(); err != nil {
		return nil, err
	}
	return ct, nil
}

// Code returns the codeword for s.
func (ct *CodeTable) Code(s Symbol) (Code, bool) {
	code, ok := ct.codes[s]
	return code, ok
}

// Symbol returns the symbol whose codeword is code.
func (ct *CodeTable) Symbol(code Code) (Symbol, bool) {
	s, ok := ct.symbols[code]
	return s, ok
}

// Len returns the number of symbols in the table.
func (ct *CodeTable) Len() int {
	return len(ct.codes)
}

// Entries returns the table sorted by codeword.
func (ct *CodeTable) Entries() []CodeEntry {
	entries := make([]CodeEntry, 0, len(ct.codes))
	for s, code := range ct.codes {
		entries = append(entries, CodeEntry{s, code})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}

// TotalBits returns the encoded length of an input with the given frequencies: the sum over symbols of
// frequency times code length.  Symbols without a code contribute nothing.
func (ct *CodeTable) TotalBits(freq FrequencyTable) int {
	total := 0
	for s, n := range freq {
		total += n * len(ct.codes[s])
	}
	return total
}

// Check verifies that both directions of the table agree, that no codeword is empty or contains characters
// other than '0' and '1', and that the set of codewords is prefix-free.
func (ct *CodeTable) Check() error {
	if len(ct.codes) != len(ct.symbols) {
		return fmt.Errorf("%w: %d symbols but %d codes", ErrCodeTableInconsistent, len(ct.codes), len(ct.symbols))
	}
	for s, code := range ct.codes {
		if code.Len() == 0 {
			return fmt.Errorf("%w: symbol %q", ErrCodeEmpty, rune(s))
		}
		if !code.valid() {
			return fmt.Errorf("%w: code %q for symbol %q", ErrInvalidBit, string(code), rune(s))
		}
		if back, ok := ct.symbols[code]; !ok || back != s {
			return fmt.Errorf("%w: symbol %q does not map back", ErrCodeTableInconsistent, rune(s))
		}
	}

	// In lexical order, a codeword that prefixes any other also prefixes its immediate successor.
	entries := ct.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i].Code.hasPrefix(entries[i-1].Code) {
			return fmt.Errorf("%w: %s is a prefix of %s", ErrCodeTableInconsistent,
				entries[i-1].Code, entries[i].Code)
		}
	}
	return nil
}
