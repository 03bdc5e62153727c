// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"container/heap"
)

// Node is a vertex of a Huffman tree: either a leaf holding one symbol, or an internal node with exactly two
// children whose frequencies sum to its own.
type Node struct {
	symbol      Symbol
	freq        int
	left, right *Node

	// seq orders nodes of equal frequency: leaves in ascending symbol order, then merged nodes in creation
	// order.
	seq int
}

func (n *Node) Symbol() Symbol { return n.symbol }
func (n *Node) Freq() int { return n.freq }
func (n *Node) Left() *Node { return n.left }
func (n *Node) Right() *Node { return n.right }
func (n *Node) IsLeaf() bool { return n.left == nil && n.right == nil }

type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*Node)) }

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// BuildTree builds a Huffman tree by repeatedly merging the two lightest nodes, the first extracted becoming
// the left child.  Ties are broken by sequence number, so the same table always yields the same tree.  A
// single-symbol table yields a lone leaf.
func BuildTree(freq FrequencyTable) (*Node, error) {
	if len(freq) == 0 {
		return nil, ErrEmptyAlphabet
	}

	queue := make(nodeQueue, 0, len(freq))
	seq := 0
	for _, s := range freq.symbolsAscending() {
		queue = append(queue, &Node{symbol: s, freq: freq[s], seq: seq})
		seq++
	}
	heap.Init(&queue)

	for queue.Len() > 1 {
		left := heap.Pop(&queue).(*Node)
		right := heap.Pop(&queue).(*Node)
		heap.Push(&queue, &Node{
			freq:  left.freq + right.freq,
			left:  left,
			right: right,
			seq:   seq,
		})
		seq++
	}

	root := heap.Pop(&queue).(*Node)
	log.Debugf("built tree over %d symbols, root weight %d", len(freq), root.freq)
	return root, nil
}
