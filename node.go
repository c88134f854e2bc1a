package bptree

import "cmp"

// node represents a node in the B+ tree. It is a tagged variant: isLeaf
// distinguishes the two shapes rather than a type hierarchy, so that the
// key-slot operations shared by both variants (binary search, shift-insert,
// shift-remove) can live on a single receiver.
//
// Internal nodes store separator keys and child pointers: len(children) ==
// len(keys)+1. Leaf nodes store key/value pairs and are linked into the
// tree-wide doubly linked list via next/prev.
//
// parent is a non-owning back-reference used only to climb during split and
// merge propagation. It is never followed to free memory; ownership flows
// strictly downward from the tree's root through children.
type node[K cmp.Ordered, V any] struct {
	isLeaf bool

	keys []K

	// children is populated only on internal nodes. len(children) ==
	// len(keys)+1.
	children []*node[K, V]

	// values is populated only on leaf nodes, parallel to keys.
	values []V

	// next/prev link this leaf to its siblings in ascending key order.
	// Populated only on leaf nodes.
	next *node[K, V]
	prev *node[K, V]

	parent *node[K, V]
}

func newLeafNode[K cmp.Ordered, V any](order int) *node[K, V] {
	maxKeys := order - 1
	return &node[K, V]{
		isLeaf: true,
		keys:   make([]K, 0, maxKeys+1),
		values: make([]V, 0, maxKeys+1),
	}
}

func newInternalNode[K cmp.Ordered, V any](order int) *node[K, V] {
	maxKeys := order - 1
	return &node[K, V]{
		isLeaf:   false,
		keys:     make([]K, 0, maxKeys+1),
		children: make([]*node[K, V], 0, maxKeys+2),
	}
}

// keyCount returns the number of keys held by the node.
func (n *node[K, V]) keyCount() int {
	return len(n.keys)
}

// isFull reports whether the node holds more than maxKeys keys, the
// transient overflow state tolerated only within a single mutating
// operation, between the overflowing insert and the split that follows it.
func (n *node[K, V]) isFull(maxKeys int) bool {
	return len(n.keys) > maxKeys
}

// isUnderflow reports whether the node holds fewer than minKeys keys.
// Callers must not apply this to the root, which is exempt.
func (n *node[K, V]) isUnderflow(minKeys int) bool {
	return len(n.keys) < minKeys
}

// canLend reports whether the node can give up one key to a sibling and
// still satisfy minKeys.
func (n *node[K, V]) canLend(minKeys int) bool {
	return len(n.keys) > minKeys
}

// findKeyPosition returns, via binary search, the unique index i with
// keys[i] == k, or the smallest i with keys[i] > k (possibly keyCount()).
// The returned bool is true only in the exact-match case.
func (n *node[K, V]) findKeyPosition(k K) (int, bool) {
	low, high := 0, len(n.keys)
	for low < high {
		mid := (low + high) / 2
		switch {
		case n.keys[mid] < k:
			low = mid + 1
		case n.keys[mid] > k:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}

// findChildIndex returns the smallest i such that k < keys[i], or
// keyCount() if no such i exists. A key equal to a separator descends
// right, agreeing with invariant (2): separators[i] is the minimum key of
// children[i+1].
func (n *node[K, V]) findChildIndex(k K) int {
	low, high := 0, len(n.keys)
	for low < high {
		mid := (low + high) / 2
		if n.keys[mid] <= k {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// insertAt inserts (k, v) at pos in a leaf, shifting later slots right.
func (n *node[K, V]) insertAt(pos int, k K, v V) {
	n.keys = append(n.keys, k)
	copy(n.keys[pos+1:], n.keys[pos:])
	n.keys[pos] = k

	n.values = append(n.values, v)
	copy(n.values[pos+1:], n.values[pos:])
	n.values[pos] = v
}

// removeAt removes the leaf slot at pos, returning the removed pair.
func (n *node[K, V]) removeAt(pos int) (K, V) {
	k, v := n.keys[pos], n.values[pos]
	n.keys = append(n.keys[:pos], n.keys[pos+1:]...)
	n.values = append(n.values[:pos], n.values[pos+1:]...)
	return k, v
}

// insertChildAt inserts key at index pos and child at pos+1 in an internal
// node, shifting later slots right. child is reparented to n.
func (n *node[K, V]) insertChildAt(pos int, key K, child *node[K, V]) {
	n.keys = append(n.keys, key)
	copy(n.keys[pos+1:], n.keys[pos:])
	n.keys[pos] = key

	n.children = append(n.children, nil)
	copy(n.children[pos+2:], n.children[pos+1:])
	n.children[pos+1] = child
	child.parent = n
}

// removeChildAt removes the key at index pos and the child at pos+1 from an
// internal node, for merges that keep the left half of a split pair and
// drop the right.
func (n *node[K, V]) removeChildAt(pos int) (K, *node[K, V]) {
	key := n.keys[pos]
	child := n.children[pos+1]
	n.keys = append(n.keys[:pos], n.keys[pos+1:]...)
	n.children = append(n.children[:pos+1], n.children[pos+2:]...)
	return key, child
}

// firstKey returns the minimum key held anywhere in the subtree rooted at
// n, descending through children if n is internal.
func firstKey[K cmp.Ordered, V any](n *node[K, V]) K {
	for !n.isLeaf {
		n = n.children[0]
	}
	return n.keys[0]
}
