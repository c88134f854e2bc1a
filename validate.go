package bptree

import "fmt"

// Validate walks the whole tree and checks every structural invariant: key
// ordering within and across nodes, min/max occupancy outside the root,
// uniform leaf depth, and parent back-reference consistency. It is meant
// for tests and debugging, not the hot path — callers should not run it
// after every mutation in production code.
func (t *Tree[K, V]) Validate() error {
	if t.root == nil {
		return nil
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has non-nil parent", ErrInvalidStructure)
	}

	leafDepth := -1
	if err := t.validateNode(t.root, 0, &leafDepth); err != nil {
		return err
	}
	return t.validateLeafChain()
}

// validateNode recursively checks occupancy bounds, internal shape
// invariants, ascending keys, and parent pointers. depth is the node's
// distance from the root; leafDepth records the depth at which the first
// leaf was found so every later leaf can be checked against it.
func (t *Tree[K, V]) validateNode(n *node[K, V], depth int, leafDepth *int) error {
	if n != t.root {
		if n.isUnderflow(t.minKeys) {
			return fmt.Errorf("%w: node below minKeys=%d with %d keys", ErrInvalidStructure, t.minKeys, n.keyCount())
		}
	}
	if n.isFull(t.maxKeys) {
		return fmt.Errorf("%w: node above maxKeys=%d with %d keys", ErrInvalidStructure, t.maxKeys, n.keyCount())
	}
	for i := 1; i < len(n.keys); i++ {
		if !(n.keys[i-1] < n.keys[i]) {
			return fmt.Errorf("%w: keys not strictly ascending at %v, %v", ErrInvalidStructure, n.keys[i-1], n.keys[i])
		}
	}

	if n.isLeaf {
		if len(n.values) != len(n.keys) {
			return fmt.Errorf("%w: leaf has %d keys but %d values", ErrInvalidStructure, len(n.keys), len(n.values))
		}
		if *leafDepth == -1 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return fmt.Errorf("%w: leaf at depth %d, expected %d", ErrInvalidStructure, depth, *leafDepth)
		}
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fmt.Errorf("%w: internal node has %d keys but %d children", ErrInvalidStructure, len(n.keys), len(n.children))
	}
	for i, c := range n.children {
		if c.parent != n {
			return fmt.Errorf("%w: child %d has wrong parent pointer", ErrInvalidStructure, i)
		}
		if err := t.validateNode(c, depth+1, leafDepth); err != nil {
			return err
		}
		if i > 0 {
			min := firstKey(c)
			if min != n.keys[i-1] {
				return fmt.Errorf("%w: separator %v does not match child minimum %v", ErrInvalidStructure, n.keys[i-1], min)
			}
		}
	}
	return nil
}

// validateLeafChain walks the leaf-level doubly linked list from the
// leftmost leaf, confirming that keys along it are strictly ascending, that
// prev/next agree with each other, and that the chain is no longer than the
// recorded leaf count allows. It does not check that every leaf of the tree
// is on the chain.
func (t *Tree[K, V]) validateLeafChain() error {
	first := t.findLeftmostLeaf()
	var prev *node[K, V]
	var lastKey K
	haveLastKey := false
	count := 0

	for n := first; n != nil; n = n.next {
		if n.prev != prev {
			return fmt.Errorf("%w: leaf chain prev pointer mismatch", ErrInvalidStructure)
		}
		for _, k := range n.keys {
			if haveLastKey && !(lastKey < k) {
				return fmt.Errorf("%w: leaf chain not strictly ascending at %v, %v", ErrInvalidStructure, lastKey, k)
			}
			lastKey, haveLastKey = k, true
		}
		prev = n
		count++
		if count > t.stats.LeafNodeCount+1 {
			return fmt.Errorf("%w: leaf chain longer than recorded leaf count, possible cycle", ErrInvalidStructure)
		}
	}
	return nil
}
