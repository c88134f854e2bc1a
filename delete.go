package bptree

// rebalanceLeaf restores the B+ tree invariants after a leaf has fallen
// below minKeys. It tries to borrow a single entry from a richer sibling
// before resorting to a merge, preferring the left sibling.
func (t *Tree[K, V]) rebalanceLeaf(leaf *node[K, V]) {
	parent := leaf.parent
	i := childIndexOf(parent, leaf)

	if i > 0 {
		left := parent.children[i-1]
		if left.canLend(t.minKeys) {
			k, v := left.removeAt(left.keyCount() - 1)
			leaf.insertAt(0, k, v)
			parent.keys[i-1] = leaf.keys[0]
			t.stats.RedistributeCount++
			t.log.Debug("leaf borrow from left", "at", i)
			return
		}
	}

	if i < parent.keyCount() {
		right := parent.children[i+1]
		if right.canLend(t.minKeys) {
			k, v := right.removeAt(0)
			leaf.insertAt(leaf.keyCount(), k, v)
			parent.keys[i] = right.keys[0]
			t.stats.RedistributeCount++
			t.log.Debug("leaf borrow from right", "at", i)
			return
		}
	}

	if i > 0 {
		t.mergeLeaves(parent, i-1, parent.children[i-1], leaf)
	} else {
		t.mergeLeaves(parent, i, leaf, parent.children[i+1])
	}
}

// mergeLeaves appends right's entries onto left, unlinks right from the
// leaf list, and removes the separator between them from parent. Unlike an
// internal merge, no separator is pulled down: the leaf already holds
// every key it owns.
func (t *Tree[K, V]) mergeLeaves(parent *node[K, V], sepIdx int, left, right *node[K, V]) {
	left.keys = append(left.keys, right.keys...)
	left.values = append(left.values, right.values...)
	left.next = right.next
	if right.next != nil {
		right.next.prev = left
	}

	t.stats.LeafMergeCount++
	t.log.Debug("leaf merge", "sepIdx", sepIdx)

	parent.removeChildAt(sepIdx)
	t.recordFree(true)
	t.alloc.release(right)

	t.collapseOrRebalanceParent(parent, left)
}

// rebalanceInternal restores the B+ tree invariants after an internal node
// has fallen below minKeys. Borrowing here is a rotation through the
// parent: the parent's separator moves down into the deficient node while
// a key from the sibling moves up to replace it.
func (t *Tree[K, V]) rebalanceInternal(n *node[K, V]) {
	parent := n.parent
	i := childIndexOf(parent, n)

	if i > 0 {
		left := parent.children[i-1]
		if left.canLend(t.minKeys) {
			sep := parent.keys[i-1]
			movedKey := left.keys[left.keyCount()-1]
			movedChild := left.children[len(left.children)-1]
			left.keys = left.keys[:left.keyCount()-1]
			left.children = left.children[:len(left.children)-1]

			n.keys = append(n.keys, sep)
			copy(n.keys[1:], n.keys[:len(n.keys)-1])
			n.keys[0] = sep

			n.children = append(n.children, nil)
			copy(n.children[1:], n.children[:len(n.children)-1])
			n.children[0] = movedChild
			movedChild.parent = n

			parent.keys[i-1] = movedKey
			t.stats.RedistributeCount++
			t.log.Debug("internal borrow from left", "at", i)
			return
		}
	}

	if i < parent.keyCount() {
		right := parent.children[i+1]
		if right.canLend(t.minKeys) {
			sep := parent.keys[i]
			movedChild := right.children[0]

			n.keys = append(n.keys, sep)
			n.children = append(n.children, movedChild)
			movedChild.parent = n

			parent.keys[i] = right.keys[0]
			right.keys = right.keys[1:]
			right.children = right.children[1:]
			t.stats.RedistributeCount++
			t.log.Debug("internal borrow from right", "at", i)
			return
		}
	}

	if i > 0 {
		t.mergeInternals(parent, i-1, parent.children[i-1], n)
	} else {
		t.mergeInternals(parent, i, n, parent.children[i+1])
	}
}

// mergeInternals pulls the parent's separator down into left, appends
// right's keys and children onto left, reparents them, and removes the
// separator and right child from parent. Internal merges, unlike leaf
// merges, must pull the separator down: internal nodes hold no data of
// their own, so the key would otherwise be lost.
func (t *Tree[K, V]) mergeInternals(parent *node[K, V], sepIdx int, left, right *node[K, V]) {
	sep := parent.keys[sepIdx]
	left.keys = append(left.keys, sep)
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)
	for _, c := range right.children {
		c.parent = left
	}

	t.stats.InternalMergeCount++
	t.log.Debug("internal merge", "sepIdx", sepIdx)

	parent.removeChildAt(sepIdx)
	t.recordFree(false)
	t.alloc.release(right)

	t.collapseOrRebalanceParent(parent, left)
}

// collapseOrRebalanceParent is the shared tail of both merge routines: if
// parent is the root and has become empty, the surviving child takes over
// as root and the tree shrinks by one level; otherwise, if parent (a
// non-root node) is now underflowing, the underflow is handled recursively.
func (t *Tree[K, V]) collapseOrRebalanceParent(parent, survivor *node[K, V]) {
	if parent == t.root {
		if parent.keyCount() == 0 {
			survivor.parent = nil
			t.root = survivor
			t.recordFree(false)
			t.alloc.release(parent)
		}
		return
	}
	if parent.isUnderflow(t.minKeys) {
		t.rebalanceInternal(parent)
	}
}
