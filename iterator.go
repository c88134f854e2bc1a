package bptree

import "cmp"

// Iterator walks a tree's leaves in ascending key order. A forward position
// is a (leaf, slot index) pair; advancing past the last pair leaves the
// iterator at the "end" position (last leaf, its key count), and an empty
// tree or a Seek with no successor leaves it with a nil leaf. There is no
// "before-begin" position, matching the
// design's note that decrementing from begin is undefined.
type Iterator[K cmp.Ordered, V any] struct {
	tree *Tree[K, V]
	leaf *node[K, V]
	pos  int
}

// Iterator returns a forward iterator positioned at the first pair, or an
// already-invalid iterator if the tree is empty.
func (t *Tree[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{tree: t, leaf: t.findLeftmostLeaf(), pos: 0}
}

// Seek repositions it at the first pair with key >= k, returning whether
// such a pair exists.
func (it *Iterator[K, V]) Seek(k K) bool {
	leaf := it.tree.findLeaf(k)
	if leaf == nil {
		it.leaf = nil
		return false
	}
	pos, _ := leaf.findKeyPosition(k)
	if pos >= leaf.keyCount() {
		leaf = leaf.next
		pos = 0
	}
	it.leaf = leaf
	it.pos = pos
	return it.Valid()
}

// Valid reports whether the iterator is positioned at a pair.
func (it *Iterator[K, V]) Valid() bool {
	return it.leaf != nil && it.pos < it.leaf.keyCount()
}

// Key returns the key at the current position. Only valid when Valid().
func (it *Iterator[K, V]) Key() K { return it.leaf.keys[it.pos] }

// Value returns the value at the current position. Only valid when
// Valid().
func (it *Iterator[K, V]) Value() V { return it.leaf.values[it.pos] }

// Next advances the iterator by one position, returning whether the new
// position is valid. Incrementing past the last slot of a non-final leaf
// advances to (next leaf, 0); incrementing at the end is a no-op.
func (it *Iterator[K, V]) Next() bool {
	if it.leaf == nil {
		return false
	}
	it.pos++
	if it.pos < it.leaf.keyCount() {
		return true
	}
	if it.leaf.next == nil {
		return false
	}
	it.leaf = it.leaf.next
	it.pos = 0
	return it.Valid()
}

// Collect drains the remainder of the iterator into a slice of pairs.
func (it *Iterator[K, V]) Collect() []Pair[K, V] {
	var out []Pair[K, V]
	for it.Valid() {
		out = append(out, Pair[K, V]{Key: it.Key(), Value: it.Value()})
		it.Next()
	}
	return out
}

// ReverseIterator walks a tree's leaves in descending key order.
type ReverseIterator[K cmp.Ordered, V any] struct {
	tree *Tree[K, V]
	leaf *node[K, V]
	pos  int
}

// ReverseIterator returns a reverse iterator positioned at the last pair,
// or an already-invalid iterator if the tree is empty.
func (t *Tree[K, V]) ReverseIterator() *ReverseIterator[K, V] {
	leaf := t.findRightmostLeaf()
	pos := -1
	if leaf != nil {
		pos = leaf.keyCount() - 1
	}
	return &ReverseIterator[K, V]{tree: t, leaf: leaf, pos: pos}
}

// SeekLast repositions it at the last pair with key <= k, returning
// whether such a pair exists.
func (it *ReverseIterator[K, V]) SeekLast(k K) bool {
	leaf := it.tree.findLeaf(k)
	if leaf == nil {
		it.leaf = nil
		return false
	}
	pos, found := leaf.findKeyPosition(k)
	if !found {
		pos--
	}
	for pos < 0 {
		if leaf.prev == nil {
			it.leaf = nil
			return false
		}
		leaf = leaf.prev
		pos = leaf.keyCount() - 1
	}
	it.leaf = leaf
	it.pos = pos
	return it.Valid()
}

// Valid reports whether the iterator is positioned at a pair.
func (it *ReverseIterator[K, V]) Valid() bool {
	return it.leaf != nil && it.pos >= 0 && it.pos < it.leaf.keyCount()
}

// Key returns the key at the current position. Only valid when Valid().
func (it *ReverseIterator[K, V]) Key() K { return it.leaf.keys[it.pos] }

// Value returns the value at the current position. Only valid when
// Valid().
func (it *ReverseIterator[K, V]) Value() V { return it.leaf.values[it.pos] }

// Next moves the iterator one position further toward the beginning of the
// tree. Decrementing from slot 0 of a non-first leaf moves to (prev leaf,
// prev leaf's key count - 1).
func (it *ReverseIterator[K, V]) Next() bool {
	if it.leaf == nil {
		return false
	}
	it.pos--
	if it.pos >= 0 {
		return true
	}
	if it.leaf.prev == nil {
		return false
	}
	it.leaf = it.leaf.prev
	it.pos = it.leaf.keyCount() - 1
	return it.Valid()
}

// Collect drains the remainder of the iterator into a slice of pairs, in
// descending key order.
func (it *ReverseIterator[K, V]) Collect() []Pair[K, V] {
	var out []Pair[K, V]
	for it.Valid() {
		out = append(out, Pair[K, V]{Key: it.Key(), Value: it.Value()})
		it.Next()
	}
	return out
}
