package bptree

import "cmp"

// BulkLoad constructs a tree from pairs, which must already be sorted in
// ascending key order, in time linear in len(pairs) rather than the
// O(n log n) cost of n sequential Inserts. Consecutive pairs sharing a key
// are coalesced, the later pair winning, matching Insert's overwrite rule.
//
// BulkLoad panics if pairs is not sorted ascending by key; it has no way to
// distinguish an unsorted caller from a silently wrong tree, and a wrong
// tree is worse than a loud panic.
func BulkLoad[K cmp.Ordered, V any](pairs []Pair[K, V], order int, opts ...Option[K, V]) *Tree[K, V] {
	t := New[K, V](order, opts...)

	deduped := coalesceDuplicates(pairs)
	if len(deduped) == 0 {
		return t
	}

	leaves := t.buildLeaves(deduped)
	t.root = t.buildLevelsAbove(leaves)
	t.size = len(deduped)
	return t
}

// coalesceDuplicates drops all but the last pair for each run of equal
// keys, panicking if the input turns out not to be ascending.
func coalesceDuplicates[K cmp.Ordered, V any](pairs []Pair[K, V]) []Pair[K, V] {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]Pair[K, V], 0, len(pairs))
	out = append(out, pairs[0])
	for i := 1; i < len(pairs); i++ {
		switch {
		case pairs[i].Key == out[len(out)-1].Key:
			out[len(out)-1] = pairs[i]
		case pairs[i].Key < out[len(out)-1].Key:
			panic("bptree: BulkLoad requires ascending input")
		default:
			out = append(out, pairs[i])
		}
	}
	return out
}

// fairGroupSizes splits a count of n items across the fewest groups of at
// most cap each, with group sizes differing by no more than one: at each
// step it takes ceil(remaining/remainingGroups) items, which is at most cap
// by construction of groupCount.
func fairGroupSizes(n, cap int) []int {
	if n == 0 {
		return nil
	}
	groupCount := (n + cap - 1) / cap
	sizes := make([]int, 0, groupCount)
	remaining, remainingGroups := n, groupCount
	for remainingGroups > 0 {
		size := (remaining + remainingGroups - 1) / remainingGroups
		sizes = append(sizes, size)
		remaining -= size
		remainingGroups--
	}
	return sizes
}

// buildLeaves packs deduped pairs into the fewest leaves of at most maxKeys
// entries each, keeping sibling leaf sizes within one of each other, and
// links them into the tree-wide doubly linked list.
func (t *Tree[K, V]) buildLeaves(deduped []Pair[K, V]) []*node[K, V] {
	sizes := fairGroupSizes(len(deduped), t.maxKeys)
	leaves := make([]*node[K, V], len(sizes))

	offset := 0
	var prev *node[K, V]
	for i, size := range sizes {
		leaf := t.alloc.allocateLeaf(t.order)
		t.recordAlloc(true)
		for _, p := range deduped[offset : offset+size] {
			leaf.keys = append(leaf.keys, p.Key)
			leaf.values = append(leaf.values, p.Value)
		}
		offset += size

		leaf.prev = prev
		if prev != nil {
			prev.next = leaf
		}
		prev = leaf
		leaves[i] = leaf
	}
	return leaves
}

// buildLevelsAbove repeatedly groups a level of nodes into parent internal
// nodes, at most order children each, until a single root remains.
func (t *Tree[K, V]) buildLevelsAbove(level []*node[K, V]) *node[K, V] {
	for len(level) > 1 {
		sizes := fairGroupSizes(len(level), t.order)
		next := make([]*node[K, V], len(sizes))

		offset := 0
		for i, size := range sizes {
			parent := t.alloc.allocateInternal(t.order)
			t.recordAlloc(false)

			group := level[offset : offset+size]
			offset += size

			parent.children = append(parent.children, group...)
			for _, c := range group {
				c.parent = parent
			}
			for _, c := range group[1:] {
				parent.keys = append(parent.keys, firstKey(c))
			}
			next[i] = parent
		}
		level = next
	}
	return level[0]
}
