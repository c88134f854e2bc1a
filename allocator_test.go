package bptree

import "testing"

func TestPlainAllocatorTracksCounts(t *testing.T) {
	a := &plainAllocator[int, int]{}
	leaf := a.allocateLeaf(4)
	internal := a.allocateInternal(4)
	a.release(leaf)

	st := a.stats()
	if st.Allocations != 2 {
		t.Errorf("Allocations = %d, want 2", st.Allocations)
	}
	if st.Releases != 1 {
		t.Errorf("Releases = %d, want 1", st.Releases)
	}
	if internal.isLeaf {
		t.Error("allocateInternal produced a leaf")
	}
}

func TestPooledAllocatorResetsRecycledNodes(t *testing.T) {
	a := newPooledAllocator[int, string](4)

	leaf := a.allocateLeaf(4)
	leaf.keys = append(leaf.keys, 1, 2, 3)
	leaf.values = append(leaf.values, "a", "b", "c")
	leaf.next = leaf
	a.release(leaf)

	recycled := a.allocateLeaf(4)
	if recycled.keyCount() != 0 {
		t.Errorf("recycled leaf has %d keys, want 0", recycled.keyCount())
	}
	if recycled.next != nil {
		t.Error("recycled leaf should have nil next")
	}

	st := a.stats()
	if st.Allocations != 2 || st.Releases != 1 {
		t.Errorf("stats = %+v, want Allocations=2 Releases=1", st)
	}
}

func TestAllocatorAccountingStaysBalanced(t *testing.T) {
	tr := New[int, int](4, WithPooledAllocator[int, int]())
	for i := 0; i < 200; i++ {
		tr.Insert(i, i)
	}
	for i := 0; i < 200; i++ {
		tr.Remove(i)
	}

	st := tr.Statistics()
	if st.AllocCount != st.FreeCount {
		t.Errorf("AllocCount=%d FreeCount=%d, want equal once the tree is empty again", st.AllocCount, st.FreeCount)
	}
	if st.LeafNodeCount != 0 || st.InternalNodeCount != 0 {
		t.Errorf("expected zero live nodes, got leaves=%d internal=%d", st.LeafNodeCount, st.InternalNodeCount)
	}
}
