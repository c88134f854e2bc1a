package bptree

import "testing"

func TestNewLeafNode(t *testing.T) {
	n := newLeafNode[int, string](4)
	if !n.isLeaf {
		t.Error("expected leaf node")
	}
	if n.keyCount() != 0 {
		t.Errorf("expected 0 keys, got %d", n.keyCount())
	}
	if n.children != nil {
		t.Error("leaf node should have nil children")
	}
}

func TestNewInternalNode(t *testing.T) {
	n := newInternalNode[int, string](4)
	if n.isLeaf {
		t.Error("expected internal node")
	}
	if n.values != nil {
		t.Error("internal node should have nil values")
	}
}

func TestFindKeyPosition(t *testing.T) {
	n := newLeafNode[int, string](8)
	n.keys = []int{10, 20, 30, 40}

	cases := []struct {
		key       int
		wantPos   int
		wantFound bool
	}{
		{5, 0, false},
		{10, 0, true},
		{15, 1, false},
		{30, 2, true},
		{45, 4, false},
	}
	for _, c := range cases {
		pos, found := n.findKeyPosition(c.key)
		if pos != c.wantPos || found != c.wantFound {
			t.Errorf("findKeyPosition(%d) = (%d, %v), want (%d, %v)", c.key, pos, found, c.wantPos, c.wantFound)
		}
	}
}

func TestFindChildIndexDescendsRightOnEqual(t *testing.T) {
	n := newInternalNode[int, string](8)
	n.keys = []int{10, 20, 30}

	cases := []struct {
		key  int
		want int
	}{
		{5, 0},
		{10, 1},
		{15, 1},
		{20, 2},
		{30, 3},
		{99, 3},
	}
	for _, c := range cases {
		if got := n.findChildIndex(c.key); got != c.want {
			t.Errorf("findChildIndex(%d) = %d, want %d", c.key, got, c.want)
		}
	}
}

func TestInsertAtAndRemoveAt(t *testing.T) {
	n := newLeafNode[int, string](8)
	n.insertAt(0, 10, "a")
	n.insertAt(1, 30, "c")
	n.insertAt(1, 20, "b")

	want := []int{10, 20, 30}
	for i, k := range want {
		if n.keys[i] != k {
			t.Errorf("keys[%d] = %d, want %d", i, n.keys[i], k)
		}
	}

	k, v := n.removeAt(1)
	if k != 20 || v != "b" {
		t.Errorf("removeAt(1) = (%d, %q), want (20, \"b\")", k, v)
	}
	if n.keyCount() != 2 {
		t.Errorf("expected 2 keys after remove, got %d", n.keyCount())
	}
}

func TestInsertChildAtReparents(t *testing.T) {
	parent := newInternalNode[int, string](8)
	left := newLeafNode[int, string](8)
	parent.children = append(parent.children, left)

	right := newLeafNode[int, string](8)
	parent.insertChildAt(0, 50, right)

	if parent.keys[0] != 50 {
		t.Errorf("keys[0] = %d, want 50", parent.keys[0])
	}
	if parent.children[1] != right {
		t.Error("right child not placed at index 1")
	}
	if right.parent != parent {
		t.Error("insertChildAt did not reparent the new child")
	}
}

func TestCanLendAndIsUnderflow(t *testing.T) {
	n := newLeafNode[int, string](8)
	n.keys = []int{1, 2}

	if n.isUnderflow(2) {
		t.Error("2 keys should not underflow minKeys=2")
	}
	if n.isUnderflow(3) != true {
		t.Error("2 keys should underflow minKeys=3")
	}
	if n.canLend(2) {
		t.Error("2 keys at the floor should not be able to lend")
	}
	if !n.canLend(1) {
		t.Error("2 keys above the floor should be able to lend")
	}
}

func TestFirstKeyDescendsToLeaf(t *testing.T) {
	leaf := newLeafNode[int, string](8)
	leaf.keys = []int{7, 8}

	mid := newInternalNode[int, string](8)
	mid.children = append(mid.children, leaf)

	top := newInternalNode[int, string](8)
	top.children = append(top.children, mid)

	if got := firstKey(top); got != 7 {
		t.Errorf("firstKey = %d, want 7", got)
	}
}
