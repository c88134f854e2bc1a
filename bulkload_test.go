package bptree

import "testing"

func TestBulkLoadFindsEveryPair(t *testing.T) {
	pairs := make([]Pair[int, int], 500)
	for i := range pairs {
		pairs[i] = Pair[int, int]{Key: i, Value: i * i}
	}

	bulk := BulkLoad(pairs, 6)
	if bulk.Size() != len(pairs) {
		t.Fatalf("Size() = %d, want %d", bulk.Size(), len(pairs))
	}
	if err := bulk.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	for _, p := range pairs {
		v, ok := bulk.Search(p.Key)
		if !ok || v != p.Value {
			t.Fatalf("Search(%d) = (%d, %v), want (%d, true)", p.Key, v, ok, p.Value)
		}
	}
}

func TestBulkLoadCoalescesDuplicateKeys(t *testing.T) {
	pairs := []Pair[int, string]{
		{Key: 1, Value: "a"},
		{Key: 2, Value: "x"},
		{Key: 2, Value: "y"},
		{Key: 3, Value: "c"},
	}
	bulk := BulkLoad(pairs, 4)

	if bulk.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", bulk.Size())
	}
	v, ok := bulk.Search(2)
	if !ok || v != "y" {
		t.Errorf("Search(2) = (%q, %v), want (\"y\", true), last write should win", v, ok)
	}
}

func TestBulkLoadEmptyInput(t *testing.T) {
	bulk := BulkLoad[int, int](nil, 4)
	if !bulk.IsEmpty() {
		t.Error("expected empty tree from empty input")
	}
}

func TestBulkLoadPanicsOnUnsortedInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unsorted input")
		}
	}()
	BulkLoad([]Pair[int, int]{{Key: 2, Value: 2}, {Key: 1, Value: 1}}, 4)
}

func TestFairGroupSizesWithinOneOfEachOther(t *testing.T) {
	sizes := fairGroupSizes(97, 10)
	sum := 0
	min, max := sizes[0], sizes[0]
	for _, s := range sizes {
		if s > 10 {
			t.Fatalf("group size %d exceeds cap 10", s)
		}
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if sum != 97 {
		t.Errorf("sizes sum to %d, want 97", sum)
	}
	if max-min > 1 {
		t.Errorf("group sizes span %d..%d, want a spread of at most 1", min, max)
	}
}

func TestBulkLoadLeafChainIsLinked(t *testing.T) {
	pairs := make([]Pair[int, int], 1000)
	for i := range pairs {
		pairs[i] = Pair[int, int]{Key: i, Value: i}
	}
	bulk := BulkLoad(pairs, 5)

	it := bulk.Iterator()
	count := 0
	for ; it.Valid(); it.Next() {
		if it.Key() != count {
			t.Fatalf("leaf chain out of order at position %d: key %d", count, it.Key())
		}
		count++
	}
	if count != len(pairs) {
		t.Errorf("iterated %d pairs, want %d", count, len(pairs))
	}
}
