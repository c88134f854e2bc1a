package bptree

// Statistics tracks running counters of structural events on a tree: node
// counts, point-operation counts, and split/merge/redistribute counts. It
// is the value internal/metrics mirrors into Prometheus counters and
// gauges.
type Statistics struct {
	LeafNodeCount     int
	InternalNodeCount int

	InsertCount int
	RemoveCount int
	SearchCount int
	SearchHitCount int

	LeafSplitCount     int
	InternalSplitCount int
	LeafMergeCount     int
	InternalMergeCount int
	RedistributeCount  int

	AllocCount int
	FreeCount  int
}

// Statistics returns a snapshot of the tree's running counters.
func (t *Tree[K, V]) Statistics() Statistics {
	return t.stats
}

func (t *Tree[K, V]) recordAlloc(leaf bool) {
	t.stats.AllocCount++
	if leaf {
		t.stats.LeafNodeCount++
	} else {
		t.stats.InternalNodeCount++
	}
}

func (t *Tree[K, V]) recordFree(leaf bool) {
	t.stats.FreeCount++
	if leaf {
		t.stats.LeafNodeCount--
	} else {
		t.stats.InternalNodeCount--
	}
}
