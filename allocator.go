package bptree

import (
	"cmp"
	"sync"
)

// AllocatorStats reports the running total of node lifecycle events for a
// nodeAllocator: Allocations minus Releases must always equal the tree's
// current live node count.
type AllocatorStats struct {
	Allocations int64
	Releases    int64
}

// nodeAllocator decouples node lifecycle from tree logic, so allocation
// strategy can change without touching split/merge code. Only two
// implementations ship here: a plain allocator and a sync.Pool-backed one
// for high-churn workloads; callers pick between them with
// WithPooledAllocator.
type nodeAllocator[K cmp.Ordered, V any] interface {
	allocateLeaf(order int) *node[K, V]
	allocateInternal(order int) *node[K, V]
	release(n *node[K, V])
	stats() AllocatorStats
}

// plainAllocator allocates directly and only tracks counts.
type plainAllocator[K cmp.Ordered, V any] struct {
	st AllocatorStats
}

func (a *plainAllocator[K, V]) allocateLeaf(order int) *node[K, V] {
	a.st.Allocations++
	return newLeafNode[K, V](order)
}

func (a *plainAllocator[K, V]) allocateInternal(order int) *node[K, V] {
	a.st.Allocations++
	return newInternalNode[K, V](order)
}

func (a *plainAllocator[K, V]) release(_ *node[K, V]) {
	a.st.Releases++
}

func (a *plainAllocator[K, V]) stats() AllocatorStats {
	return a.st
}

// pooledAllocator recycles node structs through a pair of sync.Pools, one
// per variant, to cut allocation churn on workloads with heavy
// insert/remove turnover.
type pooledAllocator[K cmp.Ordered, V any] struct {
	mu       sync.Mutex
	st       AllocatorStats
	leaves   sync.Pool
	internal sync.Pool
	order    int
}

func newPooledAllocator[K cmp.Ordered, V any](order int) *pooledAllocator[K, V] {
	a := &pooledAllocator[K, V]{order: order}
	a.leaves.New = func() any { return newLeafNode[K, V](a.order) }
	a.internal.New = func() any { return newInternalNode[K, V](a.order) }
	return a
}

func (a *pooledAllocator[K, V]) allocateLeaf(order int) *node[K, V] {
	a.mu.Lock()
	a.st.Allocations++
	a.mu.Unlock()
	n := a.leaves.Get().(*node[K, V])
	n.keys = n.keys[:0]
	n.values = n.values[:0]
	n.next, n.prev, n.parent = nil, nil, nil
	return n
}

func (a *pooledAllocator[K, V]) allocateInternal(order int) *node[K, V] {
	a.mu.Lock()
	a.st.Allocations++
	a.mu.Unlock()
	n := a.internal.Get().(*node[K, V])
	n.keys = n.keys[:0]
	n.children = n.children[:0]
	n.parent = nil
	return n
}

func (a *pooledAllocator[K, V]) release(n *node[K, V]) {
	a.mu.Lock()
	a.st.Releases++
	a.mu.Unlock()
	if n.isLeaf {
		a.leaves.Put(n)
	} else {
		a.internal.Put(n)
	}
}

func (a *pooledAllocator[K, V]) stats() AllocatorStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st
}
