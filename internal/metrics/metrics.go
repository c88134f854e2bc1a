// Package metrics mirrors a bptree.Statistics snapshot into Prometheus
// counters and gauges for the demo CLI's long-running modes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KilimcininKorOglu/bptree"
)

// Collector holds every metric exported for a single tree instance.
type Collector struct {
	LeafNodes     prometheus.Gauge
	InternalNodes prometheus.Gauge

	Inserts    prometheus.Counter
	Removes    prometheus.Counter
	Searches   prometheus.Counter
	SearchHits prometheus.Counter

	LeafSplits     prometheus.Counter
	InternalSplits prometheus.Counter
	LeafMerges     prometheus.Counter
	InternalMerges prometheus.Counter
	Redistributes  prometheus.Counter

	Allocs  prometheus.Counter
	Frees   prometheus.Counter
	Size    prometheus.Gauge
}

// NewCollector registers a fresh set of metrics carrying name as their
// "tree" label, so a process hosting more than one tree can tell them apart.
func NewCollector(name string) *Collector {
	labels := prometheus.Labels{"tree": name}
	return &Collector{
		LeafNodes:     promauto.NewGauge(prometheus.GaugeOpts{Name: "bptree_leaf_nodes", Help: "Live leaf node count.", ConstLabels: labels}),
		InternalNodes: promauto.NewGauge(prometheus.GaugeOpts{Name: "bptree_internal_nodes", Help: "Live internal node count.", ConstLabels: labels}),
		Size:          promauto.NewGauge(prometheus.GaugeOpts{Name: "bptree_size", Help: "Distinct keys currently stored.", ConstLabels: labels}),

		Inserts:    promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_inserts_total", Help: "Insert calls.", ConstLabels: labels}),
		Removes:    promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_removes_total", Help: "Remove calls.", ConstLabels: labels}),
		Searches:   promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_searches_total", Help: "Search calls.", ConstLabels: labels}),
		SearchHits: promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_search_hits_total", Help: "Search calls that found a key.", ConstLabels: labels}),

		LeafSplits:     promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_leaf_splits_total", Help: "Leaf split events.", ConstLabels: labels}),
		InternalSplits: promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_internal_splits_total", Help: "Internal node split events.", ConstLabels: labels}),
		LeafMerges:     promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_leaf_merges_total", Help: "Leaf merge events.", ConstLabels: labels}),
		InternalMerges: promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_internal_merges_total", Help: "Internal node merge events.", ConstLabels: labels}),
		Redistributes:  promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_redistributes_total", Help: "Sibling borrow events.", ConstLabels: labels}),

		Allocs: promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_node_allocs_total", Help: "Node allocations.", ConstLabels: labels}),
		Frees:  promauto.NewCounter(prometheus.CounterOpts{Name: "bptree_node_frees_total", Help: "Node releases.", ConstLabels: labels}),
	}
}

// Sync overwrites the node-count gauges with st's current values (the size
// gauge is set by SetSize) and advances every
// counter by st's delta from the last synced snapshot. Counters are
// monotonic in Statistics already, so Sync tracks the previous snapshot
// itself rather than asking the caller to compute deltas.
type Syncer struct {
	c    *Collector
	last bptree.Statistics
}

// NewSyncer returns a Syncer that reports increments against c starting
// from a zero baseline.
func NewSyncer(c *Collector) *Syncer {
	return &Syncer{c: c}
}

func (s *Syncer) Sync(st bptree.Statistics) {
	s.c.LeafNodes.Set(float64(st.LeafNodeCount))
	s.c.InternalNodes.Set(float64(st.InternalNodeCount))

	s.c.Inserts.Add(float64(st.InsertCount - s.last.InsertCount))
	s.c.Removes.Add(float64(st.RemoveCount - s.last.RemoveCount))
	s.c.Searches.Add(float64(st.SearchCount - s.last.SearchCount))
	s.c.SearchHits.Add(float64(st.SearchHitCount - s.last.SearchHitCount))

	s.c.LeafSplits.Add(float64(st.LeafSplitCount - s.last.LeafSplitCount))
	s.c.InternalSplits.Add(float64(st.InternalSplitCount - s.last.InternalSplitCount))
	s.c.LeafMerges.Add(float64(st.LeafMergeCount - s.last.LeafMergeCount))
	s.c.InternalMerges.Add(float64(st.InternalMergeCount - s.last.InternalMergeCount))
	s.c.Redistributes.Add(float64(st.RedistributeCount - s.last.RedistributeCount))

	s.c.Allocs.Add(float64(st.AllocCount - s.last.AllocCount))
	s.c.Frees.Add(float64(st.FreeCount - s.last.FreeCount))

	s.last = st
}

// SetSize reports the tree's current key count separately from Sync, since
// Statistics itself has no Size field (size lives on Tree, not Statistics).
func (c *Collector) SetSize(n int) {
	c.Size.Set(float64(n))
}
