package merkletree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var leavesAdded = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "merkletree_leaves_added_total",
	Help: "The total number of leaves added to a tree",
}, []string{"tree"})

var leavesUpdated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "merkletree_leaves_updated_total",
	Help: "The total number of leaves whose data changed",
}, []string{"tree"})

var propagationSteps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "merkletree_hash_updates_total",
	Help: "The total number of nodes re-keyed while propagating hash changes",
}, []string{"tree"})

var flushes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "merkletree_flushes_total",
	Help: "The total number of successful flushes",
}, []string{"tree"})

var flushedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "merkletree_flushed_records_total",
	Help: "The total number of node and data records written by flushes",
}, []string{"tree"})

var flushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "merkletree_flush_duration_seconds",
	Help:    "Duration of successful flushes",
	Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
}, []string{"tree"})
