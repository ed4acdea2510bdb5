package purefn

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// key is the pair of IEEE-754 bit patterns of the arguments, so NaN can be
// cached and -0 and +0 are kept apart.
type key [2]uint64

func keyOf(a, b float64) key {
	return key{math.Float64bits(a), math.Float64bits(b)}
}

type Stats struct {
	Hits      uint64
	Misses    uint64
	Rotations uint64
}

// Table is a bounded memo table for functions of two float64 arguments.
//
// Entries are spread over shards. Each shard writes into a head generation;
// once the head holds its capacity it becomes the previous generation, the
// old previous generation is dropped and a fresh map becomes the head.
// Lookups consult the head first, then the previous generation.
type Table struct {
	name   string
	shards []*shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	rotations atomic.Uint64

	hitsDesc      *prometheus.Desc
	missesDesc    *prometheus.Desc
	rotationsDesc *prometheus.Desc
}

type shard struct {
	mu      sync.Mutex
	memos   [2]atomic.Pointer[sync.Map]
	headIdx atomic.Uint32
	size    atomic.Uint32
	maxSize uint32
}

// Option configures a Table.
type Option func(*tableOptions)

type tableOptions struct {
	numShards int
}

// WithShards splits the table into n shards. The capacity is divided evenly
// between them, with at least one entry per shard generation.
func WithShards(n int) Option {
	if n < 1 {
		panic("purefn: number of shards should be greater than 0")
	}
	if uint64(n) > math.MaxUint32 {
		panic("purefn: number of shards should fit in uint32")
	}
	return func(o *tableOptions) {
		o.numShards = n
	}
}

// NewTable creates a table holding up to maxSize entries per generation.
// name labels the exported metrics.
func NewTable(name string, maxSize uint32, opts ...Option) *Table {
	if name == "" {
		panic("purefn: table name should not be empty")
	}
	if maxSize == 0 {
		panic("purefn: maxSize should be greater than 0")
	}
	o := tableOptions{numShards: 1}
	for _, opt := range opts {
		opt(&o)
	}

	perShard := max(maxSize/uint32(o.numShards), 1)
	shards := make([]*shard, o.numShards)
	for i := range shards {
		s := &shard{maxSize: perShard}
		s.memos[0].Store(&sync.Map{})
		s.memos[1].Store(&sync.Map{})
		shards[i] = s
	}

	labels := prometheus.Labels{"table": name}
	return &Table{
		name:   name,
		shards: shards,
		hitsDesc: prometheus.NewDesc(
			"purefn_table_hits_total",
			"Number of lookups answered from the table.",
			nil, labels,
		),
		missesDesc: prometheus.NewDesc(
			"purefn_table_misses_total",
			"Number of lookups not found in the table.",
			nil, labels,
		),
		rotationsDesc: prometheus.NewDesc(
			"purefn_table_rotations_total",
			"Number of generation rotations across all shards.",
			nil, labels,
		),
	}
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) shardOf(k key) *shard {
	if len(t.shards) == 1 {
		return t.shards[0]
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], k[0])
	binary.LittleEndian.PutUint64(buf[8:], k[1])
	return t.shards[xxhash.Sum64(buf[:])%uint64(len(t.shards))]
}

// Load returns the value stored for (a, b), if any.
func (t *Table) Load(a, b float64) (float64, bool) {
	k := keyOf(a, b)
	v, ok := t.shardOf(k).load(k)
	if ok {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	return v, ok
}

// Store records v as the value for (a, b).
func (t *Table) Store(a, b, v float64) {
	k := keyOf(a, b)
	if t.shardOf(k).store(k, v) {
		t.rotations.Add(1)
	}
}

func (t *Table) Stats() Stats {
	return Stats{
		Hits:      t.hits.Load(),
		Misses:    t.misses.Load(),
		Rotations: t.rotations.Load(),
	}
}

// Describe implements prometheus.Collector.
func (t *Table) Describe(ch chan<- *prometheus.Desc) {
	ch <- t.hitsDesc
	ch <- t.missesDesc
	ch <- t.rotationsDesc
}

// Collect implements prometheus.Collector.
func (t *Table) Collect(ch chan<- prometheus.Metric) {
	stats := t.Stats()
	ch <- prometheus.MustNewConstMetric(t.hitsDesc, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(t.missesDesc, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(t.rotationsDesc, prometheus.CounterValue, float64(stats.Rotations))
}

func (s *shard) load(k key) (float64, bool) {
	headIdx := s.headIdx.Load()
	if v, ok := s.memos[headIdx].Load().Load(k); ok {
		return v.(float64), true
	}
	if v, ok := s.memos[1-headIdx].Load().Load(k); ok {
		return v.(float64), true
	}
	return 0, false
}

func (s *shard) store(k key, v float64) (rotated bool) {
	if s.size.Load() >= s.maxSize {
		s.mu.Lock()
		if s.size.Load() >= s.maxSize {
			next := 1 - s.headIdx.Load()
			s.memos[next].Store(&sync.Map{})
			s.headIdx.Store(next)
			s.size.Store(0)
			rotated = true
		}
		s.mu.Unlock()
	}
	s.memos[s.headIdx.Load()].Load().Store(k, v)
	s.size.Add(1)
	return rotated
}
