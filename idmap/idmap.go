// Package idmap implements the sharded OSM-ID → dense-index maps used by
// NodeStage, WayStage and RelationStage (spec.md §4.3-§4.5, §9). A Map is
// written once, by its owning stage's single ordered drain goroutine, then
// becomes read-only to every later stage (spec.md §5).
package idmap

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// InvalidIdx is the sentinel stored (and returned by Get's ok=false path's
// callers) for an unresolved reference.
const InvalidIdx uint64 = (1 << 40) - 1

const numShards = 64

type shard struct {
	mu sync.RWMutex
	m  map[uint64]uint64
}

// Map is a concurrency-safe uint64(OSM ID) -> uint64(dense index) table.
// Grounded on the same sharded-by-xxhash design as strtable.Interner,
// generalized from mebo's internal/hash.ID usage: here the shard key is
// the numeric OSM ID rather than a string.
type Map struct {
	shards [numShards]*shard
}

// New returns an empty Map.
func New() *Map {
	m := &Map{}
	for i := range m.shards {
		m.shards[i] = &shard{m: make(map[uint64]uint64)}
	}
	return m
}

func (m *Map) shardFor(id uint64) *shard {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(id >> (8 * i))
	}
	h := xxhash.Sum64(buf[:])
	return m.shards[h%numShards]
}

// Set records id -> index. Set is called only from the owning stage's
// single-threaded ordered drain, so concurrent Set calls for the same id
// never race in practice; the lock exists to make Get safe while a
// later-arriving (but not yet processed) block's Set calls are still
// in-flight on the same Map from other stages reading it early is never
// valid (spec.md §5 barrier), so this only needs to guard Set-vs-Get
// across goroutines within one stage's own concurrent helpers, if any.
func (m *Map) Set(id, index uint64) {
	sh := m.shardFor(id)
	sh.mu.Lock()
	sh.m[id] = index
	sh.mu.Unlock()
}

// Get resolves id to its dense index. ok is false when id was never
// recorded (spec.md's UnresolvedReference case); callers substitute
// InvalidIdx and count the miss.
func (m *Map) Get(id uint64) (index uint64, ok bool) {
	sh := m.shardFor(id)
	sh.mu.RLock()
	index, ok = sh.m[id]
	sh.mu.RUnlock()
	return index, ok
}

// Len returns the total number of recorded entries across all shards.
func (m *Map) Len() int {
	n := 0
	for _, sh := range m.shards {
		sh.mu.RLock()
		n += len(sh.m)
		sh.mu.RUnlock()
	}
	return n
}
