// Package strtable implements the concurrent, deduplicating string table
// described in spec.md §4.2: a sharded hash map from byte sequence to
// 40-bit offset into a single append-only raw byte blob.
package strtable

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/osmflat/flatc/internal/ferr"
)

// InvalidIdx is the sentinel meaning "unresolved reference" (spec.md §3).
// It never collides with a real string offset because append refuses to
// grow the table past maxOffset, which lies below it.
const InvalidIdx uint64 = (1 << 40) - 1

// maxOffset is the largest 40-bit value below InvalidIdx; the table's
// size is kept at or under it.
const maxOffset = (1 << 40) - 2

const numShards = 64

type shard struct {
	mu    sync.RWMutex
	index map[string]uint64
}

// Interner is the global, concurrency-safe string table. The zero value is
// not usable; construct with New.
//
// Grounded on arloliu/mebo's internal/hash.ID (xxhash.Sum64String) for
// shard/bucket selection, generalized from mebo's single-purpose collision
// id hash into a sharded dedup map.
type Interner struct {
	shards  [numShards]*shard
	appendMu sync.Mutex
	buf     []byte
}

// New returns an Interner with offset 0 pre-populated as the empty string
// (a single NUL byte), matching spec.md §4.2.
func New() *Interner {
	in := &Interner{buf: make([]byte, 1)} // buf[0] = 0x00 already
	for i := range in.shards {
		in.shards[i] = &shard{index: make(map[string]uint64)}
	}
	// Seed the empty string at offset 0 so a later Intern(nil) or
	// Intern([]byte{}) returns 0 instead of appending a redundant second
	// NUL (spec.md §3: "String offset 0 is the empty string").
	shardFor(in, "").index[""] = 0
	return in
}

func shardFor(s *Interner, key string) *shard {
	h := xxhash.Sum64String(key)
	return s.shards[h%numShards]
}

// Intern returns the 40-bit offset of data's NUL-terminated bytes in the
// table, appending them on first sight. Intern is safe for concurrent use
// and idempotent: concurrent calls with equal data return equal offsets.
func (in *Interner) Intern(data []byte) (uint64, error) {
	key := string(data) // one alloc; also used as the map key directly
	sh := shardFor(in, key)

	sh.mu.RLock()
	if off, ok := sh.index[key]; ok {
		sh.mu.RUnlock()
		return off, nil
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	// Re-check: another goroutine may have inserted it while we waited for
	// the write lock (compare-and-insert per spec §4.2/§9).
	if off, ok := sh.index[key]; ok {
		return off, nil
	}

	off, err := in.append(data)
	if err != nil {
		return 0, err
	}
	sh.index[key] = off
	return off, nil
}

// append writes data followed by a NUL terminator to the shared raw buffer
// and returns the offset it was written at. The append mutex is held only
// for the duration of the append, per spec §4.2.
func (in *Interner) append(data []byte) (uint64, error) {
	in.appendMu.Lock()
	defer in.appendMu.Unlock()

	off := uint64(len(in.buf))
	if off > maxOffset || off+uint64(len(data))+1 > maxOffset {
		return 0, ferr.New(ferr.StringtableOverflow, -1, fmt.Errorf("stringtable would exceed 2^40 bytes at offset %d", off))
	}
	in.buf = append(in.buf, data...)
	in.buf = append(in.buf, 0)
	return off, nil
}

// Bytes returns the raw NUL-separated table accumulated so far. The caller
// must not mutate the returned slice; it aliases the Interner's buffer.
func (in *Interner) Bytes() []byte {
	in.appendMu.Lock()
	defer in.appendMu.Unlock()
	return in.buf
}

// Len returns the current size of the raw table in bytes.
func (in *Interner) Len() int {
	in.appendMu.Lock()
	defer in.appendMu.Unlock()
	return len(in.buf)
}
