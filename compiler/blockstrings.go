package compiler

import (
	"fmt"

	"github.com/osmflat/flatc/internal/ferr"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/strtable"
)

// blockStrings memoizes a PrimitiveBlock's local string-table lookups
// against the global interner. Every entity in a block typically reuses
// the same handful of keys ("highway", "name", ...), so caching the
// block-local index -> global offset mapping once per block avoids
// re-hashing the same bytes for every node/way/relation (spec.md §4.3
// step 3, §4.2 "Per-block local string tables must be mapped into a
// global deduplicated table").
type blockStrings struct {
	local    [][]byte
	resolved []uint64
	have     []bool
	interner *strtable.Interner
}

func newBlockStrings(st *osmpbf.StringTable, in *strtable.Interner) *blockStrings {
	local := st.GetS()
	return &blockStrings{
		local:    local,
		resolved: make([]uint64, len(local)),
		have:     make([]bool, len(local)),
		interner: in,
	}
}

func (b *blockStrings) intern(localIdx uint32) (uint64, error) {
	if int(localIdx) >= len(b.local) {
		return 0, ferr.New(ferr.CorruptBlob, -1, fmt.Errorf("string-table index %d out of range (block has %d entries)", localIdx, len(b.local)))
	}
	if b.have[localIdx] {
		return b.resolved[localIdx], nil
	}
	off, err := b.interner.Intern(b.local[localIdx])
	if err != nil {
		return 0, err
	}
	b.resolved[localIdx] = off
	b.have[localIdx] = true
	return off, nil
}
