package compiler

import (
	"github.com/osmflat/flatc/idmap"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/strtable"
)

// WayStage implements spec.md §4.4. It reads the completed node ID map
// (built by NodeStage, now read-only per the barrier in spec.md §5) to
// resolve each way's node references into dense indices, tombstoning
// misses as recordpack.InvalidIdx rather than failing.
type WayStage struct {
	interner        *strtable.Interner
	nodeIDs         *idmap.Map // read-only
	ids             *idmap.Map // way id -> way index, built here
	ways            *recordpack.Vector
	nodesIndex      *recordpack.Vector
	tags, tagsIndex *recordpack.Vector
	misses          uint64
	keepIDs         *recordpack.Vector // nil unless Options.KeepIDs
}

func newWayStage(in *strtable.Interner, nodeIDs *idmap.Map, tags, tagsIndex *recordpack.Vector, keepIDs bool) *WayStage {
	s := &WayStage{
		interner:   in,
		nodeIDs:    nodeIDs,
		ids:        idmap.New(),
		ways:       recordpack.NewVector(recordpack.StrideWay),
		nodesIndex: recordpack.NewVector(recordpack.StrideIndexEntry),
		tags:       tags,
		tagsIndex:  tagsIndex,
	}
	if keepIDs {
		s.keepIDs = recordpack.NewVector(recordpack.StrideIndexEntry)
	}
	return s
}

// Process decodes one Ways group (spec.md §4.4): undelta-decodes refs[]
// into absolute node IDs, resolves each against the node ID map, and
// appends the resolved (or tombstoned) indices into the global
// nodes_index vector. Must be called only from the single ordered drain
// thread.
func (s *WayStage) Process(pb *osmpbf.PrimitiveBlock, ways []*osmpbf.Way) error {
	bs := newBlockStrings(pb.GetStringtable(), s.interner)

	for _, w := range ways {
		tagFirst, err := appendTagsKV(bs, w.GetKeys(), w.GetVals(), s.tags, s.tagsIndex)
		if err != nil {
			return err
		}

		refFirst := uint64(s.nodesIndex.Len())
		var nodeID int64
		for _, delta := range w.GetRefs() {
			nodeID += delta
			idx, ok := s.nodeIDs.Get(uint64(nodeID))
			if !ok {
				idx = recordpack.InvalidIdx
				s.misses++
			}
			if err := s.nodesIndex.Append(recordpack.IndexEntry{Value: idx}.Encode()); err != nil {
				return err
			}
		}

		idx := uint64(s.ways.Len())
		rec := recordpack.Way{TagFirstIdx: tagFirst, RefFirstIdx: refFirst}
		if err := s.ways.Append(rec.Encode()); err != nil {
			return err
		}
		s.ids.Set(uint64(w.GetId()), idx)
		if err := recordKeptID(s.keepIDs, w.GetId()); err != nil {
			return err
		}
	}
	return nil
}

// Finish appends the trailing Way sentinel and returns the completed
// vectors, the way ID map (read by RelationStage), the aggregate
// unresolved-reference count (spec.md §4.4: "a single aggregate warning is
// surfaced at end of stage") and (if Options.KeepIDs was set) the ids/ways
// sub-archive vector.
func (s *WayStage) Finish() (ways, nodesIndex *recordpack.Vector, ids *idmap.Map, misses uint64, keptIDs *recordpack.Vector, err error) {
	sentinel := recordpack.Way{
		TagFirstIdx: uint64(s.tagsIndex.Len()),
		RefFirstIdx: uint64(s.nodesIndex.Len()),
	}
	if err := s.ways.Append(sentinel.Encode()); err != nil {
		return nil, nil, nil, 0, nil, err
	}
	return s.ways, s.nodesIndex, s.ids, s.misses, s.keepIDs, nil
}
