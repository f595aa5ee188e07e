package compiler

import (
	"github.com/osmflat/flatc/idmap"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/strtable"
)

// NodeStage implements spec.md §4.3: it decodes every DenseNodes and
// legacy Nodes group in input order, builds the global Node vector, and
// populates the ID -> NodeIndex map that WayStage and RelationStage read
// once this stage's ordered drain has processed every node block.
type NodeStage struct {
	interner        *strtable.Interner
	ids             *idmap.Map
	nodes           *recordpack.Vector
	tags, tagsIndex *recordpack.Vector
	coordScale      int32
	keepIDs         *recordpack.Vector // nil unless Options.KeepIDs
}

func newNodeStage(in *strtable.Interner, tags, tagsIndex *recordpack.Vector, coordScale int32, keepIDs bool) *NodeStage {
	s := &NodeStage{
		interner:   in,
		ids:        idmap.New(),
		nodes:      recordpack.NewVector(recordpack.StrideNode),
		tags:       tags,
		tagsIndex:  tagsIndex,
		coordScale: coordScale,
	}
	if keepIDs {
		s.keepIDs = recordpack.NewVector(recordpack.StrideIndexEntry)
	}
	return s
}

// ProcessDense decodes one DenseNodes group (spec.md §4.3): running-sum
// decode of id/lat/lon, tag-run parsing off the flat keys_vals array, and
// recording each node's position in the ID map as it is assigned. Must be
// called from the single ordered drain thread only (spec.md §5).
func (s *NodeStage) ProcessDense(pb *osmpbf.PrimitiveBlock, dense *osmpbf.DenseNodes) error {
	bs := newBlockStrings(pb.GetStringtable(), s.interner)
	granularity := int64(pb.GetGranularity())
	latOffset := pb.GetLatOffset()
	lonOffset := pb.GetLonOffset()
	keysVals := dense.GetKeysVals()

	var id, lat, lon int64
	cursor := 0
	ids := dense.GetId()
	lats := dense.GetLat()
	lons := dense.GetLon()
	for i := range ids {
		id += ids[i]
		lat += lats[i]
		lon += lons[i]

		nanoLat := latOffset + granularity*lat
		nanoLon := lonOffset + granularity*lon

		tagFirst, err := appendTagsDense(bs, keysVals, &cursor, s.tags, s.tagsIndex)
		if err != nil {
			return err
		}

		idx := uint64(s.nodes.Len())
		rec := recordpack.Node{
			Lat:         scaleCoord(nanoLat, s.coordScale),
			Lon:         scaleCoord(nanoLon, s.coordScale),
			TagFirstIdx: tagFirst,
		}
		if err := s.nodes.Append(rec.Encode()); err != nil {
			return err
		}
		s.ids.Set(uint64(id), idx)
		if err := recordKeptID(s.keepIDs, id); err != nil {
			return err
		}
	}
	return nil
}

// ProcessLegacy decodes a legacy (non-dense) Nodes group: same logic as
// ProcessDense, minus delta coding (each Node already carries its absolute
// granularity-scaled coordinates and its own keys[]/vals[] arrays).
func (s *NodeStage) ProcessLegacy(pb *osmpbf.PrimitiveBlock, nodes []*osmpbf.Node) error {
	bs := newBlockStrings(pb.GetStringtable(), s.interner)
	granularity := int64(pb.GetGranularity())
	latOffset := pb.GetLatOffset()
	lonOffset := pb.GetLonOffset()

	for _, n := range nodes {
		tagFirst, err := appendTagsKV(bs, n.GetKeys(), n.GetVals(), s.tags, s.tagsIndex)
		if err != nil {
			return err
		}

		nanoLat := latOffset + granularity*n.GetLat()
		nanoLon := lonOffset + granularity*n.GetLon()

		idx := uint64(s.nodes.Len())
		rec := recordpack.Node{
			Lat:         scaleCoord(nanoLat, s.coordScale),
			Lon:         scaleCoord(nanoLon, s.coordScale),
			TagFirstIdx: tagFirst,
		}
		if err := s.nodes.Append(rec.Encode()); err != nil {
			return err
		}
		s.ids.Set(uint64(n.GetId()), idx)
		if err := recordKeptID(s.keepIDs, n.GetId()); err != nil {
			return err
		}
	}
	return nil
}

// Finish appends the trailing sentinel Node record required by @range
// fields (spec.md §4.6) and returns the completed vector, the ID map and
// (if Options.KeepIDs was set) the ids/nodes sub-archive vector.
func (s *NodeStage) Finish() (nodes *recordpack.Vector, ids *idmap.Map, keptIDs *recordpack.Vector, err error) {
	sentinel := recordpack.Node{TagFirstIdx: uint64(s.tagsIndex.Len())}
	if err := s.nodes.Append(sentinel.Encode()); err != nil {
		return nil, nil, nil, err
	}
	return s.nodes, s.ids, s.keepIDs, nil
}
