package compiler

import (
	"github.com/osmflat/flatc/idmap"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/strtable"
)

// Multivector variant tags (spec.md §4.5).
const (
	variantNodeMember     byte = 0
	variantWayMember      byte = 1
	variantRelationMember byte = 2
)

type relationBlock struct {
	stringtable *osmpbf.StringTable
	relations   []*osmpbf.Relation
}

// MissCounts breaks out unresolved relation-member references by the
// target kind (spec.md §4.5: "misses across different kinds are tracked
// independently").
type MissCounts struct {
	Node, Way, Relation uint64
}

// RelationStage implements spec.md §4.5. Because relations may reference
// other relations that appear later in the file (or themselves), it
// cannot resolve members as it streams blocks: the main decode pass only
// calls Cache, buffering each block's already-decoded *osmpbf.Relation
// slice (decompression, the expensive part, still only happens once).
// After every relation block has been cached, Discover assigns dense
// indices to every relation ID, and Emit walks the same cached blocks
// again to resolve members and write the multivector.
type RelationStage struct {
	interner        *strtable.Interner
	nodeIDs, wayIDs *idmap.Map // read-only
	ids             *idmap.Map // relation id -> relation index, built by Discover
	tags, tagsIndex *recordpack.Vector
	relations       *recordpack.Vector
	memberIndex     *recordpack.Vector
	memberData      []byte
	cached          []relationBlock
	keepIDs         *recordpack.Vector // nil unless Options.KeepIDs
}

func newRelationStage(in *strtable.Interner, nodeIDs, wayIDs *idmap.Map, tags, tagsIndex *recordpack.Vector, keepIDs bool) *RelationStage {
	s := &RelationStage{
		interner:    in,
		nodeIDs:     nodeIDs,
		wayIDs:      wayIDs,
		ids:         idmap.New(),
		tags:        tags,
		tagsIndex:   tagsIndex,
		relations:   recordpack.NewVector(recordpack.StrideRelation),
		memberIndex: recordpack.NewVector(recordpack.StrideIndexEntry),
	}
	if keepIDs {
		s.keepIDs = recordpack.NewVector(recordpack.StrideIndexEntry)
	}
	return s
}

// Cache buffers one Relations group for later processing. Called from the
// single ordered drain thread of the main decode pass.
func (s *RelationStage) Cache(pb *osmpbf.PrimitiveBlock, relations []*osmpbf.Relation) {
	s.cached = append(s.cached, relationBlock{stringtable: pb.GetStringtable(), relations: relations})
}

// Discover is the ID-discovery sub-pass (spec.md §4.5, §9): it walks every
// cached relation in file order and assigns its dense index before any
// member is resolved, so that self- and forward-references between
// relations resolve correctly in Emit.
func (s *RelationStage) Discover() {
	var idx uint64
	for _, blk := range s.cached {
		for _, r := range blk.relations {
			s.ids.Set(uint64(r.GetId()), idx)
			idx++
		}
	}
}

// Emit resolves and writes every relation's tag range and member
// multivector block. It must run after Discover and relies on the same
// cached-block iteration order to keep relation indices consistent with
// what Discover assigned.
func (s *RelationStage) Emit() (MissCounts, error) {
	var misses MissCounts

	for _, blk := range s.cached {
		bs := newBlockStrings(blk.stringtable, s.interner)

		for _, r := range blk.relations {
			tagFirst, err := appendTagsKV(bs, r.GetKeys(), r.GetVals(), s.tags, s.tagsIndex)
			if err != nil {
				return misses, err
			}

			blockStart := uint64(len(s.memberData))
			if err := s.memberIndex.Append(recordpack.IndexEntry{Value: blockStart}.Encode()); err != nil {
				return misses, err
			}

			memids := r.GetMemids()
			roles := r.GetRolesSid()
			types := r.GetTypes()

			var memID int64
			for i := range memids {
				memID += memids[i]

				roleIdx, err := bs.intern(uint32(roles[i]))
				if err != nil {
					return misses, err
				}

				var tag byte
				var targetIdx uint64
				var ok bool
				switch types[i] {
				case osmpbf.Relation_NODE:
					tag = variantNodeMember
					targetIdx, ok = s.nodeIDs.Get(uint64(memID))
					if !ok {
						targetIdx = recordpack.InvalidIdx
						misses.Node++
					}
				case osmpbf.Relation_WAY:
					tag = variantWayMember
					targetIdx, ok = s.wayIDs.Get(uint64(memID))
					if !ok {
						targetIdx = recordpack.InvalidIdx
						misses.Way++
					}
				default:
					tag = variantRelationMember
					targetIdx, ok = s.ids.Get(uint64(memID))
					if !ok {
						targetIdx = recordpack.InvalidIdx
						misses.Relation++
					}
				}

				member := recordpack.Member{TargetIdx: targetIdx, RoleIdx: roleIdx}
				s.memberData = append(s.memberData, tag)
				s.memberData = append(s.memberData, member.Encode()...)
			}

			if err := s.relations.Append(recordpack.Relation{TagFirstIdx: tagFirst}.Encode()); err != nil {
				return misses, err
			}
			if err := recordKeptID(s.keepIDs, r.GetId()); err != nil {
				return misses, err
			}
		}
	}

	if err := s.relations.Append(recordpack.Relation{TagFirstIdx: uint64(s.tagsIndex.Len())}.Encode()); err != nil {
		return misses, err
	}
	if err := s.memberIndex.Append(recordpack.IndexEntry{Value: uint64(len(s.memberData))}.Encode()); err != nil {
		return misses, err
	}

	return misses, nil
}

// Vectors returns the completed relation resources, once Emit has run,
// plus (if Options.KeepIDs was set) the ids/relations sub-archive vector.
func (s *RelationStage) Vectors() (relations, memberIndex *recordpack.Vector, memberData []byte, keptIDs *recordpack.Vector) {
	return s.relations, s.memberIndex, s.memberData, s.keepIDs
}
