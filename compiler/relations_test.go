package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmflat/flatc/idmap"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/strtable"
)

func TestRelationStageResolvesAllThreeMemberKinds(t *testing.T) {
	in := strtable.New()
	nodeIDs := idmap.New()
	nodeIDs.Set(1, 0)
	wayIDs := idmap.New()
	wayIDs.Set(2, 0)

	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)
	s := newRelationStage(in, nodeIDs, wayIDs, tags, tagsIndex, false)

	st := &osmpbf.StringTable{S: [][]byte{[]byte(""), []byte("outer")}}
	pb := &osmpbf.PrimitiveBlock{Stringtable: st}

	relID := int64(100)
	r := &osmpbf.Relation{
		Id:       &relID,
		RolesSid: []int32{1, 1, 1},
		Memids:   []int64{1, 1, 98}, // absolute: node 1, way 2, relation 100 (self)
		Types:    []osmpbf.Relation_MemberType{osmpbf.Relation_NODE, osmpbf.Relation_WAY, osmpbf.Relation_RELATION},
	}
	s.Cache(pb, []*osmpbf.Relation{r})

	s.Discover()
	idx, ok := s.ids.Get(100)
	require.True(t, ok)
	require.EqualValues(t, 0, idx)

	misses, err := s.Emit()
	require.NoError(t, err)
	require.Zero(t, misses.Node)
	require.Zero(t, misses.Way)
	require.Zero(t, misses.Relation)

	relations, memberIndex, memberData, _ := s.Vectors()
	require.Equal(t, 2, relations.Len()) // one real relation + sentinel
	require.Equal(t, 2, memberIndex.Len())

	require.Len(t, memberData, 3*(1+recordpack.StrideMember))
	require.Equal(t, variantNodeMember, memberData[0])
	require.Equal(t, variantWayMember, memberData[1+recordpack.StrideMember])
	require.Equal(t, variantRelationMember, memberData[2*(1+recordpack.StrideMember)])
}

func TestRelationStageTracksMissesByKind(t *testing.T) {
	in := strtable.New()
	nodeIDs := idmap.New()
	wayIDs := idmap.New()

	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)
	s := newRelationStage(in, nodeIDs, wayIDs, tags, tagsIndex, false)

	st := &osmpbf.StringTable{S: [][]byte{[]byte("")}}
	pb := &osmpbf.PrimitiveBlock{Stringtable: st}

	relID := int64(1)
	r := &osmpbf.Relation{
		Id:       &relID,
		RolesSid: []int32{0, 0},
		Memids:   []int64{999, 1}, // node 999 missing, relation 1000 missing
		Types:    []osmpbf.Relation_MemberType{osmpbf.Relation_NODE, osmpbf.Relation_RELATION},
	}
	s.Cache(pb, []*osmpbf.Relation{r})
	s.Discover()

	misses, err := s.Emit()
	require.NoError(t, err)
	require.EqualValues(t, 1, misses.Node)
	require.EqualValues(t, 1, misses.Relation)
	require.Zero(t, misses.Way)
}

func TestRelationStageForwardReferenceResolves(t *testing.T) {
	// Relation 1 references relation 2, which is cached in a later block;
	// Discover must assign both indices before Emit resolves either.
	in := strtable.New()
	nodeIDs := idmap.New()
	wayIDs := idmap.New()
	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)
	s := newRelationStage(in, nodeIDs, wayIDs, tags, tagsIndex, false)

	st := &osmpbf.StringTable{S: [][]byte{[]byte("")}}
	pb := &osmpbf.PrimitiveBlock{Stringtable: st}

	id1, id2 := int64(1), int64(2)
	r1 := &osmpbf.Relation{
		Id:       &id1,
		RolesSid: []int32{0},
		Memids:   []int64{2},
		Types:    []osmpbf.Relation_MemberType{osmpbf.Relation_RELATION},
	}
	r2 := &osmpbf.Relation{Id: &id2}

	s.Cache(pb, []*osmpbf.Relation{r1})
	s.Cache(pb, []*osmpbf.Relation{r2})
	s.Discover()

	misses, err := s.Emit()
	require.NoError(t, err)
	require.Zero(t, misses.Relation)
}
