package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmflat/flatc/idmap"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/strtable"
)

func TestWayStageResolvesPresentNodeRefs(t *testing.T) {
	in := strtable.New()
	nodeIDs := idmap.New()
	nodeIDs.Set(10, 0)
	nodeIDs.Set(20, 1)
	nodeIDs.Set(30, 2)

	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)
	s := newWayStage(in, nodeIDs, tags, tagsIndex, false)

	pb := &osmpbf.PrimitiveBlock{Stringtable: &osmpbf.StringTable{S: [][]byte{[]byte("")}}}
	id := int64(1)
	w := &osmpbf.Way{Id: &id, Refs: []int64{10, 10, 10}} // delta-coded absolute 10, 20, 30

	require.NoError(t, s.Process(pb, []*osmpbf.Way{w}))
	require.Equal(t, 3, s.nodesIndex.Len())
	require.Zero(t, s.misses)

	for i, want := range []uint64{0, 1, 2} {
		got := recordpack.DecodeIndexEntry(s.nodesIndex.Bytes()[i*recordpack.StrideIndexEntry : (i+1)*recordpack.StrideIndexEntry])
		require.Equal(t, want, got.Value)
	}
}

func TestWayStageTombstonesUnresolvedRef(t *testing.T) {
	in := strtable.New()
	nodeIDs := idmap.New()
	nodeIDs.Set(10, 0)

	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)
	s := newWayStage(in, nodeIDs, tags, tagsIndex, false)

	pb := &osmpbf.PrimitiveBlock{Stringtable: &osmpbf.StringTable{S: [][]byte{[]byte("")}}}
	id := int64(1)
	w := &osmpbf.Way{Id: &id, Refs: []int64{999}} // node 999 does not exist

	require.NoError(t, s.Process(pb, []*osmpbf.Way{w}))
	require.EqualValues(t, 1, s.misses)

	got := recordpack.DecodeIndexEntry(s.nodesIndex.Bytes())
	require.Equal(t, recordpack.InvalidIdx, got.Value)
}

func TestWayStageFinishAppendsSentinelAndReturnsMisses(t *testing.T) {
	in := strtable.New()
	nodeIDs := idmap.New()
	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)
	s := newWayStage(in, nodeIDs, tags, tagsIndex, true)

	pb := &osmpbf.PrimitiveBlock{Stringtable: &osmpbf.StringTable{S: [][]byte{[]byte("")}}}
	id := int64(1)
	w := &osmpbf.Way{Id: &id, Refs: []int64{5}}
	require.NoError(t, s.Process(pb, []*osmpbf.Way{w}))

	ways, nodesIndex, ids, misses, keptIDs, err := s.Finish()
	require.NoError(t, err)
	require.Equal(t, 2, ways.Len()) // one real way + sentinel
	require.EqualValues(t, 1, misses)
	require.NotNil(t, keptIDs)
	require.Equal(t, 1, keptIDs.Len())
	_, ok := ids.Get(1)
	require.True(t, ok)

	sentinel := recordpack.DecodeWay(ways.Bytes()[recordpack.StrideWay:])
	require.EqualValues(t, tagsIndex.Len(), sentinel.TagFirstIdx)
	require.EqualValues(t, nodesIndex.Len(), sentinel.RefFirstIdx)
}
