package compiler

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
)

// writeFrame appends one length-prefixed (BlobHeader, Blob) frame to f,
// mirroring the .osm.pbf wire framing (spec.md §4.1).
func writeFrame(t *testing.T, f *os.File, kind string, msg proto.Message) {
	t.Helper()
	payload, err := proto.Marshal(msg)
	require.NoError(t, err)

	size := int32(len(payload))
	blob := &osmpbf.Blob{Raw: payload, RawSize: &size}
	blobBytes, err := proto.Marshal(blob)
	require.NoError(t, err)

	datasize := int32(len(blobBytes))
	header := &osmpbf.BlobHeader{Type: &kind, Datasize: &datasize}
	headerBytes, err := proto.Marshal(header)
	require.NoError(t, err)

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(headerBytes)))
	_, err = f.Write(lenBuf[:])
	require.NoError(t, err)
	_, err = f.Write(headerBytes)
	require.NoError(t, err)
	_, err = f.Write(blobBytes)
	require.NoError(t, err)
}

func buildTestPBF(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.osm.pbf")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	hb := &osmpbf.HeaderBlock{RequiredFeatures: []string{"OsmSchema-V0.6", "DenseNodes"}}
	writeFrame(t, f, "OSMHeader", hb)

	st := &osmpbf.StringTable{S: [][]byte{
		[]byte(""), []byte("highway"), []byte("residential"), []byte("surface"), []byte("paved"),
	}}

	dense := &osmpbf.DenseNodes{
		Id:       []int64{1, 1}, // absolute ids: 1, 2
		Lat:      []int64{100, 0},
		Lon:      []int64{200, 0},
		KeysVals: []int32{1, 2, 0, 0},
	}
	nodeBlock := &osmpbf.PrimitiveBlock{
		Stringtable:    st,
		Primitivegroup: []*osmpbf.PrimitiveGroup{{Dense: dense}},
	}
	writeFrame(t, f, "OSMData", nodeBlock)

	wayID := int64(10)
	// This way carries its own tag: since nodes, ways and relations share
	// one tags/tags_index vector pair, this exercises the boundary between
	// the node stage's trailing sentinel and the way stage's own tags.
	way := &osmpbf.Way{Id: &wayID, Refs: []int64{1, 1}, Keys: []uint32{3}, Vals: []uint32{4}}
	wayBlock := &osmpbf.PrimitiveBlock{
		Stringtable:    st,
		Primitivegroup: []*osmpbf.PrimitiveGroup{{Ways: []*osmpbf.Way{way}}},
	}
	writeFrame(t, f, "OSMData", wayBlock)

	relID := int64(20)
	rel := &osmpbf.Relation{
		Id:       &relID,
		RolesSid: []int32{1},
		Memids:   []int64{10}, // way 10
		Types:    []osmpbf.Relation_MemberType{osmpbf.Relation_WAY},
	}
	relBlock := &osmpbf.PrimitiveBlock{
		Stringtable:    st,
		Primitivegroup: []*osmpbf.PrimitiveGroup{{Relations: []*osmpbf.Relation{rel}}},
	}
	writeFrame(t, f, "OSMData", relBlock)

	return path
}

func readResource(t *testing.T, dir, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), 8)
	length := binary.LittleEndian.Uint64(b[:8])
	_ = length
	return b[8:]
}

func TestCompileEndToEnd(t *testing.T) {
	input := buildTestPBF(t)
	outDir := filepath.Join(t.TempDir(), "archive")

	err := Compile(context.Background(), input, outDir, Options{Quiet: true}, io.Discard)
	require.NoError(t, err)

	for _, name := range []string{
		"header", "stringtable", "tags", "tags_index",
		"nodes", "nodes_index", "ways", "relations",
		"relation_members", "relation_members_index", "schema",
	} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "expected resource %s to exist", name)
	}

	nodesPayload := readResource(t, outDir, "nodes")
	// 2 real nodes + 1 sentinel.
	require.Equal(t, 3*recordpack.StrideNode, len(nodesPayload)-len(schemaNode))

	node0 := recordpack.DecodeNode(nodesPayload[:recordpack.StrideNode])
	require.EqualValues(t, scaleCoord(100*100, DefaultCoordScale), node0.Lat)
	require.EqualValues(t, scaleCoord(200*100, DefaultCoordScale), node0.Lon)

	// The trailing node sentinel's TagFirstIdx must mark the end of the
	// nodes' own tag range (1 tag, from node 0) and must NOT have drifted
	// forward to include the way's tag, which is appended to the same
	// shared tags_index vector later in the pass.
	nodeSentinel := recordpack.DecodeNode(nodesPayload[2*recordpack.StrideNode : 3*recordpack.StrideNode])
	require.EqualValues(t, 1, nodeSentinel.TagFirstIdx)

	tagsIndexPayload := readResource(t, outDir, "tags_index")
	// 1 node tag + 1 way tag + 1 trailing sentinel (the node and way stage
	// sentinels are records in nodes/ways, not entries in tags_index).
	require.Equal(t, 3*recordpack.StrideIndexEntry, len(tagsIndexPayload)-len(schemaTagIndex))

	waysPayload := readResource(t, outDir, "ways")
	way0 := recordpack.DecodeWay(waysPayload[:recordpack.StrideWay])
	require.EqualValues(t, 1, way0.TagFirstIdx)
}

func TestCompileKeepIDsEmitsIdsSubArchive(t *testing.T) {
	input := buildTestPBF(t)
	outDir := filepath.Join(t.TempDir(), "archive")

	err := Compile(context.Background(), input, outDir, Options{Quiet: true, KeepIDs: true}, io.Discard)
	require.NoError(t, err)

	for _, name := range []string{"ids/nodes", "ids/ways", "ids/relations"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "expected %s to exist", name)
	}
}

func TestCompileUnsupportedFeatureAbortsAndRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.osm.pbf")
	f, err := os.Create(path)
	require.NoError(t, err)
	hb := &osmpbf.HeaderBlock{RequiredFeatures: []string{"OsmSchema-V0.6", "HistoricalInformation"}}
	writeFrame(t, f, "OSMHeader", hb)
	require.NoError(t, f.Close())

	outDir := filepath.Join(dir, "archive")
	err = Compile(context.Background(), path, outDir, Options{Quiet: true}, io.Discard)
	require.Error(t, err)
	_, statErr := os.Stat(outDir)
	require.True(t, os.IsNotExist(statErr))
}
