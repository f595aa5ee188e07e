package compiler

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/golang/protobuf/proto"

	"github.com/osmflat/flatc/archive"
	"github.com/osmflat/flatc/blockio"
	"github.com/osmflat/flatc/internal/ferr"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/schedule"
	"github.com/osmflat/flatc/strtable"
)

// Compile runs the full pipeline (spec.md §2, §4-§7): it reads inputPath,
// a .osm.pbf file, and writes a complete osmflat archive to outputDir.
// Compile owns the archive's lifecycle end to end: a fatal error at any
// point aborts and removes the partially written directory; a clean run
// commits it. Compile is the sole entry point core packages expose; the
// CLI front end in cmd/osmflatc only turns flags into an Options value and
// maps the returned error's ferr.Error.ExitCode() to a process exit code.
func Compile(ctx context.Context, inputPath, outputDir string, opts Options, logOut io.Writer) (err error) {
	logger := log.New(logOut, "", log.LstdFlags)
	logf := func(format string, args ...any) {
		if !opts.Quiet {
			logger.Printf(format, args...)
		}
	}

	src, openErr := blockio.Open(inputPath)
	if openErr != nil {
		return openErr
	}
	defer src.Close()

	hb, err := readHeaderBlock(src)
	if err != nil {
		return err
	}
	if err := checkRequiredFeatures(hb); err != nil {
		return err
	}

	ar, createErr := archive.Create(outputDir)
	if createErr != nil {
		return createErr
	}
	defer func() {
		if err != nil {
			ar.Abort()
		}
	}()

	in := strtable.New()
	coordScale := opts.coordScale()

	header, err := buildHeader(hb, in, coordScale)
	if err != nil {
		return err
	}

	tags := recordpack.NewVector(recordpack.StrideTag)
	tagsIndex := recordpack.NewVector(recordpack.StrideIndexEntry)

	nodeStage := newNodeStage(in, tags, tagsIndex, coordScale, opts.KeepIDs)
	wayStage := newWayStage(in, nodeStage.ids, tags, tagsIndex, opts.KeepIDs)
	relStage := newRelationStage(in, nodeStage.ids, wayStage.ids, tags, tagsIndex, opts.KeepIDs)

	done := stageTimer(logf, "decode+node+way pass")
	seal, err := runDecodePass(ctx, src, opts, nodeStage, wayStage, relStage)
	if err != nil {
		return err
	}
	done()
	logf("ways: %d unresolved node references", seal.wayMisses)

	done = stageTimer(logf, "relation discover+emit")
	relStage.Discover()
	misses, err := relStage.Emit()
	if err != nil {
		return err
	}
	done()

	nodes, nodeKeptIDs := seal.nodes, seal.nodeKeptIDs
	ways, nodesIndex, wayKeptIDs := seal.ways, seal.nodesIndex, seal.wayKeptIDs
	relations, memberIndex, memberData, relKeptIDs := relStage.Vectors()

	logf("relations: %d unresolved node, %d unresolved way, %d unresolved relation references",
		misses.Node, misses.Way, misses.Relation)

	// tags_index ends with one trailing sentinel entry holding |tags|, after
	// every stage has appended its tags and its own range sentinel.
	if err = tagsIndex.Append(recordpack.IndexEntry{Value: uint64(tags.Len())}.Encode()); err != nil {
		return err
	}

	if err = writeArchive(ar, header, in, tags, tagsIndex, nodes, ways, nodesIndex,
		relations, memberIndex, memberData, nodeKeptIDs, wayKeptIDs, relKeptIDs); err != nil {
		return err
	}

	if err = ar.Commit(); err != nil {
		return err
	}
	return nil
}

// readHeaderBlock reads and decodes the mandatory leading OSMHeader blob
// (spec.md §4: HeaderIngest).
func readHeaderBlock(src *blockio.Source) (*osmpbf.HeaderBlock, error) {
	blob, err := src.Next()
	if err != nil {
		if err == io.EOF {
			return nil, ferr.New(ferr.TruncatedInput, 0, fmt.Errorf("input has no blocks"))
		}
		return nil, err
	}
	if blob.Kind != blockio.KindHeader {
		return nil, ferr.New(ferr.CorruptBlob, 0, fmt.Errorf("first block is %s, expected OSMHeader", blob.Kind))
	}
	raw, err := blockio.Decompress(blob.Raw, 0)
	if err != nil {
		return nil, err
	}
	hb := new(osmpbf.HeaderBlock)
	if err := proto.Unmarshal(raw, hb); err != nil {
		return nil, ferr.New(ferr.CorruptBlob, 0, err)
	}
	return hb, nil
}

// decodePassResult carries every stage's sealed (sentinel-terminated)
// vector out of runDecodePass.
type decodePassResult struct {
	nodes, nodeKeptIDs           *recordpack.Vector
	ways, nodesIndex, wayKeptIDs *recordpack.Vector
	wayMisses                    uint64
}

// runDecodePass drives the single parallel decode pass over every
// remaining OSMData blob (spec.md §4.7/§5): decompression and protobuf
// unmarshaling happen concurrently across opts.workers() goroutines, while
// dispatch into NodeStage/WayStage/RelationStage happens from schedule.Run's
// single ordered drain thread so the barrier (node IDs complete before way
// refs resolve) holds without decoding any block twice. Real-world PBF
// files group nodes, then ways, then relations contiguously, so Node and
// Way groups are resolved inline as they drain; Relation groups are only
// cached here since relations may reference other relations out of order
// (resolved afterward by RelationStage.Discover/Emit).
//
// NodeStage and WayStage share one global tags/tags_index vector pair with
// every other stage, so each stage's trailing sentinel record must be
// appended (sealed) at the exact moment that stage stops contributing tags
// — not after the whole pass, by which point later stages may already have
// appended tags of their own. This function seals NodeStage the instant the
// first Ways or Relations group is seen, and seals WayStage the instant the
// first Relations group is seen or, if there is none, once the whole pass
// is done (relation tags are only appended later, by RelationStage.Emit,
// so either point is still before any relation tag lands in the shared
// vector).
func runDecodePass(ctx context.Context, src *blockio.Source, opts Options, nodeStage *NodeStage, wayStage *WayStage, relStage *RelationStage) (decodePassResult, error) {
	var result decodePassResult
	var nodesSealed, waysSealed bool

	sealNodes := func() error {
		if nodesSealed {
			return nil
		}
		nodesSealed = true
		nodes, _, nodeKeptIDs, err := nodeStage.Finish()
		if err != nil {
			return err
		}
		result.nodes, result.nodeKeptIDs = nodes, nodeKeptIDs
		return nil
	}
	sealWays := func() error {
		if waysSealed {
			return nil
		}
		if err := sealNodes(); err != nil {
			return err
		}
		waysSealed = true
		ways, nodesIndex, _, wayMisses, wayKeptIDs, err := wayStage.Finish()
		if err != nil {
			return err
		}
		result.ways, result.nodesIndex, result.wayMisses, result.wayKeptIDs = ways, nodesIndex, wayMisses, wayKeptIDs
		return nil
	}

	seq := 0
	produce := func() (int, *blockio.Blob, bool, error) {
		for {
			blob, err := src.Next()
			if err != nil {
				if err == io.EOF {
					return 0, nil, true, nil
				}
				return 0, nil, false, err
			}
			if blob.Kind != blockio.KindData {
				continue // a second OSMHeader blob, if present, carries no data to dispatch
			}
			s := seq
			seq++
			return s, blob, false, nil
		}
	}

	decode := func(blob *blockio.Blob) (*osmpbf.PrimitiveBlock, error) {
		raw, err := blockio.Decompress(blob.Raw, int64(blob.Seq))
		if err != nil {
			return nil, err
		}
		pb := new(osmpbf.PrimitiveBlock)
		if err := proto.Unmarshal(raw, pb); err != nil {
			return nil, ferr.New(ferr.CorruptBlob, int64(blob.Seq), err)
		}
		return pb, nil
	}

	consume := func(_ int, pb *osmpbf.PrimitiveBlock) error {
		for _, pg := range pb.GetPrimitivegroup() {
			switch {
			case pg.Dense != nil:
				if err := nodeStage.ProcessDense(pb, pg.Dense); err != nil {
					return err
				}
			case len(pg.Nodes) != 0:
				if err := nodeStage.ProcessLegacy(pb, pg.Nodes); err != nil {
					return err
				}
			case len(pg.Ways) != 0:
				if err := sealNodes(); err != nil {
					return err
				}
				if err := wayStage.Process(pb, pg.Ways); err != nil {
					return err
				}
			case len(pg.Relations) != 0:
				if err := sealWays(); err != nil {
					return err
				}
				relStage.Cache(pb, pg.Relations)
			}
			// Changesets are out of scope (spec.md Non-goals).
		}
		return nil
	}

	if err := schedule.Run(ctx, opts.workers(), opts.queueSize(), produce, decode, consume); err != nil {
		return decodePassResult{}, err
	}
	if err := sealWays(); err != nil { // covers inputs with no way or relation groups at all
		return decodePassResult{}, err
	}
	return result, nil
}

// writeArchive writes every resource named in spec.md §3/§6, registering
// each with the @explicit_reference annotations its schema declares.
func writeArchive(ar *archive.Archive, header recordpack.Header, in *strtable.Interner,
	tags, tagsIndex, nodes, ways, nodesIndex, relations, memberIndex *recordpack.Vector,
	memberData []byte, nodeKeptIDs, wayKeptIDs, relKeptIDs *recordpack.Vector) error {

	headerBuf := header.Encode()
	if err := ar.WriteResource(archive.Descriptor{Name: "header", Schema: schemaHeader}, 1, headerBuf); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "stringtable", Schema: schemaStringtable}, uint64(in.Len()), in.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "tags", Schema: schemaTag, References: []string{"stringtable"}}, uint64(tags.Len()), tags.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "tags_index", Schema: schemaTagIndex, References: []string{"tags"}}, uint64(tagsIndex.Len()), tagsIndex.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "nodes", Schema: schemaNode, References: []string{"tags_index"}}, uint64(nodes.Len()), nodes.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "nodes_index", Schema: schemaNodeIndex, References: []string{"nodes"}}, uint64(nodesIndex.Len()), nodesIndex.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "ways", Schema: schemaWay, References: []string{"tags_index", "nodes_index"}}, uint64(ways.Len()), ways.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "relations", Schema: schemaRelation, References: []string{"tags_index"}}, uint64(relations.Len()), relations.Bytes()); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "relation_members", Schema: schemaRelationMembers, References: []string{"nodes", "ways", "relations", "stringtable"}}, uint64(len(memberData)), memberData); err != nil {
		return err
	}
	if err := ar.WriteResource(archive.Descriptor{Name: "relation_members_index", Schema: schemaRelationMembersIndex, References: []string{"relation_members"}}, uint64(memberIndex.Len()), memberIndex.Bytes()); err != nil {
		return err
	}

	if nodeKeptIDs != nil {
		if err := ar.WriteResource(archive.Descriptor{Name: "ids/nodes", Schema: schemaIdIndex, References: []string{"nodes"}}, uint64(nodeKeptIDs.Len()), nodeKeptIDs.Bytes()); err != nil {
			return err
		}
	}
	if wayKeptIDs != nil {
		if err := ar.WriteResource(archive.Descriptor{Name: "ids/ways", Schema: schemaIdIndex, References: []string{"ways"}}, uint64(wayKeptIDs.Len()), wayKeptIDs.Bytes()); err != nil {
			return err
		}
	}
	if relKeptIDs != nil {
		if err := ar.WriteResource(archive.Descriptor{Name: "ids/relations", Schema: schemaIdIndex, References: []string{"relations"}}, uint64(relKeptIDs.Len()), relKeptIDs.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
