package compiler

import (
	"fmt"

	"github.com/osmflat/flatc/internal/ferr"
	"github.com/osmflat/flatc/internal/osmpbf"
	"github.com/osmflat/flatc/recordpack"
	"github.com/osmflat/flatc/strtable"
)

// supportedFeatures implements spec.md §7's UnsupportedFeature check: any
// required_features token outside this set is fatal.
var supportedFeatures = map[string]bool{
	"OsmSchema-V0.6": true,
	"DenseNodes":     true,
}

func checkRequiredFeatures(hb *osmpbf.HeaderBlock) error {
	for _, f := range hb.GetRequiredFeatures() {
		if !supportedFeatures[f] {
			return ferr.New(ferr.UnsupportedFeature, -1, fmt.Errorf("required feature %q is not supported", f))
		}
	}
	return nil
}

// buildHeader implements spec.md §4's HeaderIngest: it turns the single
// OSMHeader block into the archive Header record, interning the
// writingprogram/source/replication-base-url strings along the way.
func buildHeader(hb *osmpbf.HeaderBlock, in *strtable.Interner, coordScale int32) (recordpack.Header, error) {
	var left, right, top, bottom int32
	if bbox := hb.GetBbox(); bbox != nil {
		left = scaleCoord(bbox.GetLeft(), coordScale)
		right = scaleCoord(bbox.GetRight(), coordScale)
		top = scaleCoord(bbox.GetTop(), coordScale)
		bottom = scaleCoord(bbox.GetBottom(), coordScale)
	}

	progIdx, err := in.Intern([]byte(hb.GetWritingprogram()))
	if err != nil {
		return recordpack.Header{}, err
	}
	sourceIdx, err := in.Intern([]byte(hb.GetSource()))
	if err != nil {
		return recordpack.Header{}, err
	}
	baseURLIdx, err := in.Intern([]byte(hb.GetOsmosisReplicationBaseUrl()))
	if err != nil {
		return recordpack.Header{}, err
	}

	return recordpack.Header{
		BBoxLeft:              left,
		BBoxRight:             right,
		BBoxTop:               top,
		BBoxBottom:            bottom,
		CoordScale:            coordScale,
		WritingProgramIdx:     progIdx,
		SourceIdx:             sourceIdx,
		ReplicationTimestamp:  hb.GetOsmosisReplicationTimestamp(),
		ReplicationSeq:        hb.GetOsmosisReplicationSequenceNumber(),
		ReplicationBaseURLIdx: baseURLIdx,
	}, nil
}
