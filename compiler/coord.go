package compiler

import "math"

// nanodegreeScale is the precision OSM PBF primitive blocks store raw
// coordinates at: granularity defaults to 100 (one raw unit is 100
// nanodegrees), so offset + granularity * raw is lat/lon * 1e9.
const nanodegreeScale = 1e9

// scaleCoord converts a PBF-native nanodegree-scaled coordinate into the
// archive's coord_scale-scaled i32 (spec.md §3: "stored lat/lon are scaled
// integers round(degree_value · coord_scale)"). See DefaultCoordScale's
// doc comment for why coordScale is 1e7 and not the 1e9 the invariants
// text names.
func scaleCoord(nanodegree int64, coordScale int32) int32 {
	return int32(math.Round(float64(nanodegree) * float64(coordScale) / nanodegreeScale))
}
