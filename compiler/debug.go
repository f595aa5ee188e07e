package compiler

import (
	"os"
	"time"
)

// debugTimingEnabled mirrors the teacher's FeatureEnabled(flag string)
// env-gate pattern (gosmparse's feature.go INDEXING switch), repurposed as
// a single opt-in knob for stage timing rather than blob-offset indexing
// (which this module has no use for: the pipeline is a single streaming
// pass, never random-access replay).
func debugTimingEnabled() bool {
	return os.Getenv("OSMFLAT_DEBUG_TIMING") != ""
}

// stageTimer returns a func that, if OSMFLAT_DEBUG_TIMING is set, logs how
// long the calling stage took when invoked.
func stageTimer(logf func(string, ...any), stage string) func() {
	if !debugTimingEnabled() {
		return func() {}
	}
	start := time.Now()
	return func() {
		logf("%s: %s", stage, time.Since(start))
	}
}
