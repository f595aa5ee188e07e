package compiler

import "runtime"

// DefaultCoordScale resolves spec.md §9 Open Question (ii): the Data Model
// table declares lat/lon as 32-bit fields, but the invariants text's
// "coord_scale = 10^9 is the convention" cannot fit a ±180° range into an
// i32 (max ~2.147e9 representable units). The native PBF nanodegree value
// (granularity * delta, default granularity 100) is divided down to 1e7
// precision instead, which is what actually fits the declared i32 width
// for the full longitude/latitude range and is the value chosen here; see
// DESIGN.md for the full writeup.
const DefaultCoordScale = 10_000_000

// DefaultQueueSize mirrors missinglink/gosmparse's Decoder.QueueSize
// default (64): "A larger QueueSize will consume more memory, but may
// speed up the parsing process."
const DefaultQueueSize = 64

// Options configures one Compile run. It is the module's entire
// configuration surface (spec.md §6); the CLI front end in cmd/osmflatc
// is responsible for turning flags into an Options value.
type Options struct {
	// Threads bounds the decode worker pool. Zero means
	// runtime.GOMAXPROCS(0), matching the teacher's `consumerCount :=
	// runtime.GOMAXPROCS(0)`.
	Threads int

	// QueueSize bounds how many decoded-but-not-yet-drained blocks may be
	// in flight at once (backpressure, spec.md §5). Zero means
	// DefaultQueueSize.
	QueueSize int

	// KeepIDs emits the optional ids/{nodes,ways,relations} sub-archive
	// carrying original 40-bit-truncated OSM IDs parallel to the main
	// vectors (spec.md §6).
	KeepIDs bool

	// CoordScale overrides DefaultCoordScale. Zero means DefaultCoordScale.
	CoordScale int32

	// Quiet suppresses progress logging. The CLI owns presentation; this
	// only toggles whether Compile emits its own log lines.
	Quiet bool
}

func (o Options) workers() int {
	if o.Threads > 0 {
		return o.Threads
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) queueSize() int {
	if o.QueueSize > 0 {
		return o.QueueSize
	}
	return DefaultQueueSize
}

func (o Options) coordScale() int32 {
	if o.CoordScale > 0 {
		return o.CoordScale
	}
	return DefaultCoordScale
}
