package compiler

import "github.com/osmflat/flatc/recordpack"

// mask40 truncates a 64-bit OSM ID into the archive's 40-bit Id field
// width for the optional ids/ sub-archive (spec.md §6). Every currently
// assigned OSM ID (nodes/ways/relations are all well under 2^40 as of this
// writing) fits without truncation; this mask exists so encoding never
// panics on an out-of-range value rather than to silently accept overflow.
const mask40 = (1 << 40) - 1

// recordKeptID appends id's low 40 bits to out if the ids/ sub-archive is
// enabled (out == nil otherwise, spec.md §6 --keep-ids).
func recordKeptID(out *recordpack.Vector, id int64) error {
	if out == nil {
		return nil
	}
	return out.Append(recordpack.IndexEntry{Value: uint64(id) & mask40}.Encode())
}
