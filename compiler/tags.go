package compiler

import "github.com/osmflat/flatc/recordpack"

// appendTagsKV interns and appends a legacy-style (parallel keys[]/vals[]
// local string-table index) tag list onto the shared global tags and
// tags_index vectors, returning the tag_first_idx to record on the owning
// entity (spec.md §4.4 step 1 / §4.5 step 1).
//
// tags_index is a layer of indirection over tags (spec.md §3): today every
// newly interned tag is appended to tags exactly once and tags_index
// records its position 1:1, but keeping the indirection explicit (rather
// than collapsing tag_first_idx to index directly into tags) matches the
// archive's own schema and leaves room for a future tag-dedup pass without
// changing the wire shape.
func appendTagsKV(bs *blockStrings, keys, vals []uint32, tags, tagsIndex *recordpack.Vector) (uint64, error) {
	first := uint64(tagsIndex.Len())
	for i := range keys {
		keyIdx, err := bs.intern(keys[i])
		if err != nil {
			return 0, err
		}
		valIdx, err := bs.intern(vals[i])
		if err != nil {
			return 0, err
		}
		pos := uint64(tags.Len())
		if err := tags.Append(recordpack.Tag{KeyIdx: keyIdx, ValueIdx: valIdx}.Encode()); err != nil {
			return 0, err
		}
		if err := tagsIndex.Append(recordpack.IndexEntry{Value: pos}.Encode()); err != nil {
			return 0, err
		}
	}
	return first, nil
}

// appendTagsDense does the same as appendTagsKV but for DenseNodes'
// flattened `(k, v, k, v, ..., 0)` run encoding (spec.md §4.3 step 3),
// consuming entries from *cursor starting just past the previous node's
// terminating 0.
func appendTagsDense(bs *blockStrings, keysVals []int32, cursor *int, tags, tagsIndex *recordpack.Vector) (uint64, error) {
	first := uint64(tagsIndex.Len())
	for *cursor < len(keysVals) && keysVals[*cursor] != 0 {
		k := uint32(keysVals[*cursor])
		v := uint32(keysVals[*cursor+1])
		*cursor += 2

		keyIdx, err := bs.intern(k)
		if err != nil {
			return 0, err
		}
		valIdx, err := bs.intern(v)
		if err != nil {
			return 0, err
		}
		pos := uint64(tags.Len())
		if err := tags.Append(recordpack.Tag{KeyIdx: keyIdx, ValueIdx: valIdx}.Encode()); err != nil {
			return 0, err
		}
		if err := tagsIndex.Append(recordpack.IndexEntry{Value: pos}.Encode()); err != nil {
			return 0, err
		}
	}
	if *cursor < len(keysVals) {
		*cursor++ // skip the terminating 0
	}
	return first, nil
}
