package recordpack

import (
	"fmt"

	"github.com/osmflat/flatc/internal/ferr"
)

// Strides (in bytes) for every entity in spec.md §3. Every field in this
// schema happens to land on a byte boundary (widths are 32, 40 or 64
// bits), so these strides are also each entity's fixed record size.
const (
	StrideTag            = 10 // key_idx:u40, value_idx:u40
	StrideNode           = 13 // lat:i32, lon:i32, tag_first_idx:u40
	StrideWay            = 10 // tag_first_idx:u40, ref_first_idx:u40
	StrideRelation       = 5  // tag_first_idx:u40
	StrideMember         = 10 // {node,way,relation}_idx:u40, role_idx:u40
	StrideIndexEntry     = 5  // value:u40 (NodeIndex, TagIndex, Id)
	StrideHeader         = 51
	StrideMultivectorTag = 1 // per-member variant discriminator byte
)

// InvalidIdx is the 40-bit "unresolved" sentinel (spec.md §3).
const InvalidIdx uint64 = (1 << 40) - 1

// Vector is an append-only buffer of fixed-stride records, the in-memory
// staging area for each archive resource before its bytes are handed to
// archive.Archive.WriteResource.
type Vector struct {
	stride int
	buf    []byte
}

// NewVector returns an empty Vector of the given per-record stride.
func NewVector(stride int) *Vector {
	return &Vector{stride: stride}
}

// maxVectorLen is the 2^40 record-count ceiling spec.md §7 fatally enforces
// (IndexOverflow): a 40-bit dense index can address at most 2^40-1 records
// before colliding with the INVALID_IDX sentinel.
const maxVectorLen = 1 << 40

// checkVectorLen reports the ferr.IndexOverflow fatal error for a vector
// about to hold nextLen records, if nextLen has reached maxVectorLen.
// Split out from Append so the boundary itself is testable without
// actually growing a vector to terabyte scale.
func checkVectorLen(nextLen int) error {
	if nextLen >= maxVectorLen {
		return ferr.New(ferr.IndexOverflow, -1, fmt.Errorf("vector would grow to %d records, exceeding the 2^40 limit", nextLen))
	}
	return nil
}

// Append copies rec (which must be exactly Vector's stride) onto the end.
// It fails with ferr.IndexOverflow if doing so would grow the vector to
// 2^40 records or more (spec.md §7).
func (v *Vector) Append(rec []byte) error {
	if len(rec) != v.stride {
		panic("recordpack: record length does not match vector stride")
	}
	if err := checkVectorLen(v.Len() + 1); err != nil {
		return err
	}
	v.buf = append(v.buf, rec...)
	return nil
}

// Len returns the number of records currently held.
func (v *Vector) Len() int { return len(v.buf) / v.stride }

// Bytes returns the raw packed payload.
func (v *Vector) Bytes() []byte { return v.buf }

// Tag is a single (key, value) string-table reference pair.
type Tag struct {
	KeyIdx   uint64
	ValueIdx uint64
}

func (t Tag) Encode() []byte {
	b := make([]byte, StrideTag)
	PutField(b, 0, 40, t.KeyIdx)
	PutField(b, 40, 40, t.ValueIdx)
	return b
}

func DecodeTag(b []byte) Tag {
	return Tag{KeyIdx: Field(b, 0, 40), ValueIdx: Field(b, 40, 40)}
}

// Node is one coordinate record plus the start of its tag range.
type Node struct {
	Lat, Lon    int32
	TagFirstIdx uint64
}

func (n Node) Encode() []byte {
	b := make([]byte, StrideNode)
	PutSignedField(b, 0, 32, int64(n.Lat))
	PutSignedField(b, 32, 32, int64(n.Lon))
	PutField(b, 64, 40, n.TagFirstIdx)
	return b
}

func DecodeNode(b []byte) Node {
	return Node{
		Lat:         int32(SignedField(b, 0, 32)),
		Lon:         int32(SignedField(b, 32, 32)),
		TagFirstIdx: Field(b, 64, 40),
	}
}

// Way carries only the two range starts; node references live in the
// global nodes_index vector (spec.md §3).
type Way struct {
	TagFirstIdx uint64
	RefFirstIdx uint64
}

func (w Way) Encode() []byte {
	b := make([]byte, StrideWay)
	PutField(b, 0, 40, w.TagFirstIdx)
	PutField(b, 40, 40, w.RefFirstIdx)
	return b
}

func DecodeWay(b []byte) Way {
	return Way{TagFirstIdx: Field(b, 0, 40), RefFirstIdx: Field(b, 40, 40)}
}

// Relation carries only its tag range start; members live in the
// relation_members multivector.
type Relation struct {
	TagFirstIdx uint64
}

func (r Relation) Encode() []byte {
	b := make([]byte, StrideRelation)
	PutField(b, 0, 40, r.TagFirstIdx)
	return b
}

func DecodeRelation(b []byte) Relation {
	return Relation{TagFirstIdx: Field(b, 0, 40)}
}

// Member is the shared binary shape of NodeMember/WayMember/RelationMember:
// a resolved target index plus a role string reference. Which of the three
// it is, is carried out-of-band by the multivector's variant tag byte
// (spec.md §4.5).
type Member struct {
	TargetIdx uint64
	RoleIdx   uint64
}

func (m Member) Encode() []byte {
	b := make([]byte, StrideMember)
	PutField(b, 0, 40, m.TargetIdx)
	PutField(b, 40, 40, m.RoleIdx)
	return b
}

func DecodeMember(b []byte) Member {
	return Member{TargetIdx: Field(b, 0, 40), RoleIdx: Field(b, 40, 40)}
}

// IndexEntry is the shape shared by NodeIndex, TagIndex and the optional
// Id sub-archive vectors: a single 40-bit value.
type IndexEntry struct {
	Value uint64
}

func (e IndexEntry) Encode() []byte {
	b := make([]byte, StrideIndexEntry)
	PutField(b, 0, 40, e.Value)
	return b
}

func DecodeIndexEntry(b []byte) IndexEntry {
	return IndexEntry{Value: Field(b, 0, 40)}
}

// Header is the single archive-level record (spec.md §3).
type Header struct {
	BBoxLeft, BBoxRight, BBoxTop, BBoxBottom int32
	CoordScale                               int32
	WritingProgramIdx, SourceIdx             uint64
	ReplicationTimestamp, ReplicationSeq     int64
	ReplicationBaseURLIdx                    uint64
}

func (h Header) Encode() []byte {
	b := make([]byte, StrideHeader)
	PutSignedField(b, 0, 32, int64(h.BBoxLeft))
	PutSignedField(b, 32, 32, int64(h.BBoxRight))
	PutSignedField(b, 64, 32, int64(h.BBoxTop))
	PutSignedField(b, 96, 32, int64(h.BBoxBottom))
	PutSignedField(b, 128, 32, int64(h.CoordScale))
	PutField(b, 160, 40, h.WritingProgramIdx)
	PutField(b, 200, 40, h.SourceIdx)
	PutSignedField(b, 240, 64, h.ReplicationTimestamp)
	PutSignedField(b, 304, 64, h.ReplicationSeq)
	PutField(b, 368, 40, h.ReplicationBaseURLIdx)
	return b
}

func DecodeHeader(b []byte) Header {
	return Header{
		BBoxLeft:              int32(SignedField(b, 0, 32)),
		BBoxRight:             int32(SignedField(b, 32, 32)),
		BBoxTop:               int32(SignedField(b, 64, 32)),
		BBoxBottom:            int32(SignedField(b, 96, 32)),
		CoordScale:            int32(SignedField(b, 128, 32)),
		WritingProgramIdx:     Field(b, 160, 40),
		SourceIdx:             Field(b, 200, 40),
		ReplicationTimestamp:  SignedField(b, 240, 64),
		ReplicationSeq:        SignedField(b, 304, 64),
		ReplicationBaseURLIdx: Field(b, 368, 40),
	}
}
