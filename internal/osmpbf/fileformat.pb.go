// Package osmpbf holds the wire types for the OSM PBF blob framing and
// primitive block schemas (fileformat.proto and osmformat.proto from the
// upstream OpenStreetMap PBF definitions). It exists so the rest of this
// module has something concrete to call proto.Unmarshal against; schema
// compilation itself is out of scope (see spec.md §1).
package osmpbf

import (
	"github.com/golang/protobuf/proto"
)

// Blob is the compressed (or raw) payload of one file block. Exactly one
// of the data fields is populated.
type Blob struct {
	Raw              []byte `protobuf:"bytes,1,opt,name=raw" json:"raw,omitempty"`
	RawSize          *int32 `protobuf:"varint,2,opt,name=raw_size,json=rawSize" json:"raw_size,omitempty"`
	ZlibData         []byte `protobuf:"bytes,3,opt,name=zlib_data,json=zlibData" json:"zlib_data,omitempty"`
	LzmaData         []byte `protobuf:"bytes,4,opt,name=lzma_data,json=lzmaData" json:"lzma_data,omitempty"`
	OBSOLETEBzip2Data []byte `protobuf:"bytes,5,opt,name=OBSOLETE_bzip2_data,json=OBSOLETEBzip2Data" json:"OBSOLETE_bzip2_data,omitempty"`
	Lz4Data          []byte `protobuf:"bytes,6,opt,name=lz4_data,json=lz4Data" json:"lz4_data,omitempty"`
	ZstdData         []byte `protobuf:"bytes,7,opt,name=zstd_data,json=zstdData" json:"zstd_data,omitempty"`

	XXX_unrecognized []byte `json:"-"`
}

func (m *Blob) Reset()         { *m = Blob{} }
func (m *Blob) String() string { return proto.CompactTextString(m) }
func (*Blob) ProtoMessage()    {}

func (m *Blob) GetRaw() []byte {
	if m != nil {
		return m.Raw
	}
	return nil
}

func (m *Blob) GetRawSize() int32 {
	if m != nil && m.RawSize != nil {
		return *m.RawSize
	}
	return 0
}

func (m *Blob) GetZlibData() []byte {
	if m != nil {
		return m.ZlibData
	}
	return nil
}

func (m *Blob) GetLzmaData() []byte {
	if m != nil {
		return m.LzmaData
	}
	return nil
}

func (m *Blob) GetOBSOLETEBzip2Data() []byte {
	if m != nil {
		return m.OBSOLETEBzip2Data
	}
	return nil
}

func (m *Blob) GetLz4Data() []byte {
	if m != nil {
		return m.Lz4Data
	}
	return nil
}

func (m *Blob) GetZstdData() []byte {
	if m != nil {
		return m.ZstdData
	}
	return nil
}

// BlobHeader precedes every Blob on the wire; Datasize is the exact byte
// length of the Blob message that follows it.
type BlobHeader struct {
	Type      *string `protobuf:"bytes,1,req,name=type" json:"type,omitempty"`
	Indexdata []byte  `protobuf:"bytes,2,opt,name=indexdata" json:"indexdata,omitempty"`
	Datasize  *int32  `protobuf:"varint,3,req,name=datasize" json:"datasize,omitempty"`

	XXX_unrecognized []byte `json:"-"`
}

func (m *BlobHeader) Reset()         { *m = BlobHeader{} }
func (m *BlobHeader) String() string { return proto.CompactTextString(m) }
func (*BlobHeader) ProtoMessage()    {}

func (m *BlobHeader) GetType() string {
	if m != nil && m.Type != nil {
		return *m.Type
	}
	return ""
}

func (m *BlobHeader) GetIndexdata() []byte {
	if m != nil {
		return m.Indexdata
	}
	return nil
}

func (m *BlobHeader) GetDatasize() int32 {
	if m != nil && m.Datasize != nil {
		return *m.Datasize
	}
	return 0
}
