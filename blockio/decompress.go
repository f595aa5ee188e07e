package blockio

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz/lzma"

	"github.com/osmflat/flatc/internal/ferr"
	"github.com/osmflat/flatc/internal/osmpbf"
)

// zstdDecoderPool mirrors arloliu/mebo's compress/zstd_pure.go: the
// klauspost/compress/zstd decoder is explicitly designed to be reused
// across calls once warmed up.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("blockio: failed to build pooled zstd decoder: %v", err))
		}
		return d
	},
}

// lz4ReaderPool mirrors arloliu/mebo's compress/lz4.go pooling of the
// stateful pierrec/lz4 type, here for the frame Reader rather than the
// block Compressor since OSM PBF lz4_data is an LZ4 frame, not a bare
// block.
var lz4ReaderPool = sync.Pool{
	New: func() any { return lz4.NewReader(nil) },
}

// Decompress returns the uncompressed PrimitiveBlock/HeaderBlock payload of
// blob, dispatching on whichever *_data field is populated (spec.md §4.1).
// offset is the blob's file offset, used only to annotate fatal errors.
func Decompress(blob *osmpbf.Blob, offset int64) ([]byte, error) {
	rawSize := int(blob.GetRawSize())

	switch {
	case blob.Raw != nil:
		return blob.Raw, nil

	case blob.ZlibData != nil:
		r, err := zlib.NewReader(bytes.NewReader(blob.ZlibData))
		if err != nil {
			return nil, ferr.New(ferr.CorruptBlob, offset, err)
		}
		defer r.Close()
		return readExact(r, rawSize, offset)

	case blob.Lz4Data != nil:
		zr, _ := lz4ReaderPool.Get().(*lz4.Reader)
		defer lz4ReaderPool.Put(zr)
		zr.Reset(bytes.NewReader(blob.Lz4Data))
		return readExact(zr, rawSize, offset)

	case blob.ZstdData != nil:
		zr, _ := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(zr)
		if err := zr.Reset(bytes.NewReader(blob.ZstdData)); err != nil {
			return nil, ferr.New(ferr.CorruptBlob, offset, err)
		}
		return readExact(zr, rawSize, offset)

	case blob.LzmaData != nil:
		r, err := lzma.NewReader(bytes.NewReader(blob.LzmaData))
		if err != nil {
			return nil, ferr.New(ferr.CorruptBlob, offset, err)
		}
		return readExact(r, rawSize, offset)

	case blob.OBSOLETEBzip2Data != nil:
		return nil, ferr.New(ferr.UnsupportedFeature, offset, fmt.Errorf("bzip2 blob compression is obsolete and unsupported"))

	default:
		return nil, ferr.New(ferr.CorruptBlob, offset, fmt.Errorf("blob has no populated data field"))
	}
}

// readExact fully drains r into a buffer sized by the blob's raw_size hint,
// verifying the decompressed length matches (the OSM PBF spec guarantees
// raw_size is exact), matching the strictness of missinglink/gosmparse's
// blobData and brechtbm/osmpbf's getData.
func readExact(r io.Reader, rawSize int, offset int64) ([]byte, error) {
	buf := make([]byte, rawSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, ferr.New(ferr.CorruptBlob, offset, err)
	}
	if n != rawSize {
		return nil, ferr.New(ferr.CorruptBlob, offset, fmt.Errorf("expected %d decompressed bytes, got %d", rawSize, n))
	}
	// A well-formed blob produces no trailing bytes beyond raw_size; confirm
	// the stream is actually exhausted rather than silently truncating it.
	var extra [1]byte
	if n2, _ := r.Read(extra[:]); n2 != 0 {
		return nil, ferr.New(ferr.CorruptBlob, offset, fmt.Errorf("decompressed data exceeds raw_size %d", rawSize))
	}
	return buf, nil
}
