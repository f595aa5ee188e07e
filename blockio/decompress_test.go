package blockio

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"

	"github.com/osmflat/flatc/internal/osmpbf"
)

func TestDecompressRaw(t *testing.T) {
	blob := &osmpbf.Blob{Raw: []byte("hello world")}
	got, err := Decompress(blob, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("hello world"), got)
}

func TestDecompressZlib(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	size := int32(len(want))
	blob := &osmpbf.Blob{ZlibData: buf.Bytes(), RawSize: &size}
	got, err := Decompress(blob, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecompressZstd(t *testing.T) {
	// Scenario E6: a zstd-compressed block must decode to the same bytes an
	// otherwise-equivalent zlib block would.
	want := []byte("the quick brown fox jumps over the lazy dog")
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := enc.EncodeAll(want, nil)
	require.NoError(t, enc.Close())

	size := int32(len(want))
	blob := &osmpbf.Blob{ZstdData: compressed, RawSize: &size}
	got, err := Decompress(blob, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecompressLz4(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	size := int32(len(want))
	blob := &osmpbf.Blob{Lz4Data: buf.Bytes(), RawSize: &size}
	got, err := Decompress(blob, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecompressLzma(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	size := int32(len(want))
	blob := &osmpbf.Blob{LzmaData: buf.Bytes(), RawSize: &size}
	got, err := Decompress(blob, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDecompressObsoleteBzip2Unsupported(t *testing.T) {
	blob := &osmpbf.Blob{OBSOLETEBzip2Data: []byte{0x01}}
	_, err := Decompress(blob, 42)
	require.Error(t, err)
}

func TestDecompressEmptyBlobCorrupt(t *testing.T) {
	blob := &osmpbf.Blob{}
	_, err := Decompress(blob, 0)
	require.Error(t, err)
}
