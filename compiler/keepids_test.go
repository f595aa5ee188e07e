package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmflat/flatc/recordpack"
)

func TestRecordKeptIDNilSinkIsNoop(t *testing.T) {
	require.NotPanics(t, func() { require.NoError(t, recordKeptID(nil, 42)) })
}

func TestRecordKeptIDMasksTo40Bits(t *testing.T) {
	out := recordpack.NewVector(recordpack.StrideIndexEntry)
	require.NoError(t, recordKeptID(out, 1<<45|7))
	require.Equal(t, 1, out.Len())
	got := recordpack.DecodeIndexEntry(out.Bytes())
	require.EqualValues(t, (uint64(1<<45|7))&mask40, got.Value)
}

func TestRecordKeptIDOrdinaryID(t *testing.T) {
	out := recordpack.NewVector(recordpack.StrideIndexEntry)
	require.NoError(t, recordKeptID(out, 123456789))
	got := recordpack.DecodeIndexEntry(out.Bytes())
	require.EqualValues(t, 123456789, got.Value)
}
