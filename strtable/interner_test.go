package strtable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternEmptyStringIsOffsetZero(t *testing.T) {
	in := New()
	require.Equal(t, byte(0), in.Bytes()[0])
	require.Equal(t, 1, in.Len())

	off, err := in.Intern(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), off)
	require.Equal(t, 1, in.Len(), "interning the empty string must not grow the table")
}

func TestInternDedup(t *testing.T) {
	in := New()
	a, err := in.Intern([]byte("highway"))
	require.NoError(t, err)
	b, err := in.Intern([]byte("highway"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := in.Intern([]byte("residential"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestInternConcurrentIdempotent(t *testing.T) {
	in := New()
	const n = 200
	offsets := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			off, err := in.Intern([]byte("concurrent-value"))
			require.NoError(t, err)
			offsets[i] = off
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		require.Equal(t, offsets[0], offsets[i])
	}
}

func TestInvalidIdxNeverEqualsRealOffset(t *testing.T) {
	in := New()
	off, err := in.Intern([]byte("x"))
	require.NoError(t, err)
	require.NotEqual(t, InvalidIdx, off)
}
