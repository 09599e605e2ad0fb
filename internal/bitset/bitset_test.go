package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOddSet(t *testing.T) {
	s := New(100)

	assert.Equal(t, uint64(100), s.Bound())
	assert.Equal(t, 7, s.Units())

	assert.True(t, s.IsCandidate(9))
	s.Mark(9)
	assert.False(t, s.IsCandidate(9))

	// Idempotent.
	s.Mark(9)
	assert.False(t, s.IsCandidate(9))
	assert.Equal(t, 1, s.Marked())

	// Neighbouring odd numbers share a unit but not a bit.
	assert.True(t, s.IsCandidate(7))
	assert.True(t, s.IsCandidate(11))
}

func TestOddSet_Packing(t *testing.T) {
	s := New(64)

	// 17 is the first odd member of unit 1.
	s.Mark(17)
	assert.Equal(t, byte(0x01), s.units[1])

	// 31 is the last odd member of unit 1.
	s.Mark(31)
	assert.Equal(t, byte(0x81), s.units[1])
	assert.Equal(t, byte(0), s.units[0])
}

func TestOddSet_MarkOddMultiples(t *testing.T) {
	s := New(50)
	s.MarkOddMultiples(3, 50)

	for _, c := range []uint64{9, 15, 21, 27, 33, 39, 45} {
		assert.False(t, s.IsCandidate(c), "%d should be marked", c)
	}
	for _, c := range []uint64{3, 5, 7, 11, 13, 25, 35, 49} {
		assert.True(t, s.IsCandidate(c), "%d should be a candidate", c)
	}
}

func TestOddSet_MarkOddMultiplesHighClamped(t *testing.T) {
	s := New(30)
	s.MarkOddMultiples(5, 1000)

	assert.False(t, s.IsCandidate(25))
	assert.Equal(t, 1, s.Marked())
}

func TestOddSet_NextCandidate(t *testing.T) {
	s := New(30)
	s.Mark(1)
	s.MarkOddMultiples(3, 30)
	s.MarkOddMultiples(5, 30)

	next, ok := s.NextCandidate(1, 30)
	require.True(t, ok)
	assert.Equal(t, uint64(3), next)

	next, ok = s.NextCandidate(7, 30)
	require.True(t, ok)
	assert.Equal(t, uint64(11), next)

	_, ok = s.NextCandidate(29, 30)
	assert.False(t, ok)

	_, ok = s.NextCandidate(3, 4)
	assert.False(t, ok)
}

func TestOddSet_Or(t *testing.T) {
	a := New(100)
	b := New(100)
	a.Mark(9)
	b.Mark(15)
	b.Mark(9)

	require.NoError(t, a.Or(b))
	assert.False(t, a.IsCandidate(9))
	assert.False(t, a.IsCandidate(15))
	assert.Equal(t, 2, a.Marked())

	// Source is untouched.
	assert.Equal(t, 2, b.Marked())

	err := a.Or(New(200))
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestOddSet_OrCommutes(t *testing.T) {
	x, y := New(1000), New(1000)
	x.MarkOddMultiples(3, 1000)
	y.MarkOddMultiples(7, 1000)

	xy, yx := New(1000), New(1000)
	require.NoError(t, xy.Or(x))
	require.NoError(t, xy.Or(y))
	require.NoError(t, yx.Or(y))
	require.NoError(t, yx.Or(x))

	assert.True(t, xy.Equal(yx))
}

func TestOddSet_Equal(t *testing.T) {
	a, b := New(40), New(40)
	assert.True(t, a.Equal(b))

	a.Mark(21)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(New(41)))
}

func TestOddSet_CountCandidates(t *testing.T) {
	assert.Equal(t, 0, New(0).CountCandidates())
	assert.Equal(t, 0, New(1).CountCandidates())
	assert.Equal(t, 1, New(2).CountCandidates())

	s := New(30)
	s.Mark(1)
	s.MarkOddMultiples(3, 30)
	s.MarkOddMultiples(5, 30)
	assert.Equal(t, 10, s.CountCandidates())
}

func BenchmarkOddSet_MarkOddMultiples(b *testing.B) {
	s := New(1 << 24)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.MarkOddMultiples(3, s.Bound())
	}
}
