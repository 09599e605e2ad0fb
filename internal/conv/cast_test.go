package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint64(t *testing.T) {
	got, err := IntToUint64(42)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), got)

	_, err = IntToUint64(-1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMulUint64(t *testing.T) {
	got, err := MulUint64(1<<32-1, 1<<32-1)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744065119617025), got)

	_, err = MulUint64(1<<32, 1<<32)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestProduct(t *testing.T) {
	p, err := Product(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p)

	p, err = Product([]uint64{3, 3, 11})
	require.NoError(t, err)
	assert.Equal(t, uint64(99), p)

	_, err = Product([]uint64{math.MaxUint64, 2})
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestISqrt(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{30, 5},
		{2000000, 1414},
		{1<<62 - 1, 1<<31 - 1},
		{math.MaxUint64, math.MaxUint32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ISqrt(tt.n), "ISqrt(%d)", tt.n)
	}
}
