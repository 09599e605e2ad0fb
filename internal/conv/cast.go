package conv

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrOverflow is returned when a value does not fit the destination type.
var ErrOverflow = errors.New("integer overflow")

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d cannot be converted to uint64 (negative)", ErrOverflow, v)
	}
	return uint64(v), nil
}

// MulUint64 returns a*b, or ErrOverflow if the product exceeds 64 bits.
func MulUint64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d * %d exceeds uint64", ErrOverflow, a, b)
	}
	return lo, nil
}

// Product multiplies all values, failing on the first overflow.
// The empty product is 1.
func Product(values []uint64) (uint64, error) {
	p := uint64(1)
	for _, v := range values {
		var err error
		if p, err = MulUint64(p, v); err != nil {
			return 0, err
		}
	}
	return p, nil
}

// ISqrt returns floor(sqrt(n)).
func ISqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	r := uint64(math.Sqrt(float64(n)))
	// float64 rounding can be off by one in either direction near 2^64.
	for r > 0 && (r > math.MaxUint32 || r*r > n) {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
