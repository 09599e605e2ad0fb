// Package conv provides overflow-checked integer helpers.
//
// Sieve bounds and factor targets are uint64 values, while slice indices and
// allocation sizes are int. Every conversion or product that can leave the
// 64-bit range goes through this package so that callers get ErrOverflow
// instead of silently wrapped arithmetic.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices below a validated bound), use direct type casts instead.
package conv
