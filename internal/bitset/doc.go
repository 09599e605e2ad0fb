// Package bitset provides the packed odd-only bitset used by the sieves.
//
// Layout:
//   - One byte (unit) per 16 consecutive integers, holding the 8 odd members
//   - unit = num / 16, bit = (num % 16) / 2
//   - Even integers are never represented; 2 is an implicit prime
//
// A cleared bit means "not yet proven composite", a set bit means "proven
// composite". Bits are never cleared once set, so merging two sets is a
// plain unit-wise OR.
//
// OddSet has no internal synchronization. Callers either own a set
// exclusively (one set per worker) or share it read-only after all writers
// are done.
package bitset
