// Package report turns timings and factor maps into human-readable tables
// and exportable JSON documents.
//
// Exports can be compressed with zstd or lz4 and are written through a
// rate-limited writer so that large factor dumps do not saturate the disk
// while benchmarks are still running.
package report
