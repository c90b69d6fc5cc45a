// Package resolve matches candidate identifiers extracted from a scene
// against a reference set using approximate string similarity.
//
// The per-candidate scan is a pure function over a read-only reference slice,
// so it can be unit-tested serially and fanned out across partitions
// unchanged. A resolution pass is a full barrier: Resolve returns only after
// every partition has finished, and the caller sees results in candidate
// input order. An unmatched candidate is data, never an error.
package resolve
