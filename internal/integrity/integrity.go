// Package integrity computes a cheap checksum over the keys reachable
// from a node. internal/node uses it to back the tree's public Checksum,
// which tests use to compare trees built in different orders.
package integrity

import "github.com/cespare/xxhash"

// Walker yields every key reachable from a node in traversal order: a
// container's payloads first, then (if present) its child's keys, before
// moving to the next container. Callers in internal/node supply this
// over their own Container/T types without integrity importing node,
// which would otherwise cycle.
type Walker func(yield func(key []byte))

// Checksum combines a hash of every key produced by walk into a single
// uint64, order-independent: a container's buffered payloads can
// straddle its child's key range (a split only ever migrates a prefix
// of a container's tail), so the same key set can legitimately be
// visited in different relative orders depending on how the tree was
// built up. Per-key hashes are summed rather than fed into one
// streaming digest, so two trees holding the same keys always agree
// regardless of traversal order or insertion history.
func Checksum(walk Walker) uint64 {
	var acc uint64
	walk(func(key []byte) {
		acc += xxhash.Checksum64(key)
	})
	return acc
}
