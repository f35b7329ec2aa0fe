package node

import "github.com/zeebo/bftree/internal/integrity"

// Checksum combines a hash of every payload key reachable from n
// (including tombstones) order-independently. Two trees holding the same
// payload keys produce the same checksum whatever their shape or
// insertion order; it is a cheap way to cross-check bulk equivalence
// tests without comparing whole structures.
func Checksum(n *T) uint64 {
	return integrity.Checksum(func(yield func(key []byte)) {
		walk(n, yield)
	})
}

func walk(n *T, yield func(key []byte)) {
	for _, c := range n.Containers {
		for p := c.First; p != nil; p = p.Next {
			yield(p.Key)
		}
		if c.Child != nil {
			walk(c.Child, yield)
		}
	}
}
