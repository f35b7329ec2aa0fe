// Package node implements the buffered tree's structural layer: the
// Container (an ordered, deduplicated payload list plus an optional
// child subtree) and the Node (a growable, ordered array of containers
// sharing a parent). Container and Node live in one package because they
// are mutually recursive — a Container owns an optional child *Node and
// a Node owns a slice of *Container — which Go cannot express as two
// packages without an import cycle.
package node

import (
	"github.com/zeebo/errs"
	"github.com/zeebo/bftree/internal/debug"
	"github.com/zeebo/bftree/internal/node/payload"
)

// Error is the class that contains all errors from this package.
var Error = errs.Class("node")

// Container is an ordered, deduplicated run of payloads plus an optional
// child subtree covering the key range between this container's first
// key (inclusive) and the next container's first key (exclusive, or
// +infinity if there is no next container).
type Container struct {
	First *payload.T
	Size  int
	Child *T
}

// firstKey panics if the container has never received a payload; callers
// must only ask for it once a container is no longer transiently empty,
// and never for a node's own containers[0] (see reachesLowerBound).
func (c *Container) firstKey() []byte {
	debug.Assert("container has a first payload", func() bool { return c.First != nil })
	return c.First.Key
}

// T is a node: a growable, ordered array of containers that share a
// parent. The zero value is an empty, parentless node ready to receive
// its first container.
type T struct {
	Parent     *T
	Containers []*Container
}

// New returns an empty node with room for capacity containers before its
// backing array needs to grow. A capacity of zero lets append's own
// geometric growth pick the first allocation.
func New(capacity int) *T {
	var containers []*Container
	if capacity > 0 {
		containers = make([]*Container, 0, capacity)
	}
	return &T{Containers: containers}
}

// Counters tracks live payload counts by kind across the whole tree.
type Counters struct {
	Put int
	Del int
}

func (c *Counters) add(k payload.Kind) {
	if k == payload.Put {
		c.Put++
	} else {
		c.Del++
	}
}

func (c *Counters) remove(k payload.Kind) {
	if k == payload.Put {
		c.Put--
	} else {
		c.Del--
	}
}

// Params bundles the host comparator, the host destructors, the tunable
// thresholds, and the running counters, threaded through every
// container/node operation. NewRoot is set by trySplitNode when a split
// propagates all the way to the root; the tree facade checks it after
// every put/del instead of every internal call returning a new root.
type Params struct {
	Compare      payload.Compare
	DestroyKey   func([]byte)
	DestroyValue func([]byte)

	ContainerThreshold int
	PayloadThreshold   int

	Counters *Counters
	NewRoot  *T
}

func (p *Params) destroyKey(k []byte) {
	if p.DestroyKey != nil {
		p.DestroyKey(k)
	}
}

func (p *Params) destroyValue(v []byte) {
	if p.DestroyValue != nil && v != nil {
		p.DestroyValue(v)
	}
}

// reachesLowerBound reports whether key is at or above the lower bound
// owned by containers[i]. Index 0 is a sentinel: it owns unbounded lows
// (-inf) regardless of whatever payloads it happens to hold, because a
// root split demotes the whole original node under a fresh, payload-less
// leftmost container (see trySplitNode) whose firstKey can never be
// dereferenced. Every other index's lower bound is its own first key.
func reachesLowerBound(n *T, i int, key []byte, cmp payload.Compare) bool {
	if i == 0 {
		return true
	}
	return cmp(key, n.Containers[i].firstKey()) >= 0
}

// FindContainer returns the index of the container responsible for key:
// the largest index i >= start such that key >= containers[i]'s first
// key. If key is smaller than every container from start onward, it
// returns start (in particular, 0 when start is 0: the leftmost
// container always owns unbounded lows). The node must have at least
// one container.
func (n *T) FindContainer(key []byte, start int, cmp payload.Compare) int {
	idx := start
	for i := start; i < len(n.Containers); i++ {
		if reachesLowerBound(n, i, key, cmp) {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// insertContainerAt inserts c at index i of the node's container array,
// shifting everything at or after i one slot to the right. This is the
// one convention this implementation uses for container placement
// (spec.md §9 flags the reference source as ambiguous here): every
// caller names the exact destination index, never a "container_idx as
// anchor" special case.
func (n *T) insertContainerAt(i int, c *Container) {
	n.Containers = append(n.Containers, nil)
	copy(n.Containers[i+1:], n.Containers[i:])
	n.Containers[i] = c
}

// Get implements the read path of spec.md §4.7: descend from root,
// consulting each level's overlay before falling through to its child.
func Get(root *T, key []byte, cmp payload.Compare) ([]byte, bool) {
	n := root
	for {
		if len(n.Containers) == 0 {
			return nil, false
		}
		idx := n.FindContainer(key, 0, cmp)
		c := n.Containers[idx]

		hit, found := payload.Locate(c.First, key, cmp)
		if found {
			if hit.Kind == payload.Del {
				return nil, false
			}
			return hit.Value, true
		}
		if c.Child == nil {
			return nil, false
		}
		n = c.Child
	}
}

// Free recurses post-order over the tree rooted at n, destroying every
// payload's key and value through the host destructors, per spec.md §4.8.
func Free(p *Params, n *T) {
	for _, c := range n.Containers {
		if c.Child != nil {
			Free(p, c.Child)
		}
		for cur := c.First; cur != nil; {
			next := cur.Next
			p.destroyKey(cur.Key)
			p.destroyValue(cur.Value)
			cur = next
		}
	}
}
