package node

import (
	"github.com/zeebo/bftree/internal/debug"
	"github.com/zeebo/bftree/internal/node/payload"
)

// splitContainer implements spec.md §4.4. It is only ever called on a
// childless container that has overflowed during a migration pass.
func splitContainer(p *Params, n *T, idx int) {
	c := n.Containers[idx]
	debug.Assert("split only targets a childless container", func() bool { return c.Child == nil })

	mid := c.Size/2 - 1
	debug.Assert("split target has enough payloads", func() bool { return mid >= 0 })

	walker := c.First
	for i := 0; i < mid; i++ {
		walker = walker.Next
	}

	sibling := &Container{First: walker.Next, Size: c.Size - (mid + 1)}
	walker.Next = nil
	c.Size = mid + 1

	n.insertContainerAt(idx+1, sibling)

	debug.Assert("sorted adjacency after container split", func() bool {
		return sortedAdjacency(c, p.Compare) && sortedAdjacency(sibling, p.Compare)
	})

	trySplitNode(p, n)
}

// pushToChild implements spec.md §4.5. c is the overflowing container,
// already known to have a child. Roughly half of its payloads (push_count
// = Size/2, counted against the original size regardless of how many end
// up dropped versus moved — see spec.md §9's open question on this) move
// into the child; c.First itself never moves.
func pushToChild(p *Params, c *Container) {
	pushCount := c.Size / 2
	dropTombstones := p.Counters.Del > p.Counters.Put

	lastIdx := 0

	for i := 0; i < pushCount && c.First.Next != nil; i++ {
		// unlink curr from c before inserting it, so a node split that the
		// insert triggers never finds it still listed in c
		curr := c.First.Next
		c.First.Next = curr.Next
		curr.Next = nil
		c.Size--

		if dropTombstones && curr.Kind == payload.Del {
			p.Counters.remove(curr.Kind)
			p.destroyKey(curr.Key)
		} else {
			if lastIdx >= len(c.Child.Containers) {
				lastIdx = 0
			}
			idx := c.Child.FindContainer(curr.Key, lastIdx, p.Compare)
			lastIdx = idx
			ContainerInsert(p, c.Child, idx, curr, true, false)
		}
	}
}

// trySplitNode implements spec.md §4.6. It is a no-op below the
// container-count threshold; otherwise it promotes the midpoint
// container up a level — allocating a new root if n is the root — and
// recurses on the parent, since the promotion may itself overflow it.
// Rather than threading a "new root" return value through every caller
// on the stack, a resulting new root is recorded on p.NewRoot for the
// tree facade to pick up once the whole put/del call unwinds.
func trySplitNode(p *Params, n *T) {
	if len(n.Containers) < p.ContainerThreshold {
		return
	}

	m := len(n.Containers) / 2
	promoted := n.Containers[m]

	sibling := &T{Containers: append([]*Container(nil), n.Containers[m+1:]...)}
	for _, c := range sibling.Containers {
		if c.Child != nil {
			c.Child.Parent = sibling
		}
	}
	n.Containers = n.Containers[:m:m]

	promoted.Child = sibling

	debug.Assert("node ordering holds after split", func() bool {
		return nodeOrdered(n, p.Compare) && nodeOrdered(sibling, p.Compare)
	})

	if n.Parent == nil {
		newRoot := &T{}
		newRoot.insertContainerAt(0, &Container{Child: n})
		newRoot.insertContainerAt(1, promoted)
		n.Parent = newRoot
		sibling.Parent = newRoot
		p.NewRoot = newRoot
		return
	}

	parent := n.Parent
	sibling.Parent = parent

	leftIdx := parent.FindContainer(promoted.firstKey(), 0, p.Compare)
	rightIdx := leftIdx + 1
	parent.insertContainerAt(rightIdx, promoted)

	orderContainerPayload(p, parent, leftIdx, rightIdx)

	trySplitNode(p, parent)
}

// predecessor returns the payload immediately before target in c's list,
// or nil if target is the head.
func predecessor(c *Container, target *payload.T) *payload.T {
	if c.First == target {
		return nil
	}
	prev := c.First
	for prev != nil && prev.Next != target {
		prev = prev.Next
	}
	return prev
}

// orderContainerPayload implements spec.md §4.6's order_container_payload.
// left and right are adjacent containers in parent; right was just
// inserted immediately to the right of left, and left may still hold a
// tail of payloads that belong in right's range.
func orderContainerPayload(p *Params, parent *T, leftIdx, rightIdx int) {
	left := parent.Containers[leftIdx]
	right := parent.Containers[rightIdx]

	sep, equal := payload.Locate(left.First, right.firstKey(), p.Compare)
	if equal {
		// sep already lived at this level and is strictly more recent
		// than whatever right's head carried up from below: fold it
		// into right's head and drop it from left. It was already
		// counted when first created, so isNew is false here too.
		replace(p, right.First, sep, false)
		pred := predecessor(left, sep)
		if pred == nil {
			left.First = sep.Next
		} else {
			pred.Next = sep.Next
		}
		left.Size--
		sep = pred
	}

	// left.First.Key <= right.firstKey() always holds here (right was
	// just inserted immediately after left in the parent), so sep is
	// nil only when the equal branch above consumed left's head: in
	// that case left has nothing left to relocate. Everything strictly
	// after sep moves into right.
	if sep == nil {
		debug.Assert("sorted adjacency after reconciling separators", func() bool {
			return sortedAdjacency(left, p.Compare) && sortedAdjacency(right, p.Compare)
		})
		return
	}

	run := sep.Next
	sep.Next = nil

	for curr := run; curr != nil; {
		next := curr.Next // snapshot before ContainerInsert re-links curr
		curr.Next = nil
		ContainerInsert(p, parent, rightIdx, curr, true, false)
		left.Size--
		curr = next
	}

	debug.Assert("sorted adjacency after reconciling separators", func() bool {
		return sortedAdjacency(left, p.Compare) && sortedAdjacency(right, p.Compare)
	})
}

func sortedAdjacency(c *Container, cmp payload.Compare) bool {
	for p := c.First; p != nil && p.Next != nil; p = p.Next {
		if cmp(p.Key, p.Next.Key) >= 0 {
			return false
		}
	}
	return true
}

func nodeOrdered(n *T, cmp payload.Compare) bool {
	for i := 0; i+1 < len(n.Containers); i++ {
		// containers[0] is the unbounded -inf sentinel (see
		// reachesLowerBound): it is ordered before containers[1] by
		// definition, whatever its own firstKey would say if it had one.
		if i == 0 {
			continue
		}
		if cmp(n.Containers[i].firstKey(), n.Containers[i+1].firstKey()) >= 0 {
			return false
		}
	}
	return true
}
