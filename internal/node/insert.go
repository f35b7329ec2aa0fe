package node

import "github.com/zeebo/bftree/internal/node/payload"

// ContainerInsert implements spec.md §4.3's container_insert: locate
// newP inside node.Containers[idx], replace in place on a key collision
// or splice it into the list otherwise, and — only while migrating is
// true — check for overflow and trigger a push-down or a split.
//
// isNew distinguishes a payload's very first insertion (the put/del
// entry point, where newP has never been counted) from a relocation
// performed by a migration pass (push-down or separator reordering,
// where newP was already credited to the counters at its creation and
// must not be credited again merely because it moved to a deeper
// container). This resolves an ambiguity spec.md §4.1/§4.3 leaves
// implicit: see DESIGN.md for the reasoning.
func ContainerInsert(p *Params, n *T, idx int, newP *payload.T, migrating, isNew bool) {
	if idx >= len(n.Containers) {
		n.insertContainerAt(0, &Container{})
		idx = 0
	}
	c := n.Containers[idx]

	hit, found := payload.Locate(c.First, newP.Key, p.Compare)
	if found {
		replace(p, hit, newP, isNew)
		return
	}

	if hit == nil {
		newP.Next = c.First
		c.First = newP
	} else {
		newP.Next = hit.Next
		hit.Next = newP
	}
	c.Size++

	if isNew {
		p.Counters.add(newP.Kind)
	}

	if migrating && c.Size > p.PayloadThreshold {
		if c.Child != nil {
			pushToChild(p, c)
		} else {
			splitContainer(p, n, idx)
		}
	}
}

// replace implements spec.md §4.1's replace rule: existing absorbs newP's
// value and kind, newP is destroyed, and existing's old kind is uncounted.
// isNew mirrors ContainerInsert's parameter: a genuinely new top-level
// put/del credits newP's kind in its new home (isNew=true), while a
// payload arriving via relocation was already credited when it was first
// created and must not be credited a second time merely for landing on
// an occupied slot (isNew=false).
func replace(p *Params, existing, newP *payload.T, isNew bool) {
	p.Counters.remove(existing.Kind)
	if isNew {
		p.Counters.add(newP.Kind)
	}

	old := existing.Value
	existing.Value = newP.Value
	existing.Kind = newP.Kind

	p.destroyValue(old)
	p.destroyKey(newP.Key)
}
