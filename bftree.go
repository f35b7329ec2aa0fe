// Package bftree implements an in-memory, ordered key-value index built
// as a buffered tree: inserts and deletes are absorbed into the first
// container that may hold them, and a container that grows past the
// payload threshold pushes part of its payloads down to its child or, if
// it has none, splits. It is not safe for concurrent use.
package bftree

import (
	"github.com/zeebo/bftree/internal/mon"
	"github.com/zeebo/bftree/internal/node"
	"github.com/zeebo/bftree/internal/node/payload"
)

// T is a buffered tree. The zero value is not usable; construct one with
// New.
type T struct {
	opts   Options
	root   *node.T
	height int

	counters node.Counters

	putTimer mon.Thunk
	getTimer mon.Thunk
	delTimer mon.Thunk
}

// New constructs an empty tree using the given options. Compare is
// mandatory; every other field has a usable default.
func New(opts Options) (*T, error) {
	if opts.Compare == nil {
		return nil, Error.New("Compare is required")
	}
	opts = opts.withDefaults()

	return &T{
		opts:   opts,
		root:   node.New(opts.Container),
		height: 1,
	}, nil
}

func (t *T) params() *node.Params {
	return &node.Params{
		Compare:            t.opts.compare(),
		DestroyKey:         t.opts.DestroyKey,
		DestroyValue:       t.opts.DestroyValue,
		ContainerThreshold: t.opts.ContainerThreshold,
		PayloadThreshold:   t.opts.PayloadThreshold,
		Counters:           &t.counters,
	}
}

// absorbNewRoot checks whether the just-finished mutation caused a split
// to propagate all the way to the root and, if so, swaps it in and bumps
// the height. It must be called after every put/del.
func (t *T) absorbNewRoot(p *node.Params) {
	if p.NewRoot == nil {
		return
	}
	t.root = p.NewRoot
	t.height++
}

// Put inserts or replaces the value for key. The tree takes ownership of
// both key and value; a replaced value is freed through the host value
// destructor.
func (t *T) Put(key, value []byte) {
	timer := t.putTimer.Start()
	defer timer.Stop()

	p := t.params()
	idx := t.root.FindContainer(key, 0, p.Compare)
	node.ContainerInsert(p, t.root, idx, payload.New(key, value), true, true)
	t.absorbNewRoot(p)
}

// Del inserts a tombstone for key. The tree takes ownership of key. It is
// always safe to call, even if key is not present.
func (t *T) Del(key []byte) {
	timer := t.delTimer.Start()
	defer timer.Stop()

	p := t.params()
	idx := t.root.FindContainer(key, 0, p.Compare)
	node.ContainerInsert(p, t.root, idx, payload.NewTombstone(key), true, true)
	t.absorbNewRoot(p)
}

// Get returns the value associated with key, or nil and false if key is
// absent or tombstoned. The returned slice is borrowed: the caller must
// not free it, and it is only valid until the next mutating call.
func (t *T) Get(key []byte) ([]byte, bool) {
	timer := t.getTimer.Start()
	defer timer.Stop()

	return node.Get(t.root, key, t.opts.compare())
}

// Free recursively tears down every node, container, and payload in the
// tree, invoking the host destructors exactly once per owned key and
// value. The tree must not be used afterward.
func (t *T) Free() {
	node.Free(t.params(), t.root)
	t.root = nil
}

// PutCount returns the number of live Put payloads reachable from the
// root.
func (t *T) PutCount() int { return t.counters.Put }

// DelCount returns the number of live Del (tombstone) payloads reachable
// from the root.
func (t *T) DelCount() int { return t.counters.Del }

// Height returns the number of node levels from the root to any leaf. It
// only ever increases across the life of the tree.
func (t *T) Height() int { return t.height }

// Checksum hashes every payload key reachable from the tree (including
// tombstones) and sums the hashes, so the result does not depend on
// traversal order. A key held by two payloads at once (a tombstone above
// a put that has not migrated yet) is counted twice, so two trees agree
// when they hold the same payload keys, for example after the same
// distinct-key puts issued in any order.
func (t *T) Checksum() uint64 { return node.Checksum(t.root) }

// Monitor returns the latency histograms for Put, Get, and Del, keyed by
// operation name. Intended for diagnostics; the returned map is a fresh
// copy-by-reference snapshot of the live histograms.
func (t *T) Monitor() map[string]*mon.Histogram {
	return map[string]*mon.Histogram{
		"put": t.putTimer.Histogram(),
		"get": t.getTimer.Histogram(),
		"del": t.delTimer.Histogram(),
	}
}
