package bftree

import "github.com/zeebo/bftree/internal/node/payload"

// Default tunable thresholds, used whenever an Options field is left at
// its zero value.
const (
	DefaultContainer          = 8
	DefaultContainerThreshold = 16
	DefaultPayloadThreshold   = 32
)

// Options bundles the host-supplied collaborators and tunables for a
// Tree. Compare is mandatory; everything else has a usable default.
type Options struct {
	// Compare orders two keys the way sort.Search would. Must be a
	// total order and must not mutate the tree or retain its slices.
	Compare func(a, b []byte) int

	// DestroyKey and DestroyValue are invoked exactly once per owned
	// key or value slot when it is freed or replaced. Either may be
	// nil, in which case the tree performs no teardown for that slot.
	DestroyKey   func([]byte)
	DestroyValue func([]byte)

	// Container is the initial container-array capacity of the tree's
	// first root node. Nodes created later by splits start from an empty
	// array and grow through append.
	Container int
	// ContainerThreshold is the container count at which a node must
	// split.
	ContainerThreshold int
	// PayloadThreshold is the payload count beyond which a container
	// must push down to its child or split.
	PayloadThreshold int
}

func (o Options) withDefaults() Options {
	if o.Container <= 0 {
		o.Container = DefaultContainer
	}
	if o.ContainerThreshold <= 0 {
		o.ContainerThreshold = DefaultContainerThreshold
	}
	if o.PayloadThreshold <= 0 {
		o.PayloadThreshold = DefaultPayloadThreshold
	}
	return o
}

func (o Options) compare() payload.Compare {
	return o.Compare
}
