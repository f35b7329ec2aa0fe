// Package payload implements the singly-linked, key-ordered payload lists
// that live inside a container: a payload is a Put(key, val) or Del(key)
// record, and the list it belongs to is kept strictly increasing by key.
package payload

// Kind distinguishes a live value from a tombstone.
type Kind uint8

const (
	// Put records that key maps to Value.
	Put Kind = iota
	// Del is a tombstone: it shadows any Put for the same key below it.
	Del
)

// Compare orders two keys the way sort.Search would: negative if a < b,
// zero if equal, positive if a > b. Supplied by the host at tree
// construction; must be a total order and must not mutate the tree.
type Compare func(a, b []byte) int

// T is a single Put or Del record owning its key (and, for Put, its
// value), linked to the next payload in the same container.
type T struct {
	Key   []byte
	Value []byte
	Kind  Kind
	Next  *T
}

// New constructs a detached Put payload.
func New(key, value []byte) *T {
	return &T{Key: key, Value: value, Kind: Put}
}

// NewTombstone constructs a detached Del payload.
func NewTombstone(key []byte) *T {
	return &T{Key: key, Kind: Del}
}

// Locate walks the payload list starting at head looking for key. If a
// payload with an equal key exists, it is returned with found set to
// true. Otherwise the last payload whose key compares less than key is
// returned (nil if key is smaller than every key in the list) with found
// set to false.
func Locate(head *T, key []byte, cmp Compare) (node *T, found bool) {
	var prev *T
	for p := head; p != nil; p = p.Next {
		switch c := cmp(key, p.Key); {
		case c == 0:
			return p, true
		case c < 0:
			return prev, false
		default:
			prev = p
		}
	}
	return prev, false
}
