// +build gofuzz

package bftree

import "bytes"

// Fuzz drives a sequence of put/get/del operations decoded from data and
// cross-checks every Get against a reference map, panicking on the first
// mismatch. Run with github.com/dvyukov/go-fuzz.
func Fuzz(data []byte) int {
	tree, err := New(Options{Compare: bytes.Compare})
	if err != nil {
		panic(err)
	}
	defer tree.Free()

	ref := map[string][]byte{}

	for len(data) >= 2 {
		op := data[0] % 3
		n := int(data[1])
		data = data[2:]
		if n > len(data) {
			n = len(data)
		}
		key := data[:n]
		data = data[n:]

		switch op {
		case 0:
			if len(data) == 0 {
				continue
			}
			vn := int(data[0])
			data = data[1:]
			if vn > len(data) {
				vn = len(data)
			}
			value := append([]byte(nil), data[:vn]...)
			data = data[vn:]

			tree.Put(append([]byte(nil), key...), value)
			ref[string(key)] = value

		case 1:
			got, ok := tree.Get(key)
			want, wantOK := ref[string(key)]
			if ok != wantOK || (ok && !bytes.Equal(got, want)) {
				panic("get mismatch")
			}

		case 2:
			tree.Del(append([]byte(nil), key...))
			delete(ref, string(key))
		}
	}

	return 1
}
