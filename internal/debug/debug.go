// +build !release

// Package debug backs the tree's internal invariant checks (sorted
// adjacency within a container, ordering across a node's containers).
// This file is excluded by the release build tag and the package has no
// other file, so a build with -tags release does not compile.
package debug

import _ "unsafe"

//go:linkname throw runtime.throw
func throw(string)

// Assert aborts the program through runtime.throw with info if fn returns
// false; the failure cannot be recovered. It is meant to wrap a
// structural invariant of the tree that must never be violated by correct
// code; tripping it means a bug in the tree, not a caller error.
func Assert(info string, fn func() bool) {
	if !fn() {
		throw("assertion failed: " + info)
	}
}
