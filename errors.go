package bftree

import "github.com/zeebo/errs"

// Error is the class that contains all errors from this package.
var Error = errs.Class("bftree")
