package domain

import "errors"

// ErrNotFound is returned by stores when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")
