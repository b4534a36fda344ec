package projection

import "errors"

// ErrNotFound means a display coordinate has no backing row, e.g. one
// inside a synthesized empty section.
var ErrNotFound = errors.New("no row at display path")

// ErrPersistence wraps a failed save during reorder. The in-memory state
// keeps the applied mutations.
var ErrPersistence = errors.New("persistence failure")
