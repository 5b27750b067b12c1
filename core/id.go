package core

import "sync/atomic"

// ID is a process-unique entity token. IDs are never reused after an
// entity is destroyed; the zero value is never issued and marks "no entity".
type ID uint64

var idCounter atomic.Uint64

// NextID returns the next unique entity token
func NextID() ID {
	return ID(idCounter.Add(1))
}
