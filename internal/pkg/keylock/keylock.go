// Package keylock provides a fixed pool of mutexes indexed by string key.
// It serializes read-modify-write sequences that span more than one document
// for the same logical pair, e.g. the two sides of a like relationship.
package keylock

import (
	"hash/fnv"
	"sync"
)

// KeyLock is a striped lock: keys are hashed onto a fixed set of mutexes.
// Distinct keys may share a stripe; the same key always maps to the same one.
type KeyLock struct {
	stripes []sync.Mutex
}

// New creates a KeyLock with the given number of stripes.
// A non-positive count falls back to a single stripe.
func New(stripes int) *KeyLock {
	if stripes <= 0 {
		stripes = 1
	}
	return &KeyLock{
		stripes: make([]sync.Mutex, stripes),
	}
}

// Lock acquires the stripe for key and returns the function releasing it.
func (l *KeyLock) Lock(key string) func() {
	mu := &l.stripes[l.index(key)]
	mu.Lock()
	return mu.Unlock
}

func (l *KeyLock) index(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % uint32(len(l.stripes))
}
