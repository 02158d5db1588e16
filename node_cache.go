package alist

import lru "github.com/hashicorp/golang-lru"

// NodeCache caches decoded list nodes by their content hash.  It is
// also used to avoid re-storing nodes, so care should be taken to
// switch or invalidate the NodeCache when the Persist is changed.
type NodeCache interface {
	// Add records a freshly persisted or freshly decoded node.
	Add(key, value interface{})
	// Contains indicates the node with the given hash has already been persisted.
	Contains(key interface{}) bool
	// Get retrieves the already-decoded node with the given hash, if cached.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewNodeCache creates a new LRU-based node cache of the given size.
// One cache can be shared by any number of lists; sharing one is
// what lets separately loaded versions share suffix nodes in memory.
func NewNodeCache(size int) NodeCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}
