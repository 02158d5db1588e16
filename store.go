package alist

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/minio/blake2b-simd"
)

// Persist is the interface for loading and storing serialized list
// nodes.  The given string identity corresponds to the content,
// which is immutable (never modified once stored).
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(ctx context.Context, name string, data []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(ctx context.Context, name string) ([]byte, error)
}

// Root identifies a saved version of a list whose nodes are
// accessible in a persistent store.  A nil Link is an empty list.
type Root struct {
	Link *string
	Size uint64
}

// RemoteConfig controls how nodes are persisted and loaded.
type RemoteConfig[K, V any] struct {
	// StoreImmutablePartsWith is used to store and load serialized nodes.
	StoreImmutablePartsWith Persist

	// Marshal function for key and value payloads, defaults to JSON.
	Marshal func(interface{}) ([]byte, error)

	// Unmarshal function for key and value payloads, defaults to JSON.
	Unmarshal func([]byte, interface{}) error

	// Format selects the node envelope encoding, defaults to JSONV1.
	// JSONV1 embeds payloads verbatim and so requires a marshaler
	// that produces JSON; use BinaryV1 with any other marshaler.
	Format NodeFormat

	// NodeCache caches decoded nodes and store-side hashes, and may
	// be shared across any number of lists.
	NodeCache NodeCache

	// KeyEqual is installed as the equality predicate of loaded
	// lists.  Required by Load.
	KeyEqual func(K, K) bool
}

var (
	defaultMarshal   = json.Marshal
	defaultUnmarshal = json.Unmarshal
)

// jsonNode is the stored form of a node in the JSONV1 format.
type jsonNode struct {
	Key   json.RawMessage
	Value json.RawMessage
	Link  string `json:",omitempty"`
}

// NodeFormat selects the envelope encoding for stored nodes.
type NodeFormat int

const (
	// JSONV1 stores each node as a JSON envelope holding the raw
	// key and value payloads and the link to the next node.
	JSONV1 NodeFormat = iota
	// BinaryV1 stores each node as uvarint length-prefixed key,
	// value, and link fields.
	BinaryV1
)

func (f NodeFormat) encodeNode(key, value []byte, link string) ([]byte, error) {
	switch f {
	case JSONV1:
		return json.Marshal(jsonNode{key, value, link})
	case BinaryV1:
		return marshalBinaryNode(key, value, link), nil
	}
	return nil, fmt.Errorf("unknown node format %d", f)
}

func (f NodeFormat) decodeNode(data []byte) (key, value []byte, link string, err error) {
	switch f {
	case JSONV1:
		var n jsonNode
		if err = json.Unmarshal(data, &n); err != nil {
			return nil, nil, "", err
		}
		return n.Key, n.Value, n.Link, nil
	case BinaryV1:
		return unmarshalBinaryNode(data)
	}
	return nil, nil, "", fmt.Errorf("unknown node format %d", f)
}

// Save writes the list's nodes to the configured store and returns a
// Root identifying the version.  Node names are the base64 of the
// blake2b-256 hash of the node's encoding, and each node's encoding
// embeds the name of its successor, so a suffix shared by several
// versions is stored exactly once and lists with equal contents get
// equal root links.
func Save[K, V any](ctx context.Context, l List[K, V], config RemoteConfig[K, V]) (*Root, error) {
	if config.StoreImmutablePartsWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	marshal := config.Marshal
	if marshal == nil {
		marshal = defaultMarshal
	}
	nodes := make([]*node[K, V], 0, l.size)
	for n := l.root; n != nil; n = n.next {
		nodes = append(nodes, n)
	}
	link := ""
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		keyBytes, err := marshal(n.entry.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key: %w", err)
		}
		valueBytes, err := marshal(n.entry.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		encoded, err := config.Format.encodeNode(keyBytes, valueBytes, link)
		if err != nil {
			return nil, fmt.Errorf("encode node: %w", err)
		}
		hashBytes := blake2b.Sum256(encoded)
		hash := base64.RawURLEncoding.EncodeToString(hashBytes[:])
		if config.NodeCache == nil || !config.NodeCache.Contains(hash) {
			if err = config.StoreImmutablePartsWith.Store(ctx, hash, encoded); err != nil {
				return nil, fmt.Errorf("persist store: %w", err)
			}
			if config.NodeCache != nil {
				config.NodeCache.Add(hash, n)
			}
		}
		link = hash
	}
	root := Root{Size: uint64(l.size)}
	if link != "" {
		root.Link = &link
	}
	return &root, nil
}

// Load reads the version identified by the given Root back from the
// store.  When a shared NodeCache holds a node of the chain, the
// remainder of the chain is reattached from memory, so versions
// loaded through one cache share suffix nodes the same way versions
// derived in memory do.
func Load[K, V any](ctx context.Context, r *Root, config RemoteConfig[K, V]) (List[K, V], error) {
	var zero List[K, V]
	if config.StoreImmutablePartsWith == nil {
		return zero, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	if config.KeyEqual == nil {
		return zero, fmt.Errorf("RemoteConfig.KeyEqual is required to load")
	}
	unmarshal := config.Unmarshal
	if unmarshal == nil {
		unmarshal = defaultUnmarshal
	}
	link := ""
	if r.Link != nil {
		link = *r.Link
	}
	var head, tail *node[K, V]
	var loaded []struct {
		name string
		node *node[K, V]
	}
	size := 0
	for link != "" {
		if config.NodeCache != nil {
			if cached, ok := config.NodeCache.Get(link); ok {
				if n, ok := cached.(*node[K, V]); ok {
					if tail == nil {
						head = n
					} else {
						tail.next = n
					}
					for ; n != nil; n = n.next {
						size++
					}
					link = ""
					continue
				}
			}
		}
		encoded, err := config.StoreImmutablePartsWith.Load(ctx, link)
		if err != nil {
			return zero, fmt.Errorf("persist load %s: %w", link, err)
		}
		keyBytes, valueBytes, nextLink, err := config.Format.decodeNode(encoded)
		if err != nil {
			return zero, fmt.Errorf("decode node %s: %w", link, err)
		}
		var key K
		if err = unmarshal(keyBytes, &key); err != nil {
			return zero, fmt.Errorf("unmarshal key in %s: %w", link, err)
		}
		var value V
		if err = unmarshal(valueBytes, &value); err != nil {
			return zero, fmt.Errorf("unmarshal value in %s: %w", link, err)
		}
		n := &node[K, V]{entry: Entry[K, V]{key, value}}
		if tail == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
		size++
		loaded = append(loaded, struct {
			name string
			node *node[K, V]
		}{link, n})
		link = nextLink
	}
	if uint64(size) != r.Size {
		return zero, fmt.Errorf("loaded %d entries but root says %d", size, r.Size)
	}
	// Cache only once the whole chain is linked, so a failed load
	// can't leave truncated suffixes behind.
	if config.NodeCache != nil {
		for _, e := range loaded {
			config.NodeCache.Add(e.name, e.node)
		}
	}
	return List[K, V]{root: head, keyEqual: config.KeyEqual, size: size}, nil
}
