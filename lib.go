package alist

import (
	"fmt"
	"strings"
)

// Entry represents a key and value in a list.
type Entry[K, V any] struct {
	Key   K
	Value V
}

type node[K, V any] struct {
	entry Entry[K, V]
	next  *node[K, V]
}

// List is an immutable association list.  The zero value is not
// usable; construct lists with New, NewWithEqual, or FromEntries.
//
// A List value is a handle: copying it is cheap and never copies
// nodes.  Derived lists share unchanged suffix nodes with the lists
// they were derived from.
type List[K, V any] struct {
	root     *node[K, V]
	keyEqual func(K, K) bool
	size     int
}

// New returns an empty list whose keys are compared with ==.
func New[K comparable, V any]() List[K, V] {
	return NewWithEqual[K, V](EqualComparable[K]())
}

// NewWithEqual returns an empty list that compares keys with the
// given predicate.  The predicate is expected to be total,
// deterministic, and side-effect-free.
func NewWithEqual[K, V any](keyEqual func(K, K) bool) List[K, V] {
	if keyEqual == nil {
		panic("alist: nil keyEqual")
	}
	return List[K, V]{keyEqual: keyEqual}
}

// FromEntries returns a list holding the given entries, in order,
// with keys compared by ==.  A later entry with a duplicate key
// replaces the earlier one in place.
func FromEntries[K comparable, V any](entries ...Entry[K, V]) List[K, V] {
	l := New[K, V]()
	for _, e := range entries {
		l, _, _ = l.Set(e.Key, e.Value)
	}
	return l
}

// lookup scans for the first entry whose key matches under eq.
// The probe key is always the first argument to eq.
func (l List[K, V]) lookup(eq func(K, K) bool, key K) (V, bool) {
	for n := l.root; n != nil; n = n.next {
		if eq(key, n.entry.Key) {
			return n.entry.Value, true
		}
	}
	var zero V
	return zero, false
}

// Find returns the value of the first entry whose key matches the
// given key under the list's equality predicate.  If inputs honor
// the key-uniqueness expectation there is at most one such entry;
// with duplicates, later entries are shadowed.
func (l List[K, V]) Find(key K) (V, bool) {
	return l.lookup(l.keyEqual, key)
}

// Replace is the unified insert/update/delete operation.  It returns
// a new list and the value previously bound to key, if any.
//
//	match  present  effect
//	yes    true     value replaced, position unchanged
//	yes    false    entry removed
//	no     true     new entry appended at the tail
//	no     false    list returned unchanged
//
// The scanned prefix is freshly allocated; everything after the
// matched entry is shared with the input.
func (l List[K, V]) Replace(key K, value V, present bool) (List[K, V], V, bool) {
	var spine []*node[K, V]
	for n := l.root; n != nil; n = n.next {
		if l.keyEqual(key, n.entry.Key) {
			old := n.entry.Value
			size := l.size
			var suffix *node[K, V]
			if present {
				suffix = &node[K, V]{Entry[K, V]{n.entry.Key, value}, n.next}
			} else {
				suffix = n.next
				size--
			}
			return List[K, V]{relink(spine, suffix), l.keyEqual, size}, old, true
		}
		spine = append(spine, n)
	}
	var zero V
	if !present {
		return l, zero, false
	}
	suffix := &node[K, V]{entry: Entry[K, V]{key, value}}
	return List[K, V]{relink(spine, suffix), l.keyEqual, l.size + 1}, zero, false
}

// relink allocates fresh copies of the scanned prefix, whose tail
// pointers change, in front of the shared suffix.
func relink[K, V any](spine []*node[K, V], suffix *node[K, V]) *node[K, V] {
	for i := len(spine) - 1; i >= 0; i-- {
		suffix = &node[K, V]{spine[i].entry, suffix}
	}
	return suffix
}

// Set binds key to value, replacing in place or appending at the
// tail, and returns the new list and any previous binding.
func (l List[K, V]) Set(key K, value V) (List[K, V], V, bool) {
	return l.Replace(key, value, true)
}

// Delete removes the entry for key, if present, and returns the new
// list and the removed value.  Deleting an absent key is a no-op.
func (l List[K, V]) Delete(key K) (List[K, V], V, bool) {
	var zero V
	return l.Replace(key, zero, false)
}

// Len returns the number of entries in the list.
func (l List[K, V]) Len() int {
	return l.size
}

// Iter invokes the given callback for every entry, in traversal
// order, stopping at the first error.
func (l List[K, V]) Iter(f func(key K, value V) error) error {
	for n := l.root; n != nil; n = n.next {
		if err := f(n.entry.Key, n.entry.Value); err != nil {
			return err
		}
	}
	return nil
}

// ToSlice returns the list's entries in traversal order.
func (l List[K, V]) ToSlice() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, l.size)
	for n := l.root; n != nil; n = n.next {
		entries = append(entries, n.entry)
	}
	return entries
}

// Keys returns the list's keys in traversal order.
func (l List[K, V]) Keys() []K {
	keys := make([]K, 0, l.size)
	for n := l.root; n != nil; n = n.next {
		keys = append(keys, n.entry.Key)
	}
	return keys
}

func (l List[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for n := l.root; n != nil; n = n.next {
		if n != l.root {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%v %v)", n.entry.Key, n.entry.Value)
	}
	b.WriteByte(']')
	return b.String()
}

// builder accumulates entries into a list under construction.  The
// nodes it links are unpublished until list() is called, so wiring
// them forward is not visible mutation.
type builder[K, V any] struct {
	head, tail *node[K, V]
	size       int
}

func (b *builder[K, V]) add(e Entry[K, V]) {
	n := &node[K, V]{entry: e}
	if b.tail == nil {
		b.head = n
	} else {
		b.tail.next = n
	}
	b.tail = n
	b.size++
}

func (b *builder[K, V]) list(keyEqual func(K, K) bool) List[K, V] {
	return List[K, V]{root: b.head, keyEqual: keyEqual, size: b.size}
}
