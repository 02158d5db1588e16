package alist

// The merge operations take two lists whose value types may differ.
// The first list's equality predicate governs all key comparisons,
// and is carried into the result.  Both inputs are expected to hold
// at most one entry per key equivalence class; with duplicates the
// output may hold duplicates too.

// Diff returns the entries of a whose key has no match in b.  The
// values of b are irrelevant and discarded.  Output preserves a's
// relative order.  Runs in O(len(a)*len(b)).
func Diff[K, V, W any](a List[K, V], b List[K, W]) List[K, V] {
	var out builder[K, V]
	for n := a.root; n != nil; n = n.next {
		if _, ok := b.lookup(a.keyEqual, n.entry.Key); !ok {
			out.add(n.entry)
		}
	}
	return out.list(a.keyEqual)
}

// Disj is a generalized union: the result holds one entry per key
// present in a or b.  For a key in both, combine(v, true, w, true)
// is invoked; for a key only in a, combine(v, true, zero, false);
// for a key only in b, combine(zero, false, w, true).  Combine is
// never invoked with both ok arguments false.
//
// Entries for keys of a come first, in a's order, followed by the
// keys only in b, in b's order.  That ordering is an implementation
// detail, not a contract.  Runs in O((len(a)+len(b))*max(len(a),len(b))).
func Disj[K, V, W, X any](
	a List[K, V], b List[K, W],
	combine func(left V, leftOK bool, right W, rightOK bool) X,
) List[K, X] {
	var out builder[K, X]
	for n := a.root; n != nil; n = n.next {
		right, rightOK := b.lookup(a.keyEqual, n.entry.Key)
		out.add(Entry[K, X]{n.entry.Key, combine(n.entry.Value, true, right, rightOK)})
	}
	var zero V
	for n := b.root; n != nil; n = n.next {
		if _, ok := a.lookup(a.keyEqual, n.entry.Key); ok {
			// emitted during the traversal of a
			continue
		}
		out.add(Entry[K, X]{n.entry.Key, combine(zero, false, n.entry.Value, true)})
	}
	return out.list(a.keyEqual)
}

// Join is a generalized intersection: the result holds one entry per
// key present in both a and b, with value combine(v, w).  Keys
// present in only one input are dropped.  Output follows a's order.
// Runs in O(len(a)*len(b)).
func Join[K, V, W, X any](
	a List[K, V], b List[K, W],
	combine func(V, W) X,
) List[K, X] {
	var out builder[K, X]
	for n := a.root; n != nil; n = n.next {
		if right, ok := b.lookup(a.keyEqual, n.entry.Key); ok {
			out.add(Entry[K, X]{n.entry.Key, combine(n.entry.Value, right)})
		}
	}
	return out.list(a.keyEqual)
}

// Fold computes the right-associative fold
// combine(k1, v1, combine(k2, v2, ... combine(kn, vn, seed))) with
// entries taken in traversal order, returning seed for an empty
// list.
func Fold[K, V, X any](l List[K, V], seed X, combine func(key K, value V, acc X) X) X {
	entries := make([]Entry[K, V], 0, l.size)
	for n := l.root; n != nil; n = n.next {
		entries = append(entries, n.entry)
	}
	acc := seed
	for i := len(entries) - 1; i >= 0; i-- {
		acc = combine(entries[i].Key, entries[i].Value, acc)
	}
	return acc
}
