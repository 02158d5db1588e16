package alist

import "fmt"

// DiffIter invokes the given callback for every entry of cur that
// differs from old: added==true for keys not in old, removed==true
// for keys no longer in cur, and added==removed==false for keys
// whose value changed under equalValue.  The iteration stops if the
// callback returns keepGoing==false or an error.  cur's equality
// predicate governs key comparisons.
func DiffIter[K, V any](
	cur, old List[K, V],
	equalValue func(V, V) bool,
	f func(added, removed bool, key K, addedValue, removedValue V) (bool, error),
) error {
	var zero V
	for n := cur.root; n != nil; n = n.next {
		oldValue, ok := old.lookup(cur.keyEqual, n.entry.Key)
		var keepGoing bool
		var err error
		if !ok {
			keepGoing, err = f(true, false, n.entry.Key, n.entry.Value, zero)
		} else if !equalValue(n.entry.Value, oldValue) {
			keepGoing, err = f(false, false, n.entry.Key, n.entry.Value, oldValue)
		} else {
			continue
		}
		if err != nil {
			return fmt.Errorf("callback: %w", err)
		}
		if !keepGoing {
			return nil
		}
	}
	for n := old.root; n != nil; n = n.next {
		if _, ok := cur.lookup(cur.keyEqual, n.entry.Key); ok {
			continue
		}
		keepGoing, err := f(false, true, n.entry.Key, zero, n.entry.Value)
		if err != nil {
			return fmt.Errorf("callback: %w", err)
		}
		if !keepGoing {
			return nil
		}
	}
	return nil
}
