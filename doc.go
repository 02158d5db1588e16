/*
Package alist provides an immutable, persistent association list: the
simplest possible representation of a finite map, as a singly-linked
sequence of key-value pairs.  It is a reference implementation and
building block meant to sit alongside richer structures (balanced
trees, Merkle Search Trees) that expose the same conceptual
interface: point lookup, unified insert/update/delete, set
difference, generalized union and intersection, and a right fold.

Key identity is not built in.  Every list carries a caller-supplied
equality predicate, so keys can be compared by whatever notion of
sameness the application needs, independent of ==.

# Immutability and sharing

Operations never mutate a published node.  Each returns a new list
value that shares unchanged suffixes with its inputs, so old versions
stay valid and are cheap to keep.  Lists are safe for any number of
concurrent readers; there is nothing to lock.

Lookup is linear and the merge operations are quadratic.  That is the
point: an association list trades speed for being small, obvious, and
easy to verify.  Use it for short sequences, in tests, or as the
executable model a fancier map is checked against.

# Persistence

Lists can be snapshotted to any blob store through the Persist
interface (see Save, Load, and the persist/ subpackages for
filesystem and S3 backends).  Nodes are stored content-addressed, so
suffixes shared between versions are stored once, and two lists with
equal contents produce equal root links.

# Duplicate keys

Inputs are expected to hold at most one pair per key equivalence
class.  This is not enforced: with duplicates present, Find and
Replace stop at the first match and later pairs are shadowed, and the
merge operations may carry duplicates through.  The behavior is
deterministic but surprising, and avoiding it is the caller's
responsibility.
*/
package alist
