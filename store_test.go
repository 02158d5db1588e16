package alist

import (
	"bytes"
	"context"
	"encoding/gob"
	"testing"

	"github.com/jrhy/alist/persist/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Persist and records the names stored.
type countingStore struct {
	Persist
	storeCalls int
	names      map[string]struct{}
}

func newCountingStore() *countingStore {
	return &countingStore{Persist: NewInMemoryStore(), names: map[string]struct{}{}}
}

func (c *countingStore) Store(ctx context.Context, name string, data []byte) error {
	c.storeCalls++
	c.names[name] = struct{}{}
	return c.Persist.Store(ctx, name, data)
}

func testConfig(p Persist) RemoteConfig[int, string] {
	return RemoteConfig[int, string]{
		StoreImmutablePartsWith: p,
		KeyEqual:                EqualComparable[int](),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	l := FromEntries(e(1, "a"), e(2, "b"), e(3, "c"))
	store := NewInMemoryStore()

	root, err := Save(ctx, l, testConfig(store))
	require.NoError(t, err)
	require.NotNil(t, root.Link)
	require.Equal(t, uint64(3), root.Size)

	loaded, err := Load(ctx, root, testConfig(store))
	require.NoError(t, err)
	require.Equal(t, l.ToSlice(), loaded.ToSlice())

	// the loaded list got the configured equality predicate
	v, ok := loaded.Find(2)
	require.True(t, ok)
	require.Equal(t, "b", v)
}

func TestSaveLoadEmpty(t *testing.T) {
	t.Parallel()
	store := NewInMemoryStore()
	root, err := Save(ctx, New[int, string](), testConfig(store))
	require.NoError(t, err)
	require.Nil(t, root.Link)
	require.Equal(t, uint64(0), root.Size)

	loaded, err := Load(ctx, root, testConfig(store))
	require.NoError(t, err)
	require.Equal(t, 0, loaded.Len())
}

func TestContentHash(t *testing.T) {
	t.Parallel()
	store := NewInMemoryStore()

	l1 := FromEntries(e(1, "one"))
	root1, err := Save(ctx, l1, testConfig(store))
	require.NoError(t, err)

	l2 := FromEntries(e(2, "two"))
	root2, err := Save(ctx, l2, testConfig(store))
	require.NoError(t, err)
	require.NotEqual(t, *root1.Link, *root2.Link)

	l2b := FromEntries(e(2, "two"))
	root2b, err := Save(ctx, l2b, testConfig(store))
	require.NoError(t, err)
	require.Equal(t, *root2.Link, *root2b.Link)

	l2c := FromEntries(e(2, "TWO"))
	root2c, err := Save(ctx, l2c, testConfig(store))
	require.NoError(t, err)
	require.NotEqual(t, *root2.Link, *root2c.Link)
}

func TestSharedSuffixStoredOnce(t *testing.T) {
	t.Parallel()
	store := newCountingStore()
	l1 := FromEntries(e(1, "a"), e(2, "b"), e(3, "c"))
	l2, _, _ := l1.Set(1, "A")

	_, err := Save(ctx, l1, testConfig(store))
	require.NoError(t, err)
	_, err = Save(ctx, l2, testConfig(store))
	require.NoError(t, err)

	// only the head differs between the versions; the (2,b)->(3,c)
	// suffix hashes identically
	assert.Equal(t, 4, len(store.names))
}

func TestNodeCacheAvoidsRestore(t *testing.T) {
	t.Parallel()
	store := newCountingStore()
	cache := NewNodeCache(100)
	config := testConfig(store)
	config.NodeCache = cache

	l1 := FromEntries(e(1, "a"), e(2, "b"), e(3, "c"))
	l2, _, _ := l1.Set(1, "A")

	_, err := Save(ctx, l1, config)
	require.NoError(t, err)
	require.Equal(t, 3, store.storeCalls)
	_, err = Save(ctx, l2, config)
	require.NoError(t, err)
	assert.Equal(t, 4, store.storeCalls)
}

func TestLoadSharesSuffixThroughCache(t *testing.T) {
	t.Parallel()
	store := NewInMemoryStore()
	cache := NewNodeCache(100)
	config := testConfig(store)
	config.NodeCache = cache

	l1 := FromEntries(e(1, "a"), e(2, "b"), e(3, "c"))
	l2, _, _ := l1.Set(1, "A")
	root1, err := Save(ctx, l1, config)
	require.NoError(t, err)
	root2, err := Save(ctx, l2, config)
	require.NoError(t, err)

	loaded1, err := Load(ctx, root1, config)
	require.NoError(t, err)
	loaded2, err := Load(ctx, root2, config)
	require.NoError(t, err)

	require.Equal(t, l1.ToSlice(), loaded1.ToSlice())
	require.Equal(t, l2.ToSlice(), loaded2.ToSlice())
	// suffix nodes come back as the same objects
	assert.True(t, loaded1.root.next == loaded2.root.next)
}

func TestBinaryFormat(t *testing.T) {
	t.Parallel()
	store := NewInMemoryStore()
	config := testConfig(store)
	config.Format = BinaryV1

	l := FromEntries(e(1, "a"), e(2, "b"))
	root, err := Save(ctx, l, config)
	require.NoError(t, err)
	loaded, err := Load(ctx, root, config)
	require.NoError(t, err)
	require.Equal(t, l.ToSlice(), loaded.ToSlice())

	jsonConfig := testConfig(store)
	jsonRoot, err := Save(ctx, l, jsonConfig)
	require.NoError(t, err)
	assert.NotEqual(t, *root.Link, *jsonRoot.Link)
}

func gobMarshal(i interface{}) ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(i)
	return buf.Bytes(), err
}

func gobUnmarshal(data []byte, i interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(i)
}

func TestBinaryFormatWithGobPayloads(t *testing.T) {
	t.Parallel()
	store := NewInMemoryStore()
	config := testConfig(store)
	config.Format = BinaryV1
	config.Marshal = gobMarshal
	config.Unmarshal = gobUnmarshal

	l := FromEntries(e(1, "a"), e(2, "b"), e(3, "c"))
	root, err := Save(ctx, l, config)
	require.NoError(t, err)
	loaded, err := Load(ctx, root, config)
	require.NoError(t, err)
	require.Equal(t, l.ToSlice(), loaded.ToSlice())
}

func TestLoadSizeMismatch(t *testing.T) {
	t.Parallel()
	store := NewInMemoryStore()
	l := FromEntries(e(1, "a"), e(2, "b"))
	root, err := Save(ctx, l, testConfig(store))
	require.NoError(t, err)
	root.Size = 5
	_, err = Load(ctx, root, testConfig(store))
	require.Error(t, err)
}

func TestSaveLoadFileBackend(t *testing.T) {
	t.Parallel()
	p := file.NewPersistForPath(t.TempDir())
	config := testConfig(p)

	l := FromEntries(e(1, "a"), e(2, "b"))
	root, err := Save(ctx, l, config)
	require.NoError(t, err)
	loaded, err := Load(ctx, root, config)
	require.NoError(t, err)
	require.Equal(t, l.ToSlice(), loaded.ToSlice())
}
