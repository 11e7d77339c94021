package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertAndRetrieve(t *testing.T) {
	cache := NewCache[string](10)
	require.NoError(t, cache.Insert("A", "valueA", 1))
	require.NoError(t, cache.Insert("B", "valueB", 2))

	value, ok := cache.Retrieve("A")
	require.True(t, ok)
	assert.Equal(t, "valueA", value)

	_, ok = cache.Retrieve("missing")
	assert.False(t, ok)

	assert.Equal(t, 3, cache.GetWeight())
	assert.Equal(t, 10, cache.GetBudget())
}

func TestCache_InsertDuplicateRejected(t *testing.T) {
	cache := NewCache[string](2)
	require.NoError(t, cache.Insert("dupe", "value", 1))
	assert.Equal(t, ErrKeyExists, cache.Insert("dupe", "value", 1))
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCache[int](3)
	cache.SetVerbose(true)

	require.NoError(t, cache.Insert("A", 1, 1))
	require.NoError(t, cache.Insert("B", 2, 1))
	require.NoError(t, cache.Insert("C", 3, 1))

	// Touch A so B becomes the eviction candidate
	_, ok := cache.Retrieve("A")
	require.True(t, ok)

	require.NoError(t, cache.Insert("D", 4, 1))
	assert.Equal(t, 3, cache.GetWeight())

	_, ok = cache.Retrieve("B")
	assert.False(t, ok)
	for _, key := range []string{"A", "C", "D"} {
		_, ok := cache.Retrieve(key)
		assert.True(t, ok, key)
	}

	// A heavy entry evicts everything else
	require.NoError(t, cache.Insert("E", 5, 3))
	assert.Equal(t, 3, cache.GetWeight())
	value, ok := cache.Retrieve("E")
	require.True(t, ok)
	assert.Equal(t, 5, value)
}

func TestCache_Upsert(t *testing.T) {
	cache := NewCache[string](5)
	cache.Upsert("A", "first", 2)
	cache.Upsert("A", "second", 3)

	value, ok := cache.Retrieve("A")
	require.True(t, ok)
	assert.Equal(t, "second", value)
	assert.Equal(t, 3, cache.GetWeight())
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache[string](5)
	require.NoError(t, cache.Insert("A", "value", 1))
	cache.Clear()

	assert.Equal(t, 0, cache.GetWeight())
	_, ok := cache.Retrieve("A")
	assert.False(t, ok)
	require.NoError(t, cache.Insert("A", "value", 1))
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache[int](50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j)
				cache.Upsert(key, j, 1)
				cache.Retrieve(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, cache.GetWeight())
}
