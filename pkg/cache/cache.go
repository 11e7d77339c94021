package cache

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrKeyExists is returned when inserting a key that is already cached.
var ErrKeyExists = errors.New("key already exists in cache")

// Cache is a weight-bounded LRU cache. Inserts evict the least recently used
// entries until the total weight fits within the budget.
type Cache[V any] interface {
	// SetVerbose controls eviction logging
	SetVerbose(verbose bool)

	GetWeight() int
	GetBudget() int

	// Insert adds a new item, failing with ErrKeyExists for an existing key
	Insert(key string, value V, weight int) error

	// Upsert adds or replaces an item
	Upsert(key string, value V, weight int)

	// Retrieve fetches an item and marks it as recently used
	Retrieve(key string) (V, bool)

	Clear()
}

type cacheNode[V any] struct {
	next   *cacheNode[V]
	prev   *cacheNode[V]
	key    string
	value  V
	weight int
}

type cache[V any] struct {
	log *logrus.Entry

	mu      sync.Mutex
	head    *cacheNode[V]
	tail    *cacheNode[V]
	lookup  map[string]*cacheNode[V]
	weight  int
	budget  int
	verbose bool
}

// NewCache returns a new cache with a given weight budget.
func NewCache[V any](budget int) Cache[V] {
	return &cache[V]{
		log:    logrus.StandardLogger().WithField("type", "cache"),
		lookup: make(map[string]*cacheNode[V]),
		budget: budget,
	}
}

func (c *cache[V]) SetVerbose(verbose bool) {
	c.mu.Lock()
	c.verbose = verbose
	c.mu.Unlock()
}

func (c *cache[V]) GetWeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}

func (c *cache[V]) GetBudget() int {
	return c.budget
}

func (c *cache[V]) Insert(key string, value V, weight int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.lookup[key]; found {
		return ErrKeyExists
	}

	c.insert(key, value, weight)
	return nil
}

func (c *cache[V]) Upsert(key string, value V, weight int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, found := c.lookup[key]; found {
		c.unlink(node)
		c.weight -= node.weight
		delete(c.lookup, key)
	}

	c.insert(key, value, weight)
}

func (c *cache[V]) Retrieve(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, found := c.lookup[key]
	if !found {
		var zero V
		return zero, false
	}

	if node != c.head {
		c.unlink(node)
		c.pushFront(node)
	}

	return node.value, true
}

func (c *cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.head = nil
	c.tail = nil
	c.lookup = make(map[string]*cacheNode[V])
	c.weight = 0
}

func (c *cache[V]) insert(key string, value V, weight int) {
	node := &cacheNode[V]{
		key:    key,
		value:  value,
		weight: weight,
	}
	c.pushFront(node)
	c.lookup[key] = node
	c.weight += weight

	for c.weight > c.budget && c.tail != nil {
		evicted := c.tail
		c.unlink(evicted)
		c.weight -= evicted.weight
		delete(c.lookup, evicted.key)

		if c.verbose {
			c.log.WithFields(logrus.Fields{
				"key":          evicted.key,
				"weight":       evicted.weight,
				"spare_weight": c.budget - c.weight,
			}).Debug("evicted cache entry")
		}
	}
}

func (c *cache[V]) pushFront(node *cacheNode[V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *cache[V]) unlink(node *cacheNode[V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.next = nil
	node.prev = nil
}
