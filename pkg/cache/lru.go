package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	timestamp time.Time
	element   *list.Element
}

// LRU is a size-bounded cache with optional time-to-live. Expired entries are
// dropped when they are read.
type LRU[V any] struct {
	maxSize int
	ttl     time.Duration
	items   map[string]*entry[V]
	lruList *list.List
	mu      sync.Mutex
	now     func() time.Time
}

// New creates a cache holding at most maxSize entries. A zero ttl disables expiry.
func New[V any](maxSize int, ttl time.Duration) *LRU[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &LRU[V]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*entry[V]),
		lruList: list.New(),
		now:     time.Now,
	}
}

func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[key]; ok {
		item.value = value
		item.timestamp = c.now()
		c.lruList.MoveToFront(item.element)
		return
	}

	item := &entry[V]{key: key, value: value, timestamp: c.now()}
	item.element = c.lruList.PushFront(item)
	c.items[key] = item

	if len(c.items) > c.maxSize {
		c.evictOldest()
	}
}

func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	item, ok := c.items[key]
	if !ok {
		return zero, false
	}

	if c.ttl > 0 && c.now().Sub(item.timestamp) > c.ttl {
		c.deleteItem(item)
		return zero, false
	}

	c.lruList.MoveToFront(item.element)
	return item.value, true
}

func (c *LRU[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[key]; ok {
		c.deleteItem(item)
	}
}

func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V])
	c.lruList = list.New()
}

func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU[V]) evictOldest() {
	if element := c.lruList.Back(); element != nil {
		c.deleteItem(element.Value.(*entry[V]))
	}
}

func (c *LRU[V]) deleteItem(item *entry[V]) {
	delete(c.items, item.key)
	c.lruList.Remove(item.element)
}
