package speech

import "container/list"

// lruCache is a bounded least-recently-used cache keyed by the exact input
// text. Bounding the cache replaces the unbounded memoization the feature
// started with: audio payloads are large, and a long session would otherwise
// grow memory without limit.
type lruCache struct {
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type lruItem struct {
	key   string
	value Audio
}

func newLRUCache(capacity int) *lruCache {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *lruCache) get(key string) (Audio, bool) {
	element, ok := c.items[key]
	if !ok {
		return Audio{}, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*lruItem).value, true
}

func (c *lruCache) put(key string, value Audio) {
	if element, ok := c.items[key]; ok {
		c.order.MoveToFront(element)
		element.Value.(*lruItem).value = value
		return
	}

	element := c.order.PushFront(&lruItem{key: key, value: value})
	c.items[key] = element

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruItem).key)
		}
	}
}

func (c *lruCache) len() int {
	return c.order.Len()
}
