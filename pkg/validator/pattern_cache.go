package validator

import (
	"container/list"
	"regexp"
	"sync"
)

// maxCachedPatterns bounds the compiled pattern cache.
const maxCachedPatterns = 256

type cachedPattern struct {
	src string
	re  *regexp.Regexp
}

// regexCache holds at most capacity compiled patterns and evicts the least
// recently used one first.
type regexCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front is most recently used
}

func newRegexCache(capacity int) *regexCache {
	return &regexCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *regexCache) get(src string) (*regexp.Regexp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[src]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cachedPattern).re, true
}

func (c *regexCache) put(src string, re *regexp.Regexp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[src]; ok {
		elem.Value.(*cachedPattern).re = re
		c.order.MoveToFront(elem)
		return
	}

	c.items[src] = c.order.PushFront(&cachedPattern{src: src, re: re})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cachedPattern).src)
	}
}

func (c *regexCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
