package donki

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
)

// Source fetches all events for a date range.
type Source interface {
	FetchEvents(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error)
}

// CachedClient wraps a Source with an in-memory LRU cache keyed by the
// requested date range. Assessments for the same mission window within a
// session hit the API once.
type CachedClient struct {
	inner Source
	cache *lruCache
}

// NewCachedClient creates a cache decorator around a feed source.
func NewCachedClient(inner Source, maxEntries int) *CachedClient {
	return &CachedClient{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedClient) FetchEvents(ctx context.Context, window domain.DateRange) ([]domain.SpaceWeatherEvent, error) {
	key := fmt.Sprintf("%s|%s",
		window.Start.UTC().Format(time.RFC3339),
		window.End.UTC().Format(time.RFC3339))
	if events, ok := c.cache.get(key); ok {
		return events, nil
	}
	events, err := c.inner.FetchEvents(ctx, window)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so a quiet range is re-checked as the
	// feed catches up with late notifications.
	if len(events) > 0 {
		c.cache.put(key, events)
	}
	return events, nil
}

// lruCache is a simple thread-safe LRU cache for fetched event lists.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.SpaceWeatherEvent
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.SpaceWeatherEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.SpaceWeatherEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
