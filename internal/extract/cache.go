package extract

import (
	"fmt"
	"sync"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// ResultKey identifies one cached extraction result. The parameter hash
// keeps differing parameter bags from sharing an entry.
type ResultKey struct {
	Document   string
	Page       int
	Section    template.Section
	Method     Method
	ParamsHash string
}

func (k ResultKey) String() string {
	return fmt.Sprintf("%s#%d#%s#%s#%s", k.Document, k.Page, k.Section, k.Method, k.ParamsHash)
}

// ResultCache is a bounded LRU of extraction results, owned by the batch
// driver and passed by reference into the dispatcher. Writes are idempotent:
// recomputing and overwriting an identical result is always safe, so no
// cross-document locking is needed beyond the cache's own mutex.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*cacheNode
	head     *cacheNode // most recently used
	tail     *cacheNode // least recently used
	hits     int64
	misses   int64
}

type cacheNode struct {
	key    string
	tables []Table
	prev   *cacheNode
	next   *cacheNode
}

// NewResultCache creates a cache holding at most capacity results.
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = 256
	}
	c := &ResultCache{
		capacity: capacity,
		items:    make(map[string]*cacheNode),
		head:     &cacheNode{},
		tail:     &cacheNode{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get retrieves a cached result and marks it recently used. The returned
// slice is the caller's to reorder; the tables it holds still share row
// storage with the cache and are read-only.
func (c *ResultCache) Get(key ResultKey) ([]Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key.String()]; ok {
		c.moveToFront(node)
		c.hits++
		tables := make([]Table, len(node.tables))
		copy(tables, node.tables)
		return tables, true
	}
	c.misses++
	return nil, false
}

// Put stores a result, evicting the least recently used entry when over
// capacity.
func (c *ResultCache) Put(key ResultKey, tables []Table) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	if node, ok := c.items[k]; ok {
		node.tables = tables
		c.moveToFront(node)
		return
	}

	node := &cacheNode{key: k, tables: tables}
	c.addToFront(node)
	c.items[k] = node

	if len(c.items) > c.capacity {
		lru := c.tail.prev
		if lru != c.head {
			c.unlink(lru)
			delete(c.items, lru.key)
		}
	}
}

// Clear drops every entry. The batch driver calls it between batches to
// bound memory.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheNode)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the current number of cached results.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CacheStats summarizes cache effectiveness over the run.
type CacheStats struct {
	Hits     int64
	Misses   int64
	Size     int
	Capacity int
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.items), Capacity: c.capacity}
}

func (c *ResultCache) moveToFront(node *cacheNode) {
	c.unlink(node)
	c.addToFront(node)
}

func (c *ResultCache) addToFront(node *cacheNode) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

func (c *ResultCache) unlink(node *cacheNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}
