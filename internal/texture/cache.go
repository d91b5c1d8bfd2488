package texture

import (
	"image"
	"sync"

	"md3-renderer/internal/resource"
)

// Resolver resolves a texture name to a decoded image.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Names are looked up through
// the asset resolver in every supported format, then through the stem
// index.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	res   resource.Resolver
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a texture cache. index may be nil.
func NewCache(res resource.Resolver, index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		res:   res,
		index: index,
	}
}

// Locate returns the file a texture name resolves to.
func (c *Cache) Locate(texName string) (string, bool) {
	if c.res != nil {
		if p, ok := resource.Find(c.res, Alternatives(texName)...); ok {
			return p, true
		}
	}
	return c.index.ResolvePath(texName)
}

// Resolve loads and caches a texture by name. Returns nil if not found
// or undecodable.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.Locate(texName)
	if !ok {
		return nil
	}

	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, err := Load(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img
}

// First resolves the first candidate that yields an image.
func First(r Resolver, candidates []string) (*image.NRGBA, string) {
	for _, name := range candidates {
		if img := r.Resolve(name); img != nil {
			return img, name
		}
	}
	return nil, ""
}

// Failures returns the decode errors seen so far, keyed by path.
func (c *Cache) Failures() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]error)
	for p, e := range c.items {
		if e.err != nil {
			out[p] = e.err
		}
	}
	return out
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
