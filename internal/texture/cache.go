package texture

import (
	"sync"

	"psx-scene-renderer/internal/meshdata"
)

// Cache quantizes each source image once, however many materials share it.
// It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
}

type cacheEntry struct {
	tex meshdata.TextureBlock
	err error
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// Resolve loads and quantizes path, or returns the earlier result.
func (c *Cache) Resolve(path string) (meshdata.TextureBlock, error) {
	c.mu.RLock()
	if e, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return e.tex, e.err
	}
	c.mu.RUnlock()

	e := &cacheEntry{}
	img, err := LoadImage(path)
	if err == nil {
		e.tex, err = Quantize(img)
	}
	e.err = err

	c.mu.Lock()
	if prev, ok := c.items[path]; ok {
		e = prev
	} else {
		c.items[path] = e
	}
	c.mu.Unlock()
	return e.tex, e.err
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
