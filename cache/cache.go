package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSize = 256
	DefaultTTL  = 5 * time.Minute
)

// Page is a fully rendered response body plus the content tags it was built from.
type Page struct {
	Status      int
	ContentType string
	Body        []byte
	Tags        []string
	RenderedAt  time.Time
}

// Revalidator drops cached renders so the next request rebuilds them.
type Revalidator interface {
	RevalidatePath(ctx context.Context, path string) error
	RevalidateTag(ctx context.Context, tag string) error
}

// PageCache holds rendered pages keyed by request path.
//
// Every invalidation bumps a generation counter and stamps the path or tag it hit. A render
// captures Generation before fetching and stores through SetIfFresh, which refuses the page
// when its path or any of its tags was invalidated after that point.
type PageCache struct {
	pages *expirable.LRU[string, Page]

	mu       sync.Mutex
	byTag    map[string]map[string]struct{}
	gen      uint64
	pathGen  map[string]uint64
	tagGen   map[string]uint64
	purgeGen uint64
	logger   zerolog.Logger
}

// New builds a cache with at most size entries, each living at most ttl.
func New(size int, ttl time.Duration) *PageCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &PageCache{
		byTag:   make(map[string]map[string]struct{}),
		pathGen: make(map[string]uint64),
		tagGen:  make(map[string]uint64),
		logger:  log.With().Str("component", "pageCache").Logger(),
	}
	c.pages = expirable.NewLRU[string, Page](size, c.onEvict, ttl)
	return c
}

func (c *PageCache) Get(path string) (Page, bool) {
	return c.pages.Get(path)
}

// Generation is the current invalidation generation. Capture it before rendering a page.
func (c *PageCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set stores page under path and indexes it by each of its tags.
func (c *PageCache) Set(path string, page Page) {
	c.mu.Lock()
	c.index(path, page.Tags)
	c.mu.Unlock()

	c.pages.Add(path, page)
}

// SetIfFresh stores page only if neither path nor any of its tags was invalidated after
// generation since. It reports whether the page was kept.
func (c *PageCache) SetIfFresh(path string, page Page, since uint64) bool {
	c.mu.Lock()
	if c.staleLocked(path, page.Tags, since) {
		c.mu.Unlock()
		return false
	}
	c.index(path, page.Tags)
	c.mu.Unlock()

	c.pages.Add(path, page)

	// an invalidation may have landed between the check and the Add
	c.mu.Lock()
	stale := c.staleLocked(path, page.Tags, since)
	c.mu.Unlock()
	if stale {
		c.pages.Remove(path)
		return false
	}
	return true
}

func (c *PageCache) staleLocked(path string, tags []string, since uint64) bool {
	if c.purgeGen > since || c.pathGen[path] > since {
		return true
	}
	for _, tag := range tags {
		if c.tagGen[tag] > since {
			return true
		}
	}
	return false
}

// index must be called with mu held.
func (c *PageCache) index(path string, tags []string) {
	for _, tag := range tags {
		paths, ok := c.byTag[tag]
		if !ok {
			paths = make(map[string]struct{})
			c.byTag[tag] = paths
		}
		paths[path] = struct{}{}
	}
}

func (c *PageCache) RevalidatePath(_ context.Context, path string) error {
	c.mu.Lock()
	c.gen++
	c.pathGen[path] = c.gen
	c.mu.Unlock()

	if c.pages.Remove(path) {
		c.logger.Debug().Str("path", path).Msg("revalidated path")
	}
	return nil
}

// RevalidateTag drops every cached page rendered from content carrying tag.
func (c *PageCache) RevalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	c.gen++
	c.tagGen[tag] = c.gen
	paths := make([]string, 0, len(c.byTag[tag]))
	for path := range c.byTag[tag] {
		paths = append(paths, path)
	}
	delete(c.byTag, tag)
	c.mu.Unlock()

	for _, path := range paths {
		c.pages.Remove(path)
	}
	c.logger.Debug().Str("tag", tag).Int("paths", len(paths)).Msg("revalidated tag")
	return nil
}

func (c *PageCache) Len() int {
	return c.pages.Len()
}

// Purge empties the cache.
func (c *PageCache) Purge() {
	c.mu.Lock()
	c.gen++
	c.purgeGen = c.gen
	c.mu.Unlock()

	c.pages.Purge()
	c.mu.Lock()
	c.byTag = make(map[string]map[string]struct{})
	c.mu.Unlock()
}

func (c *PageCache) onEvict(path string, page Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range page.Tags {
		if paths, ok := c.byTag[tag]; ok {
			delete(paths, path)
			if len(paths) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
}
