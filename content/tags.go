package content

import (
	"context"
	"sort"
	"sync"
)

type tagCollectorKey struct{}

type tagCollector struct {
	mu   sync.Mutex
	tags map[string]struct{}
}

// WithTagCollector returns a context that records the cache tags of every fetch made with it.
func WithTagCollector(ctx context.Context) context.Context {
	return context.WithValue(ctx, tagCollectorKey{}, &tagCollector{tags: make(map[string]struct{})})
}

// CollectedTags returns the sorted tags recorded so far, or nil without a collector.
func CollectedTags(ctx context.Context) []string {
	c, ok := ctx.Value(tagCollectorKey{}).(*tagCollector)
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tags := make([]string, 0, len(c.tags))
	for tag := range c.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func recordTags(ctx context.Context, tags []string) {
	c, ok := ctx.Value(tagCollectorKey{}).(*tagCollector)
	if !ok || len(tags) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		c.tags[tag] = struct{}{}
	}
}
