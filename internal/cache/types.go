package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// TypeCache maps record type ids to descriptors. Types are shared across
// many records, so they are cached separately from record content.
type TypeCache struct {
	registry types.TypeRegistry
	log      *slog.Logger

	mu    sync.RWMutex
	descs map[string]*types.RecordType
}

// NewTypeCache returns an empty type cache over the given registry.
func NewTypeCache(registry types.TypeRegistry, log *slog.Logger) *TypeCache {
	if log == nil {
		log = slog.Default()
	}
	return &TypeCache{
		registry: registry,
		log:      log,
		descs:    make(map[string]*types.RecordType),
	}
}

// Get returns the cached descriptor for id, if present.
func (c *TypeCache) Get(id string) (*types.RecordType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.descs[id]
	return d, ok
}

// GetOrFetch returns the descriptor for id, fetching it on demand when not
// cached. Returns ErrTypeNotFound via the registry when the id is unknown.
func (c *TypeCache) GetOrFetch(ctx context.Context, id string) (*types.RecordType, error) {
	if d, ok := c.Get(id); ok {
		return d, nil
	}
	d, err := c.registry.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.descs[d.ID] = d
	c.mu.Unlock()
	return d, nil
}

// FetchBatch bulk-fetches the given type ids into the cache. Failures are
// logged and leave prior entries untouched.
func (c *TypeCache) FetchBatch(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	descs, err := c.registry.GetMany(ctx, ids)
	if err != nil {
		c.log.Error("batch record type fetch failed", "count", len(ids), "err", err)
		return
	}
	c.mu.Lock()
	for _, d := range descs {
		c.descs[d.ID] = d
	}
	c.mu.Unlock()
}

// All enumerates up to limit descriptors from the registry, caching them.
func (c *TypeCache) All(ctx context.Context, limit int) ([]*types.RecordType, error) {
	descs, err := c.registry.All(ctx, limit)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	for _, d := range descs {
		c.descs[d.ID] = d
	}
	c.mu.Unlock()
	return descs, nil
}
