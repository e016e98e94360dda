// Package cache provides read-through, batch-populated caches over the
// record store and type registry. Entries are eventually-consistent
// projections: a fetch failure leaves prior entries untouched and callers
// must tolerate missing entries.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// RecordCache maps record ids to fetched records, populated in batches.
type RecordCache struct {
	store types.RecordStore
	typs  *TypeCache
	log   *slog.Logger

	mu      sync.RWMutex
	records map[string]*types.Record
	loading bool
}

// NewRecordCache returns an empty record cache reading through the given
// store. Fetched records' type ids are read through into typs.
func NewRecordCache(store types.RecordStore, typs *TypeCache, log *slog.Logger) *RecordCache {
	if log == nil {
		log = slog.Default()
	}
	return &RecordCache{
		store:   store,
		typs:    typs,
		log:     log,
		records: make(map[string]*types.Record),
	}
}

// Get returns the cached record for id, if present.
func (c *RecordCache) Get(id string) (*types.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	return rec, ok
}

// Loading reports whether a batch fetch is in flight. Presentation signal
// only; it gates no mutation.
func (c *RecordCache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// FetchBatch performs a single bulk lookup of the given ids and caches the
// results, then bulk-fetches the distinct record types seen. An empty id set
// short-circuits. Failures are logged and leave the cache as it was; the
// loading flag is cleared either way and no error reaches the caller.
func (c *RecordCache) FetchBatch(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	recs, err := c.store.GetMany(ctx, dedupe(ids))
	if err != nil {
		c.log.Error("batch record fetch failed", "count", len(ids), "err", err)
		return
	}

	typeIDs := make(map[string]bool)
	c.mu.Lock()
	for _, rec := range recs {
		if rec.Validate() != nil {
			continue
		}
		c.records[rec.ID] = rec
		typeIDs[rec.TypeID] = true
	}
	c.mu.Unlock()

	if c.typs != nil && len(typeIDs) > 0 {
		distinct := make([]string, 0, len(typeIDs))
		for id := range typeIDs {
			distinct = append(distinct, id)
		}
		c.typs.FetchBatch(ctx, distinct)
	}
}

// dedupe returns ids with duplicates removed, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
