// Package editor wires the collection store, caches, resolver, conflict
// resolution and refresh tracking into the synchronization engine for one
// link-list field on one parent record.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reddishgreen/contentful-unique-references/internal/cache"
	"github.com/reddishgreen/contentful-unique-references/internal/collection"
	"github.com/reddishgreen/contentful-unique-references/internal/conflict"
	"github.com/reddishgreen/contentful-unique-references/internal/refresh"
	"github.com/reddishgreen/contentful-unique-references/internal/resolve"
	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// allTypesLimit caps type enumeration when the field carries no allow-list.
const allTypesLimit = 1000

// Deps are the collaborators and identity the engine operates over.
type Deps struct {
	Store    types.RecordStore
	Registry types.TypeRegistry
	Field    types.FieldHost
	Dialogs  types.Dialogs
	Nav      types.Navigator
	Notifier types.Notifier
	Log      *slog.Logger

	// ParentID is the record whose field is being edited.
	ParentID string
}

// Engine keeps the local collection in sync with the authoritative field
// value and routes user actions through conflict resolution. Operations are
// serialized by one mutex; the authoritative value always wins over local
// state when a change notification arrives.
type Engine struct {
	mu sync.Mutex

	deps         Deps
	log          *slog.Logger
	parentTypeID string

	col       *collection.Store
	records   *cache.RecordCache
	typs      *cache.TypeCache
	titles    *resolve.Resolver
	conflicts *conflict.Resolver
	refresh   *refresh.Controller

	allowed     []*types.RecordType
	unsubscribe func()
}

// New assembles an engine. Call Open before use.
func New(deps Deps) *Engine {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	typs := cache.NewTypeCache(deps.Registry, log)
	records := cache.NewRecordCache(deps.Store, typs, log)
	titles := resolve.New(typs)

	e := &Engine{
		deps:    deps,
		log:     log,
		col:     collection.NewStore(),
		records: records,
		typs:    typs,
		titles:  titles,
		refresh: refresh.New(),
	}
	e.conflicts = conflict.New(deps.Store, deps.Dialogs, deps.Notifier, titles.Title, log)
	return e
}

// Open loads the current field value into the collection, subscribes to
// external value changes, fetches referenced records and computes the
// allowed target types.
func (e *Engine) Open(ctx context.Context) error {
	parent, err := e.deps.Store.GetOne(ctx, e.deps.ParentID)
	if err != nil {
		return fmt.Errorf("load parent record %s: %w", e.deps.ParentID, err)
	}
	if err := parent.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.parentTypeID = parent.TypeID
	e.col.ReplaceAll(types.TargetIDs(e.deps.Field.Value()))
	targets := e.col.TargetIDs()
	e.mu.Unlock()

	e.unsubscribe = e.deps.Field.OnValueChanged(func(links []types.Link) {
		e.onExternalChange(links)
	})

	e.records.FetchBatch(ctx, targets)

	allowed, err := e.loadAllowedTypes(ctx)
	if err != nil {
		return fmt.Errorf("load allowed types: %w", err)
	}
	e.mu.Lock()
	e.allowed = allowed
	e.mu.Unlock()
	return nil
}

// Close unsubscribes from field value changes.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// loadAllowedTypes derives the permitted target types from the field's
// validation allow-list, falling back to enumerating every type.
func (e *Engine) loadAllowedTypes(ctx context.Context) ([]*types.RecordType, error) {
	if ids := e.deps.Field.AllowedTypeIDs(); len(ids) > 0 {
		return e.deps.Registry.GetMany(ctx, ids)
	}
	return e.typs.All(ctx, allTypesLimit)
}

// onExternalChange handles an inbound field value notification: the new
// value fully replaces the collection, discarding local keys, and a fetch
// of the referenced records is kicked off.
func (e *Engine) onExternalChange(links []types.Link) {
	e.mu.Lock()
	e.col.ReplaceAll(types.TargetIDs(links))
	targets := e.col.TargetIDs()
	e.mu.Unlock()

	e.records.FetchBatch(context.Background(), targets)
}

// pushValue writes the collection snapshot to the authoritative field
// value. Write failures are surfaced as an error notice; the next inbound
// notification re-establishes consistency.
func (e *Engine) pushValue(ctx context.Context, targets []string) {
	if err := e.deps.Field.SetValue(ctx, types.LinksFor(targets)); err != nil {
		e.log.Error("field value write failed", "err", err)
		e.deps.Notifier.Error("Could not save the reference list.")
	}
}

// Items returns the current collection snapshot.
func (e *Engine) Items() []types.ReferenceItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.col.Items()
}

// AllowedTypes returns the permitted target type descriptors.
func (e *Engine) AllowedTypes() []*types.RecordType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allowed
}

// Loading reports whether a record fetch is in flight. Presentation only.
func (e *Engine) Loading() bool {
	return e.records.Loading()
}

// AddSelected opens the record picker and adds the resolved selection to
// the collection in a single append. Cancelling or selecting nothing is a
// no-op.
func (e *Engine) AddSelected(ctx context.Context) error {
	e.mu.Lock()
	allowed := e.allowed
	params := conflict.Params{
		ParentID:     e.deps.ParentID,
		ParentTypeID: e.parentTypeID,
		FieldID:      e.deps.Field.FieldID(),
		Locale:       e.deps.Field.Locale(),
	}
	current := e.col.TargetIDs()
	e.mu.Unlock()

	selected, err := e.deps.Dialogs.SelectRecords(ctx, types.SelectOptions{
		AllowedTypes: allowed,
	})
	if err != nil {
		return fmt.Errorf("record picker: %w", err)
	}
	if len(selected) == 0 {
		return nil
	}

	res := e.conflicts.Resolve(ctx, params, current, selected)
	if len(res.Add) == 0 {
		return nil
	}

	e.mu.Lock()
	e.col.Append(res.Add...)
	targets := e.col.TargetIDs()
	e.mu.Unlock()

	e.pushValue(ctx, targets)
	e.records.FetchBatch(ctx, res.Add)
	return nil
}

// CreateAndLink creates a blank record of the given type, appends it to the
// collection and sends the user to its editor. A create failure raises an
// error notice and leaves the collection unmodified.
func (e *Engine) CreateAndLink(ctx context.Context, typeID string) error {
	rec, err := e.deps.Store.Create(ctx, typeID, types.Fields{})
	if err != nil {
		e.log.Error("record create failed", "type", typeID, "err", err)
		e.deps.Notifier.Error("Could not create the entry.")
		return fmt.Errorf("create record: %w", err)
	}

	e.mu.Lock()
	e.col.Append(rec.ID)
	targets := e.col.TargetIDs()
	e.mu.Unlock()
	e.pushValue(ctx, targets)

	e.refresh.MarkPending()
	if err := e.deps.Nav.OpenRecordEditor(ctx, rec.ID, true); err != nil {
		e.log.Error("open editor failed", "record", rec.ID, "err", err)
	}
	return nil
}

// OpenEditor sends the user to the full editor of the referenced record,
// arming the refresh controller for their return.
func (e *Engine) OpenEditor(ctx context.Context, localKey string) error {
	e.mu.Lock()
	idx := e.col.IndexOfKey(localKey)
	var targetID string
	if idx >= 0 {
		targetID = e.col.Items()[idx].TargetID
	}
	e.mu.Unlock()

	if idx < 0 {
		return types.ErrKeyNotFound
	}
	e.refresh.MarkPending()
	return e.deps.Nav.OpenRecordEditor(ctx, targetID, true)
}

// Remove deletes the item with the given local key and persists the new
// value immediately.
func (e *Engine) Remove(ctx context.Context, localKey string) error {
	e.mu.Lock()
	if err := e.col.RemoveByKey(localKey); err != nil {
		e.mu.Unlock()
		return err
	}
	targets := e.col.TargetIDs()
	e.mu.Unlock()
	e.pushValue(ctx, targets)
	return nil
}

// MoveToEdge moves the item with the given local key to the start or end of
// the collection and persists immediately.
func (e *Engine) MoveToEdge(ctx context.Context, localKey, edge string) error {
	e.mu.Lock()
	idx := e.col.IndexOfKey(localKey)
	if idx < 0 {
		e.mu.Unlock()
		return types.ErrKeyNotFound
	}
	if err := e.col.MoveToEdge(idx, edge); err != nil {
		e.mu.Unlock()
		return err
	}
	targets := e.col.TargetIDs()
	e.mu.Unlock()
	e.pushValue(ctx, targets)
	return nil
}

// Reorder moves the item at from to position to and persists immediately.
func (e *Engine) Reorder(ctx context.Context, from, to int) error {
	e.mu.Lock()
	if err := e.col.Reorder(from, to); err != nil {
		e.mu.Unlock()
		return err
	}
	targets := e.col.TargetIDs()
	e.mu.Unlock()
	e.pushValue(ctx, targets)
	return nil
}

// PointerReturned is the primary return trigger: the pointer re-entered the
// component's viewport after a navigation.
func (e *Engine) PointerReturned(ctx context.Context) {
	e.resyncIfPending(ctx)
}

// WindowFocused is the fallback return trigger for hosts where focus events
// are unreliable inside embedded frames.
func (e *Engine) WindowFocused(ctx context.Context) {
	e.resyncIfPending(ctx)
}

// resyncIfPending refreshes all referenced records at most once per
// navigation.
func (e *Engine) resyncIfPending(ctx context.Context) {
	if !e.refresh.Consume() {
		return
	}
	e.Resync(ctx)
}

// Resync unconditionally re-fetches every referenced record.
func (e *Engine) Resync(ctx context.Context) {
	e.mu.Lock()
	targets := e.col.TargetIDs()
	e.mu.Unlock()
	e.records.FetchBatch(ctx, targets)
}
