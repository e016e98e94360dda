// Package storetest provides in-memory collaborator doubles for engine
// tests: a record store with error injection, a scripted dialog host, a
// recording notifier and navigator, and a field host backed by a slice.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// ErrInjected is returned by operations whose failure was requested.
var ErrInjected = errors.New("injected failure")

// Store is an in-memory RecordStore and TypeRegistry. Operations can be
// made to fail by name via Fail.
type Store struct {
	mu      sync.Mutex
	records map[string]*types.Record
	typs    map[string]*types.RecordType
	nextID  int

	// Fail marks operations that should return ErrInjected:
	// "getmany", "getone", "create", "update", "query", "types".
	Fail map[string]bool

	// UpdateCalls records every record id passed to Update.
	UpdateCalls []string
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*types.Record),
		typs:    make(map[string]*types.RecordType),
		Fail:    make(map[string]bool),
	}
}

// PutType registers a record type descriptor.
func (s *Store) PutType(t *types.RecordType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typs[t.ID] = t
}

// Put stores a record as-is.
func (s *Store) Put(r *types.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
}

// Record returns the stored record with the given id, or nil.
func (s *Store) Record(id string) *types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id]
}

func (s *Store) GetMany(_ context.Context, ids []string) ([]*types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["getmany"] {
		return nil, ErrInjected
	}
	out := make([]*types.Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.records[id]; ok {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (s *Store) GetOne(_ context.Context, id string) (*types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["getone"] {
		return nil, ErrInjected
	}
	r, ok := s.records[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return cloneRecord(r), nil
}

func (s *Store) Create(_ context.Context, typeID string, fields types.Fields) (*types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["create"] {
		return nil, ErrInjected
	}
	if _, ok := s.typs[typeID]; !ok {
		return nil, types.ErrTypeNotFound
	}
	s.nextID++
	r := &types.Record{
		ID:      fmt.Sprintf("rec-%d", s.nextID),
		TypeID:  typeID,
		Version: 1,
		Fields:  fields,
	}
	s.records[r.ID] = r
	return cloneRecord(r), nil
}

func (s *Store) Update(_ context.Context, rec *types.Record) (*types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateCalls = append(s.UpdateCalls, rec.ID)
	if s.Fail["update"] {
		return nil, ErrInjected
	}
	cur, ok := s.records[rec.ID]
	if !ok {
		return nil, types.ErrNotFound
	}
	if cur.Version != rec.Version {
		return nil, types.ErrVersionConflict
	}
	next := cloneRecord(rec)
	next.Version++
	s.records[next.ID] = next
	return cloneRecord(next), nil
}

func (s *Store) QueryByBacklink(_ context.Context, targetID, parentTypeID string) ([]*types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["query"] {
		return nil, ErrInjected
	}
	var out []*types.Record
	for _, r := range s.records {
		if r.TypeID != parentTypeID {
			continue
		}
		if referencesTarget(r, targetID) {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func referencesTarget(r *types.Record, targetID string) bool {
	for _, byLocale := range r.Fields {
		for _, v := range byLocale {
			links, ok := v.([]types.Link)
			if !ok {
				continue
			}
			for _, l := range links {
				if l.TargetID == targetID {
					return true
				}
			}
		}
	}
	return false
}

func (s *Store) GetManyTypes(_ context.Context, ids []string) ([]*types.RecordType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["types"] {
		return nil, ErrInjected
	}
	out := make([]*types.RecordType, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.typs[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) GetOneType(_ context.Context, id string) (*types.RecordType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["types"] {
		return nil, ErrInjected
	}
	t, ok := s.typs[id]
	if !ok {
		return nil, types.ErrTypeNotFound
	}
	return t, nil
}

func (s *Store) AllTypes(_ context.Context, limit int) ([]*types.RecordType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail["types"] {
		return nil, ErrInjected
	}
	var out []*types.RecordType
	for _, t := range s.typs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Registry adapts the store's type methods to the TypeRegistry interface.
type Registry struct{ S *Store }

func (r Registry) GetMany(ctx context.Context, ids []string) ([]*types.RecordType, error) {
	return r.S.GetManyTypes(ctx, ids)
}

func (r Registry) GetOne(ctx context.Context, id string) (*types.RecordType, error) {
	return r.S.GetOneType(ctx, id)
}

func (r Registry) All(ctx context.Context, limit int) ([]*types.RecordType, error) {
	return r.S.AllTypes(ctx, limit)
}

func cloneRecord(r *types.Record) *types.Record {
	out := *r
	out.Fields = make(types.Fields, len(r.Fields))
	for f, byLocale := range r.Fields {
		m := make(map[string]any, len(byLocale))
		for loc, v := range byLocale {
			if links, ok := v.([]types.Link); ok {
				cp := make([]types.Link, len(links))
				copy(cp, links)
				m[loc] = cp
				continue
			}
			m[loc] = v
		}
		out.Fields[f] = m
	}
	return &out
}
