// Package collection holds the ordered reference item collection backing one
// link-list field, plus the duplicate detection over it.
package collection

import (
	"github.com/google/uuid"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// Edges for MoveToEdge.
const (
	EdgeStart = "start"
	EdgeEnd   = "end"
)

// Store is the ordered collection of reference items for one field. All
// operations are synchronous over in-memory state; callers serialize access
// and push every mutation to the authoritative field value immediately.
type Store struct {
	items  []types.ReferenceItem
	newKey func() string
}

// NewStore returns an empty collection. Local keys are minted as UUID v7
// strings.
func NewStore() *Store {
	return &Store{newKey: mintKey}
}

// NewStoreWithKeys returns an empty collection minting local keys with the
// given function. Used by tests that need deterministic keys.
func NewStoreWithKeys(newKey func() string) *Store {
	return &Store{newKey: newKey}
}

// mintKey generates a UUID v7 local key, falling back to v4 if v7
// generation fails.
func mintKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Items returns a copy of the collection in order.
func (s *Store) Items() []types.ReferenceItem {
	out := make([]types.ReferenceItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the collection.
func (s *Store) Len() int {
	return len(s.items)
}

// TargetIDs returns the ordered target ids of the collection.
func (s *Store) TargetIDs() []string {
	ids := make([]string, 0, len(s.items))
	for _, it := range s.items {
		ids = append(ids, it.TargetID)
	}
	return ids
}

// ContainsTarget reports whether any item references the given target.
func (s *Store) ContainsTarget(targetID string) bool {
	for _, it := range s.items {
		if it.TargetID == targetID {
			return true
		}
	}
	return false
}

// Append adds items for the given targets at the end of the collection,
// minting a fresh local key for each, and returns the appended items.
func (s *Store) Append(targetIDs ...string) []types.ReferenceItem {
	added := make([]types.ReferenceItem, 0, len(targetIDs))
	for _, id := range targetIDs {
		it := types.ReferenceItem{LocalKey: s.newKey(), TargetID: id}
		s.items = append(s.items, it)
		added = append(added, it)
	}
	return added
}

// RemoveByKey removes the item with the given local key.
// Returns ErrKeyNotFound if no item carries that key.
func (s *Store) RemoveByKey(key string) error {
	for i, it := range s.items {
		if it.LocalKey == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return types.ErrKeyNotFound
}

// IndexOfKey returns the position of the item with the given local key, or
// -1 when absent.
func (s *Store) IndexOfKey(key string) int {
	for i, it := range s.items {
		if it.LocalKey == key {
			return i
		}
	}
	return -1
}

// MoveToEdge moves the item at index to the start or end of the collection,
// preserving the relative order of all other items.
func (s *Store) MoveToEdge(index int, edge string) error {
	if index < 0 || index >= len(s.items) {
		return types.ErrIndexOutOfRange
	}
	switch edge {
	case EdgeStart:
		return s.Reorder(index, 0)
	case EdgeEnd:
		return s.Reorder(index, len(s.items)-1)
	default:
		return types.ErrInvalidEdge
	}
}

// Reorder removes the item at from and reinserts it at to.
func (s *Store) Reorder(from, to int) error {
	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return types.ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	it := s.items[from]
	rest := append(s.items[:from], s.items[from+1:]...)
	s.items = append(rest[:to], append([]types.ReferenceItem{it}, rest[to:]...)...)
	return nil
}

// ReplaceAll discards the collection and rebuilds it from the given targets
// in order, minting fresh local keys for every item. This is the only
// operation invoked for externally-originated field changes.
func (s *Store) ReplaceAll(targetIDs []string) {
	items := make([]types.ReferenceItem, 0, len(targetIDs))
	for _, id := range targetIDs {
		items = append(items, types.ReferenceItem{LocalKey: s.newKey(), TargetID: id})
	}
	s.items = items
}
