package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

var _ types.TypeRegistry = (*TypeTable)(nil)

// TypeTable is the type-registry view of a Store. Record types are
// administered out of band; this module reads them and the seed path
// writes them.
type TypeTable struct {
	s *Store
}

// Types returns the store's type-registry view.
func (s *Store) Types() *TypeTable {
	return &TypeTable{s: s}
}

// typeByID fetches one type descriptor on the given handle.
func (s *Store) typeByID(ctx context.Context, db *sql.DB, id string) (*types.RecordType, error) {
	var t types.RecordType
	err := db.QueryRowContext(ctx,
		"SELECT type_id, name, display_field_id FROM record_types WHERE type_id = ?",
		id).Scan(&t.ID, &t.Name, &t.DisplayFieldID)
	if err == sql.ErrNoRows {
		return nil, types.ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting record type %s: %w", id, err)
	}
	return &t, nil
}

// GetOne retrieves a single type descriptor.
func (tt *TypeTable) GetOne(ctx context.Context, id string) (*types.RecordType, error) {
	db, err := tt.s.conn()
	if err != nil {
		return nil, err
	}
	return tt.s.typeByID(ctx, db, id)
}

// GetMany retrieves the descriptors for the given ids in one query,
// omitting missing ids and preserving requested order.
func (tt *TypeTable) GetMany(ctx context.Context, ids []string) ([]*types.RecordType, error) {
	db, err := tt.s.conn()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := db.QueryContext(ctx,
		"SELECT type_id, name, display_field_id FROM record_types WHERE type_id IN ("+placeholders+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying record types: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.RecordType, len(ids))
	for rows.Next() {
		var t types.RecordType
		if err := rows.Scan(&t.ID, &t.Name, &t.DisplayFieldID); err != nil {
			return nil, err
		}
		byID[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record types: %w", err)
	}

	out := make([]*types.RecordType, 0, len(byID))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
			delete(byID, id)
		}
	}
	return out, nil
}

// All enumerates up to limit descriptors, ordered by name.
func (tt *TypeTable) All(ctx context.Context, limit int) ([]*types.RecordType, error) {
	db, err := tt.s.conn()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx,
		"SELECT type_id, name, display_field_id FROM record_types ORDER BY name LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("listing record types: %w", err)
	}
	defer rows.Close()

	var out []*types.RecordType
	for rows.Next() {
		var t types.RecordType
		if err := rows.Scan(&t.ID, &t.Name, &t.DisplayFieldID); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record types: %w", err)
	}
	return out, nil
}

// Put creates or replaces a type descriptor.
func (tt *TypeTable) Put(ctx context.Context, t *types.RecordType) error {
	db, err := tt.s.conn()
	if err != nil {
		return err
	}
	if t.ID == "" {
		return types.ErrInvalidID
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO record_types (type_id, name, display_field_id) VALUES (?, ?, ?) ON CONFLICT(type_id) DO UPDATE SET name = excluded.name, display_field_id = excluded.display_field_id",
		t.ID, t.Name, t.DisplayFieldID)
	if err != nil {
		return fmt.Errorf("persisting record type %s: %w", t.ID, err)
	}
	return nil
}
