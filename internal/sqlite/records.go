package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

var _ types.RecordStore = (*Store)(nil)

const recordColumns = "record_id, type_id, version, published_version, archived_version, fields, updated_at"

// rowScanner abstracts *sql.Row and *sql.Rows for the hydrate helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateRecord builds a Record from a scanned row.
func hydrateRecord(row rowScanner) (*types.Record, error) {
	var (
		rec       types.Record
		rawFields string
		updatedAt string
	)
	if err := row.Scan(&rec.ID, &rec.TypeID, &rec.Version, &rec.PublishedVersion,
		&rec.ArchivedVersion, &rawFields, &updatedAt); err != nil {
		return nil, err
	}
	fields, err := decodeFields(rawFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedRecord, err)
	}
	rec.Fields = fields
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		rec.UpdatedAt = ts
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetMany retrieves the records with the given ids in one query. Missing
// ids are omitted; result order follows the requested order.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]*types.Record, error) {
	db, err := s.conn()
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
		"SELECT "+recordColumns+" FROM records WHERE record_id IN ("+placeholders+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.Record, len(ids))
	for rows.Next() {
		rec, err := hydrateRecord(rows)
		if err != nil {
			return nil, err
		}
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	out := make([]*types.Record, 0, len(byID))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
			delete(byID, id)
		}
	}
	return out, nil
}

// GetOne retrieves the current version of a single record.
func (s *Store) GetOne(ctx context.Context, id string) (*types.Record, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}
	row := db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE record_id = ?", id)
	rec, err := hydrateRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting record %s: %w", id, err)
	}
	return rec, nil
}

// Create stores a new record of the given type at version 1 with a
// generated UUID v7 id.
func (s *Store) Create(ctx context.Context, typeID string, fields types.Fields) (*types.Record, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if _, err := s.typeByID(ctx, db, typeID); err != nil {
		return nil, err
	}

	rec := &types.Record{
		ID:        generateID(),
		TypeID:    typeID,
		Version:   1,
		Fields:    fields,
		UpdatedAt: time.Now().UTC(),
	}
	raw, err := encodeFields(fields)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO records (record_id, type_id, version, published_version, archived_version, fields, updated_at) VALUES (?, ?, ?, 0, 0, ?, ?)",
		rec.ID, rec.TypeID, rec.Version, raw, rec.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	return rec, nil
}

// Update writes back a full record, guarded by its version: the write only
// applies when the stored version still matches, and bumps it by one.
// Returns ErrVersionConflict when another writer got there first.
func (s *Store) Update(ctx context.Context, rec *types.Record) (*types.Record, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	raw, err := encodeFields(rec.Fields)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		"UPDATE records SET version = version + 1, published_version = ?, archived_version = ?, fields = ?, updated_at = ? WHERE record_id = ? AND version = ?",
		rec.PublishedVersion, rec.ArchivedVersion, raw,
		now.Format(time.RFC3339), rec.ID, rec.Version)
	if err != nil {
		return nil, fmt.Errorf("updating record %s: %w", rec.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating record %s: %w", rec.ID, err)
	}
	if affected == 0 {
		var exists int
		err := db.QueryRowContext(ctx,
			"SELECT 1 FROM records WHERE record_id = ?", rec.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("checking record %s: %w", rec.ID, err)
		}
		return nil, types.ErrVersionConflict
	}

	out := *rec
	out.Version = rec.Version + 1
	out.UpdatedAt = now
	return &out, nil
}

// PutRecord creates or replaces a record as-is, keeping its version
// counters. Used by the seed path and tests; regular writes go through
// Create and Update.
func (s *Store) PutRecord(ctx context.Context, rec *types.Record) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	raw, err := encodeFields(rec.Fields)
	if err != nil {
		return err
	}
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err = db.ExecContext(ctx,
		"INSERT OR REPLACE INTO records (record_id, type_id, version, published_version, archived_version, fields, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.TypeID, rec.Version, rec.PublishedVersion, rec.ArchivedVersion,
		raw, updatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("persisting record %s: %w", rec.ID, err)
	}
	return nil
}

// QueryByBacklink returns the records of parentTypeID holding a link to
// targetID anywhere in their field values, ordered by record id. A LIKE
// pre-filter on the JSON column narrows the scan; the decoded link lists
// give the exact answer.
func (s *Store) QueryByBacklink(ctx context.Context, targetID, parentTypeID string) ([]*types.Record, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	if targetID == "" {
		return nil, types.ErrInvalidID
	}

	pattern := `%"targetId":` + string(mustJSON(targetID)) + `%`
	rows, err := db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE type_id = ? AND fields LIKE ? ORDER BY record_id",
		parentTypeID, pattern)
	if err != nil {
		return nil, fmt.Errorf("querying backlinks for %s: %w", targetID, err)
	}
	defer rows.Close()

	var out []*types.Record
	for rows.Next() {
		rec, err := hydrateRecord(rows)
		if err != nil {
			return nil, err
		}
		if recordLinksTarget(rec, targetID) {
			out = append(out, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backlinks: %w", err)
	}
	return out, nil
}

// recordLinksTarget reports whether any link list in any field/locale of
// rec references targetID.
func recordLinksTarget(rec *types.Record, targetID string) bool {
	for _, byLocale := range rec.Fields {
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
