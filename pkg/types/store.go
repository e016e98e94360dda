package types

import "context"

// RecordStore provides access to the content store's records. Implementations
// must return ErrNotFound for missing ids and ErrMalformedRecord for data
// failing Record.Validate at the boundary.
type RecordStore interface {
	// GetMany retrieves the records with the given ids in a single bulk
	// lookup. Missing ids are omitted from the result, not an error.
	GetMany(ctx context.Context, ids []string) ([]*Record, error)

	// GetOne retrieves the current version of a single record.
	GetOne(ctx context.Context, id string) (*Record, error)

	// Create stores a new record of the given type with the given initial
	// field values and returns it with identity and versioning assigned.
	Create(ctx context.Context, typeID string, fields Fields) (*Record, error)

	// Update writes back a full record. The record's Version must match the
	// stored version; on success the returned record carries the bumped
	// version. Returns ErrVersionConflict when another writer got there
	// first.
	Update(ctx context.Context, rec *Record) (*Record, error)

	// QueryByBacklink returns the records of parentTypeID that hold a link
	// to targetID anywhere in their field values. Result order is stable
	// for a given store state.
	QueryByBacklink(ctx context.Context, targetID, parentTypeID string) ([]*Record, error)
}

// TypeRegistry provides access to record type descriptors.
type TypeRegistry interface {
	// GetMany retrieves the descriptors for the given type ids in one bulk
	// lookup. Missing ids are omitted.
	GetMany(ctx context.Context, ids []string) ([]*RecordType, error)

	// GetOne retrieves a single type descriptor.
	GetOne(ctx context.Context, id string) (*RecordType, error)

	// All enumerates up to limit type descriptors.
	All(ctx context.Context, limit int) ([]*RecordType, error)
}
