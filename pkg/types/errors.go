package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed    = errors.New("record store is closed")
	ErrAlreadyOpen    = errors.New("record store is already open")
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Record operation errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrTypeNotFound    = errors.New("record type not found")
	ErrInvalidID       = errors.New("invalid record ID")
	ErrMalformedRecord = errors.New("malformed record")
	ErrVersionConflict = errors.New("record version conflict")
)

// Collection operation errors.
var (
	ErrKeyNotFound   = errors.New("local key not found in collection")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidEdge   = errors.New("invalid edge")
)
