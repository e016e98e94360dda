package types

import "context"

// FieldHost is the boundary to the authoritative field value this engine
// keeps a collection in sync with. The host owns persistence, versioning and
// locale handling; the engine only reads the current value, writes whole
// replacement values, and observes externally-originated changes.
type FieldHost interface {
	// Value returns the current authoritative link list.
	Value() []Link

	// SetValue replaces the authoritative link list. Called on every local
	// collection mutation, with no debouncing.
	SetValue(ctx context.Context, links []Link) error

	// OnValueChanged registers a callback fired whenever the field value
	// changes, including echoes of this engine's own writes. The returned
	// function unsubscribes.
	OnValueChanged(fn func(links []Link)) (unsubscribe func())

	// FieldID identifies the field being edited, used to locate the same
	// field on other parent records during conflict resolution.
	FieldID() string

	// Locale is the caller's working locale.
	Locale() string

	// AllowedTypeIDs returns the validation allow-list of permitted target
	// type ids, or nil when the field accepts any record type.
	AllowedTypeIDs() []string
}

// SelectOptions constrains the record picker.
type SelectOptions struct {
	// AllowedTypes restricts selectable records to these type descriptors.
	// Empty means unrestricted.
	AllowedTypes []*RecordType
}

// ConfirmOptions describes a yes/no confirmation prompt.
type ConfirmOptions struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
}

// Dialogs is the picker and confirmation host.
type Dialogs interface {
	// SelectRecords opens a multi-select record picker. A nil slice means
	// the user cancelled; an empty slice means nothing was selected.
	SelectRecords(ctx context.Context, opts SelectOptions) ([]*Record, error)

	// Confirm presents a confirmable choice and reports the user's answer.
	Confirm(ctx context.Context, opts ConfirmOptions) (bool, error)
}

// Navigator opens full record editors outside this component.
type Navigator interface {
	OpenRecordEditor(ctx context.Context, id string, inline bool) error
}

// Notifier raises non-blocking user-visible notices.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}
