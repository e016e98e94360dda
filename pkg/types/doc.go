// Package types defines the record and reference entity types, the
// collaborator interfaces (record store, type registry, field host, dialogs,
// navigator, notifier), and the standard error values shared by the
// unique-references engine and its backends.
package types
