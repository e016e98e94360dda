// Package sqlite implements the record store and type registry over a local
// SQLite database. Field values are stored as JSON per record; link lists
// are recovered into typed form on hydration.
package sqlite

// Schema DDL for the records and record_types tables.
const (
	createRecords = `CREATE TABLE IF NOT EXISTS records (
    record_id TEXT PRIMARY KEY,
    type_id TEXT NOT NULL,
    version INTEGER NOT NULL,
    published_version INTEGER NOT NULL DEFAULT 0,
    archived_version INTEGER NOT NULL DEFAULT 0,
    fields TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRecordTypes = `CREATE TABLE IF NOT EXISTS record_types (
    type_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    display_field_id TEXT NOT NULL DEFAULT ''
);`

	createRecordsTypeIndex = `CREATE INDEX IF NOT EXISTS idx_records_type
    ON records(type_id);`
)

// schemaStatements lists the DDL executed on Open, in order.
var schemaStatements = []string{
	createRecords,
	createRecordTypes,
	createRecordsTypeIndex,
}
