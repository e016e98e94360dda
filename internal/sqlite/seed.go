// This file implements demo-data seeding for the CLI seed command, so a
// fresh store has types and records to link against.
package sqlite

import (
	"context"
	"fmt"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// seedType describes a record type seeded into a fresh store.
type seedType struct {
	id           string
	name         string
	displayField string
}

// seedRecord describes a record seeded into a fresh store.
type seedRecord struct {
	id        string
	typeID    string
	title     string
	locale    string
	version   int
	published int
}

var seedTypes = []seedType{
	{"page", "Page", "title"},
	{"article", "Article", "title"},
	{"author", "Author", "name"},
}

var seedRecords = []seedRecord{
	{"page-home", "page", "Home", "en-US", 1, 0},
	{"page-about", "page", "About", "en-US", 1, 0},
	{"article-go", "article", "Why Go", "en-US", 2, 1},
	{"article-sync", "article", "Keeping lists in sync", "en-US", 1, 0},
	{"article-conflict", "article", "One parent per reference", "en-US", 4, 1},
}

// Seed populates the store with the demo types and records. Existing
// entries with the same ids are replaced; everything else is untouched.
func (s *Store) Seed(ctx context.Context) error {
	tt := s.Types()
	for _, st := range seedTypes {
		err := tt.Put(ctx, &types.RecordType{
			ID: st.id, Name: st.name, DisplayFieldID: st.displayField,
		})
		if err != nil {
			return fmt.Errorf("seed type %s: %w", st.id, err)
		}
	}
	for _, sr := range seedRecords {
		displayField := "title"
		if sr.typeID == "author" {
			displayField = "name"
		}
		rec := &types.Record{
			ID:               sr.id,
			TypeID:           sr.typeID,
			Version:          sr.version,
			PublishedVersion: sr.published,
			Fields:           types.Fields{displayField: {sr.locale: sr.title}},
		}
		if err := s.PutRecord(ctx, rec); err != nil {
			return fmt.Errorf("seed record %s: %w", sr.id, err)
		}
	}
	return nil
}
