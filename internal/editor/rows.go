package editor

import (
	"context"

	"github.com/reddishgreen/contentful-unique-references/internal/collection"
)

// Row placeholders for items whose record is not in the cache yet.
const (
	PlaceholderLoading  = "Loading..."
	PlaceholderNotFound = "Entry not found"
)

// Row is the presentation state of one collection item, recomputed from the
// collection and caches on every render.
type Row struct {
	LocalKey  string
	TargetID  string
	Title     string
	Status    string
	Duplicate bool
	Missing   bool
}

// Rows derives the presentation rows for the current collection. A missing
// cache entry renders as a loading or not-found placeholder instead of
// failing.
func (e *Engine) Rows(ctx context.Context) []Row {
	e.mu.Lock()
	items := e.col.Items()
	e.mu.Unlock()

	dups := collection.Duplicates(items)
	loading := e.records.Loading()

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := Row{
			LocalKey:  it.LocalKey,
			TargetID:  it.TargetID,
			Duplicate: dups[it.LocalKey],
		}
		rec, ok := e.records.Get(it.TargetID)
		if !ok {
			row.Missing = true
			if loading {
				row.Title = PlaceholderLoading
			} else {
				row.Title = PlaceholderNotFound
			}
			rows = append(rows, row)
			continue
		}
		row.Title = e.titles.Title(ctx, rec, e.deps.Field.Locale())
		row.Status = e.titles.Status(rec)
		rows = append(rows, row)
	}
	return rows
}
