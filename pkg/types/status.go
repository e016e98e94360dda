package types

// Lifecycle statuses derived from a record's version counters.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusChanged   = "changed"
	StatusArchived  = "archived"
)

// StatusOf derives the lifecycle status of a record from its version
// counters. Archival wins over publication. A record is "published" only
// when no edits followed the last publish, which the store records as
// current version == published version + 1; anything beyond that is
// "changed". This is a total function.
func StatusOf(r *Record) string {
	if r.ArchivedVersion > 0 {
		return StatusArchived
	}
	if r.PublishedVersion > 0 {
		if r.Version > r.PublishedVersion+1 {
			return StatusChanged
		}
		return StatusPublished
	}
	return StatusDraft
}
