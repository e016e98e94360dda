package types

import "time"

// LinkToEntry is the wire-level reference type for entry links. The
// authoritative field value is an ordered list of links of this type.
const LinkToEntry = "link-to-entry"

// Link is one entry of the authoritative field value: a typed reference to a
// record. Order within the list is significant and persisted.
type Link struct {
	LinkType string `json:"referenceType"`
	TargetID string `json:"targetId"`
}

// NewLink returns an entry link pointing at the given record.
func NewLink(targetID string) Link {
	return Link{LinkType: LinkToEntry, TargetID: targetID}
}

// Fields holds a record's field values keyed by field ID, then by locale.
// Link-list fields hold []Link values; other fields hold whatever the store
// put there and are opaque to the engine except for title display.
type Fields map[string]map[string]any

// Record is the subset of a stored content record this system reads:
// identity, schema type, version counters and localized field values.
// Version counters are 1-based; zero means unset.
type Record struct {
	ID               string
	TypeID           string
	Version          int
	PublishedVersion int
	ArchivedVersion  int
	Fields           Fields
	UpdatedAt        time.Time
}

// Validate checks the invariants every record crossing the store boundary
// must satisfy. Returns ErrMalformedRecord when identity or versioning is
// missing, so callers fail fast instead of propagating partially-typed data.
func (r *Record) Validate() error {
	if r == nil || r.ID == "" || r.TypeID == "" || r.Version < 1 {
		return ErrMalformedRecord
	}
	return nil
}

// LinkList returns the link list stored at the given field and locale.
// The second return is false when the value is absent or not a link list.
func (r *Record) LinkList(fieldID, locale string) ([]Link, bool) {
	if r == nil || r.Fields == nil {
		return nil, false
	}
	byLocale, ok := r.Fields[fieldID]
	if !ok {
		return nil, false
	}
	v, ok := byLocale[locale]
	if !ok {
		return nil, false
	}
	links, ok := v.([]Link)
	return links, ok
}

// SetLinkList replaces the link list at the given field and locale,
// allocating intermediate maps as needed.
func (r *Record) SetLinkList(fieldID, locale string, links []Link) {
	if r.Fields == nil {
		r.Fields = Fields{}
	}
	if r.Fields[fieldID] == nil {
		r.Fields[fieldID] = map[string]any{}
	}
	r.Fields[fieldID][locale] = links
}

// RecordType describes a record schema: its name for presentation and the
// field whose value serves as a record's display title.
type RecordType struct {
	ID             string
	Name           string
	DisplayFieldID string
}

// TargetIDs extracts the ordered target ids from a link list.
func TargetIDs(links []Link) []string {
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.TargetID)
	}
	return ids
}

// LinksFor builds an entry-link list over the given target ids, preserving
// order.
func LinksFor(targetIDs []string) []Link {
	links := make([]Link, 0, len(targetIDs))
	for _, id := range targetIDs {
		links = append(links, NewLink(id))
	}
	return links
}
