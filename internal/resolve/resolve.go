// Package resolve derives presentation data for cached records: a display
// title with graceful fallback, and the lifecycle status.
package resolve

import (
	"context"
	"sort"

	"github.com/reddishgreen/contentful-unique-references/internal/cache"
	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// UntitledFallback is displayed when no title can be derived for a record.
const UntitledFallback = "Untitled"

// Resolver derives titles from records using their type's display field.
type Resolver struct {
	typs *cache.TypeCache
}

// New returns a Resolver reading type descriptors through the given cache.
func New(typs *cache.TypeCache) *Resolver {
	return &Resolver{typs: typs}
}

// Title returns the record's display title in the given locale, falling
// back to the first available locale value and finally to "Untitled". Any
// failure along the way yields the fallback; Title never errors.
func (r *Resolver) Title(ctx context.Context, rec *types.Record, locale string) string {
	if rec == nil {
		return UntitledFallback
	}
	typ, err := r.typs.GetOrFetch(ctx, rec.TypeID)
	if err != nil || typ == nil || typ.DisplayFieldID == "" {
		return UntitledFallback
	}
	byLocale, ok := rec.Fields[typ.DisplayFieldID]
	if !ok || len(byLocale) == 0 {
		return UntitledFallback
	}
	if title := stringValue(byLocale[locale]); title != "" {
		return title
	}
	// First available locale, in stable order.
	locales := make([]string, 0, len(byLocale))
	for loc := range byLocale {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	for _, loc := range locales {
		if title := stringValue(byLocale[loc]); title != "" {
			return title
		}
	}
	return UntitledFallback
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// Status derives the lifecycle status of a record. Total; see
// types.StatusOf.
func (r *Resolver) Status(rec *types.Record) string {
	return types.StatusOf(rec)
}
