package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// encodeFields serializes field values to the JSON column representation.
// Link lists marshal to their wire shape ({referenceType, targetId}).
func encodeFields(fields types.Fields) (string, error) {
	if fields == nil {
		fields = types.Fields{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encoding fields: %w", err)
	}
	return string(raw), nil
}

// decodeFields parses the JSON column back into field values, recovering
// link lists into []types.Link so the engine sees typed references.
func decodeFields(raw string) (types.Fields, error) {
	var fields types.Fields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}
	for _, byLocale := range fields {
		for locale, v := range byLocale {
			if links, ok := asLinkList(v); ok {
				byLocale[locale] = links
			}
		}
	}
	return fields, nil
}

// mustJSON encodes a string as a JSON literal, for building LIKE patterns
// that match the stored column representation.
func mustJSON(s string) []byte {
	raw, err := json.Marshal(s)
	if err != nil {
		return []byte(`""`)
	}
	return raw
}

// asLinkList recognizes a decoded JSON array whose elements all carry the
// entry-link wire shape. Empty arrays are ambiguous and stay untyped.
func asLinkList(v any) ([]types.Link, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, false
	}
	links := make([]types.Link, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, false
		}
		linkType, ok := m["referenceType"].(string)
		if !ok || linkType != types.LinkToEntry {
			return nil, false
		}
		targetID, ok := m["targetId"].(string)
		if !ok {
			return nil, false
		}
		links = append(links, types.Link{LinkType: linkType, TargetID: targetID})
	}
	return links, true
}
