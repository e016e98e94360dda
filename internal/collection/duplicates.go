package collection

import "github.com/reddishgreen/contentful-unique-references/pkg/types"

// Duplicates returns the local keys of items whose target id already
// occurred earlier in the collection. The first occurrence of a repeated
// target is never flagged. Pure function of the snapshot, O(n).
func Duplicates(items []types.ReferenceItem) map[string]bool {
	flagged := make(map[string]bool)
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.TargetID] {
			flagged[it.LocalKey] = true
			continue
		}
		seen[it.TargetID] = true
	}
	return flagged
}
