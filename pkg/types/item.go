package types

// ReferenceItem is a local, identity-bearing wrapper around one link in the
// collection. LocalKey gives list entries stable identity across reorders
// even when target ids repeat; it is minted per item and never persisted.
type ReferenceItem struct {
	LocalKey string
	TargetID string
}
