// Package conflict implements cross-parent conflict resolution for
// candidate records being added to a link collection: a record already
// linked from a different parent through the same field can be moved to the
// new parent, with user confirmation, or skipped.
package conflict

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// TitleFunc resolves a display title for a record. Must never fail; callers
// pass the resolve package's Title with a fallback.
type TitleFunc func(ctx context.Context, rec *types.Record, locale string) string

// Params identifies the parent record and field the candidates are being
// added to.
type Params struct {
	ParentID     string
	ParentTypeID string
	FieldID      string
	Locale       string
}

// Resolution is the outcome of resolving a batch of candidates.
type Resolution struct {
	// Add lists the target ids cleared for addition, in candidate order:
	// unconflicted candidates plus confirmed, successfully moved ones.
	Add []string

	// DuplicatesSkipped counts candidates dropped because they were already
	// present in the current collection.
	DuplicatesSkipped int

	Moved        int
	Declined     int
	MoveFailures int
}

// Resolver orchestrates user-confirmed move-or-skip resolution.
type Resolver struct {
	store    types.RecordStore
	dialogs  types.Dialogs
	notifier types.Notifier
	title    TitleFunc
	log      *slog.Logger
}

// New returns a Resolver over the given collaborators.
func New(store types.RecordStore, dialogs types.Dialogs, notifier types.Notifier, title TitleFunc, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{store: store, dialogs: dialogs, notifier: notifier, title: title, log: log}
}

// Resolve processes the selected candidates sequentially against the current
// collection targets and returns the additions cleared for a single append.
// Candidates already present in the collection are rejected outright; a
// candidate linked from another parent of the same type through the same
// field triggers a per-candidate move-or-skip confirmation. Notices for the
// batch are raised here.
func (r *Resolver) Resolve(ctx context.Context, p Params, currentTargets []string, candidates []*types.Record) Resolution {
	var res Resolution
	if len(candidates) == 0 {
		return res
	}

	current := make(map[string]bool, len(currentTargets))
	for _, id := range currentTargets {
		current[id] = true
	}

	var remaining []*types.Record
	for _, cand := range candidates {
		if current[cand.ID] {
			res.DuplicatesSkipped++
			continue
		}
		remaining = append(remaining, cand)
	}

	if len(remaining) == 0 {
		r.notifier.Warning("All selected entries are already linked here.")
		return res
	}

	// One candidate at a time: overlapping confirmation prompts are worse
	// than a slower batch.
	for _, cand := range remaining {
		other := r.findLinkingParent(ctx, p, cand.ID)
		if other == nil {
			res.Add = append(res.Add, cand.ID)
			continue
		}
		r.resolveMove(ctx, p, cand, other, &res)
	}

	if res.DuplicatesSkipped > 0 && res.Moved == 0 && res.Declined == 0 && res.MoveFailures == 0 {
		r.notifier.Warning("Some selected entries were already linked here and were skipped.")
	}
	return res
}

// findLinkingParent returns the first other record of the parent's type that
// links targetID through the same field in any locale, or nil when there is
// none. A failed conflict search counts as no conflict: availability over
// strict prevention.
func (r *Resolver) findLinkingParent(ctx context.Context, p Params, targetID string) *types.Record {
	others, err := r.store.QueryByBacklink(ctx, targetID, p.ParentTypeID)
	if err != nil {
		r.log.Error("conflict search failed", "target", targetID, "err", err)
		return nil
	}
	for _, other := range others {
		if other.ID == p.ParentID {
			continue
		}
		if holdsLinkInField(other, p.FieldID, targetID) {
			// First match wins; further linking parents are not
			// disambiguated.
			return other
		}
	}
	return nil
}

// holdsLinkInField reports whether rec links targetID through fieldID in any
// locale.
func holdsLinkInField(rec *types.Record, fieldID, targetID string) bool {
	byLocale, ok := rec.Fields[fieldID]
	if !ok {
		return false
	}
	for _, v := range byLocale {
		links, ok := v.([]types.Link)
		if !ok {
			continue
		}
		for _, l := range links {
			if l.TargetID == targetID {
				return true
			}
		}
	}
	return false
}

// resolveMove runs the confirmation dialog for one conflicted candidate and,
// when confirmed, removes the reference from the other parent before
// clearing the candidate for addition. The candidate is never added without
// the removal having been written back first.
func (r *Resolver) resolveMove(ctx context.Context, p Params, cand, other *types.Record, res *Resolution) {
	candTitle := r.title(ctx, cand, p.Locale)
	otherTitle := r.title(ctx, other, p.Locale)

	confirmed, err := r.dialogs.Confirm(ctx, types.ConfirmOptions{
		Title: "Entry already linked",
		Message: fmt.Sprintf("%q is already linked from %q. Move it here instead?",
			candTitle, otherTitle),
		ConfirmLabel: "Move",
		CancelLabel:  "Skip",
	})
	if err != nil {
		// A broken dialog is a decline, not a batch abort.
		r.log.Error("move confirmation failed", "target", cand.ID, "err", err)
		confirmed = false
	}
	if !confirmed {
		res.Declined++
		return
	}

	if err := r.unlinkFromParent(ctx, other.ID, p.FieldID, cand.ID); err != nil {
		r.log.Error("unlink from previous parent failed",
			"target", cand.ID, "parent", other.ID, "err", err)
		r.notifier.Error(fmt.Sprintf("Could not move %q from %q.", candTitle, otherTitle))
		res.MoveFailures++
		return
	}

	res.Add = append(res.Add, cand.ID)
	res.Moved++
	r.notifier.Success(fmt.Sprintf("Moved %q from %q.", candTitle, otherTitle))
}

// unlinkFromParent filters targetID out of every locale of fieldID on the
// current version of the parent record and writes it back. Fetching fresh
// rather than reusing the queried copy keeps concurrent edits to other
// fields intact.
func (r *Resolver) unlinkFromParent(ctx context.Context, parentID, fieldID, targetID string) error {
	fresh, err := r.store.GetOne(ctx, parentID)
	if err != nil {
		return fmt.Errorf("fetch current parent: %w", err)
	}
	byLocale, ok := fresh.Fields[fieldID]
	if ok {
		for locale, v := range byLocale {
			links, isLinks := v.([]types.Link)
			if !isLinks {
				continue
			}
			kept := make([]types.Link, 0, len(links))
			for _, l := range links {
				if l.TargetID != targetID {
					kept = append(kept, l)
				}
			}
			byLocale[locale] = kept
		}
	}
	if _, err := r.store.Update(ctx, fresh); err != nil {
		return fmt.Errorf("write back parent: %w", err)
	}
	return nil
}
