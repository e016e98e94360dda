// Collaborator implementations backing the engine when driven from the
// terminal: a field host persisting into the parent record, a picker fed by
// command arguments, stdin confirmation, and stdout notices.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/reddishgreen/contentful-unique-references/internal/sqlite"
	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// storeFieldHost keeps the authoritative field value inside the parent
// record of the local store. External change notifications do not occur
// within a single CLI invocation; the subscription exists to satisfy the
// engine's contract.
type storeFieldHost struct {
	store    *sqlite.Store
	parentID string
	fieldID  string
	locale   string
	allowed  []string

	mu        sync.Mutex
	listeners []func([]types.Link)
}

func (h *storeFieldHost) Value() []types.Link {
	rec, err := h.store.GetOne(context.Background(), h.parentID)
	if err != nil {
		return nil
	}
	links, _ := rec.LinkList(h.fieldID, h.locale)
	return links
}

func (h *storeFieldHost) SetValue(ctx context.Context, links []types.Link) error {
	rec, err := h.store.GetOne(ctx, h.parentID)
	if err != nil {
		return fmt.Errorf("load parent: %w", err)
	}
	rec.SetLinkList(h.fieldID, h.locale, links)
	if _, err := h.store.Update(ctx, rec); err != nil {
		return fmt.Errorf("save parent: %w", err)
	}
	return nil
}

func (h *storeFieldHost) OnValueChanged(fn func([]types.Link)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
	i := len(h.listeners) - 1
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.listeners[i] = func([]types.Link) {}
	}
}

func (h *storeFieldHost) FieldID() string          { return h.fieldID }
func (h *storeFieldHost) Locale() string           { return h.locale }
func (h *storeFieldHost) AllowedTypeIDs() []string { return h.allowed }

// argDialogs implements the picker from command-line arguments and the move
// confirmation from stdin. --yes answers every confirmation with "move".
type argDialogs struct {
	store     *sqlite.Store
	selectIDs []string
	assumeYes bool
	in        io.Reader
	out       io.Writer
}

// SelectRecords resolves the ids given on the command line, restricted to
// the allowed types the way a picker dialog would be.
func (d *argDialogs) SelectRecords(ctx context.Context, opts types.SelectOptions) ([]*types.Record, error) {
	if len(d.selectIDs) == 0 {
		return nil, nil
	}
	recs, err := d.store.GetMany(ctx, d.selectIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*types.Record, len(recs))
	for _, r := range recs {
		byID[r.ID] = r
	}

	allowed := make(map[string]bool, len(opts.AllowedTypes))
	for _, t := range opts.AllowedTypes {
		allowed[t.ID] = true
	}

	out := make([]*types.Record, 0, len(d.selectIDs))
	for _, id := range d.selectIDs {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, id)
		}
		if len(allowed) > 0 && !allowed[rec.TypeID] {
			return nil, fmt.Errorf("record %s has type %s, which this field does not accept", id, rec.TypeID)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Confirm prompts on stdin unless --yes was given.
func (d *argDialogs) Confirm(_ context.Context, opts types.ConfirmOptions) (bool, error) {
	if d.assumeYes {
		return true, nil
	}
	fmt.Fprintf(d.out, "%s\n%s [%s/%s]: ", opts.Title, opts.Message,
		strings.ToLower(opts.ConfirmLabel), strings.ToLower(opts.CancelLabel))
	scanner := bufio.NewScanner(d.in)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	switch answer {
	case "y", "yes", "m", "move", strings.ToLower(opts.ConfirmLabel):
		return true, nil
	default:
		return false, nil
	}
}

// stdNotifier prints notices to stdout, errors to stderr.
type stdNotifier struct{}

func (stdNotifier) Success(msg string) { fmt.Println(msg) }
func (stdNotifier) Warning(msg string) { fmt.Println("Warning:", msg) }
func (stdNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "Error:", msg) }

// printNavigator stands in for the host application's editor navigation.
type printNavigator struct{}

func (printNavigator) OpenRecordEditor(_ context.Context, id string, _ bool) error {
	fmt.Printf("Open the entry editor for %s in the host application.\n", id)
	return nil
}
