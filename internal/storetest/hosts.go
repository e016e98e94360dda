package storetest

import (
	"context"
	"sync"

	"github.com/reddishgreen/contentful-unique-references/pkg/types"
)

// Dialogs is a scripted picker and confirmation host. SelectQueue entries
// are consumed in order by SelectRecords; ConfirmQueue entries by Confirm.
// An exhausted queue cancels (nil selection, false answer).
type Dialogs struct {
	SelectQueue  [][]*types.Record
	ConfirmQueue []bool

	// ConfirmErr, when set, is returned by every Confirm call.
	ConfirmErr error

	// Confirms records the options of every Confirm call.
	Confirms []types.ConfirmOptions
}

func (d *Dialogs) SelectRecords(_ context.Context, _ types.SelectOptions) ([]*types.Record, error) {
	if len(d.SelectQueue) == 0 {
		return nil, nil
	}
	sel := d.SelectQueue[0]
	d.SelectQueue = d.SelectQueue[1:]
	return sel, nil
}

func (d *Dialogs) Confirm(_ context.Context, opts types.ConfirmOptions) (bool, error) {
	d.Confirms = append(d.Confirms, opts)
	if d.ConfirmErr != nil {
		return false, d.ConfirmErr
	}
	if len(d.ConfirmQueue) == 0 {
		return false, nil
	}
	ans := d.ConfirmQueue[0]
	d.ConfirmQueue = d.ConfirmQueue[1:]
	return ans, nil
}

// Notifier records every notice raised.
type Notifier struct {
	Successes []string
	Warnings  []string
	Errors    []string
}

func (n *Notifier) Success(msg string) { n.Successes = append(n.Successes, msg) }
func (n *Notifier) Warning(msg string) { n.Warnings = append(n.Warnings, msg) }
func (n *Notifier) Error(msg string)   { n.Errors = append(n.Errors, msg) }

// Navigator records editor navigations.
type Navigator struct {
	Opened []string
}

func (n *Navigator) OpenRecordEditor(_ context.Context, id string, _ bool) error {
	n.Opened = append(n.Opened, id)
	return nil
}

// FieldHost is an in-memory authoritative field value with change
// subscription. SetValue notifies subscribers synchronously, echoing the
// engine's own writes back the way a real host does.
type FieldHost struct {
	mu        sync.Mutex
	value     []types.Link
	listeners []func([]types.Link)

	Field          string
	WorkingLocale  string
	AllowedTypes   []string
	SetValueErr    error
	SetValueCalls  int
	EchoOwnWrites  bool
}

// NewFieldHost returns a host for the given field and locale with an empty
// value.
func NewFieldHost(fieldID, locale string) *FieldHost {
	return &FieldHost{Field: fieldID, WorkingLocale: locale}
}

func (h *FieldHost) Value() []types.Link {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]types.Link, len(h.value))
	copy(out, h.value)
	return out
}

func (h *FieldHost) SetValue(_ context.Context, links []types.Link) error {
	h.mu.Lock()
	h.SetValueCalls++
	if h.SetValueErr != nil {
		err := h.SetValueErr
		h.mu.Unlock()
		return err
	}
	h.value = make([]types.Link, len(links))
	copy(h.value, links)
	echo := h.EchoOwnWrites
	listeners := append([]func([]types.Link){}, h.listeners...)
	val := append([]types.Link{}, h.value...)
	h.mu.Unlock()

	if echo {
		for _, fn := range listeners {
			fn(val)
		}
	}
	return nil
}

// ExternalChange simulates an externally-originated value change.
func (h *FieldHost) ExternalChange(links []types.Link) {
	h.mu.Lock()
	h.value = make([]types.Link, len(links))
	copy(h.value, links)
	listeners := append([]func([]types.Link){}, h.listeners...)
	val := append([]types.Link{}, h.value...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(val)
	}
}

func (h *FieldHost) OnValueChanged(fn func([]types.Link)) func() {
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

func (h *FieldHost) FieldID() string          { return h.Field }
func (h *FieldHost) Locale() string           { return h.WorkingLocale }
func (h *FieldHost) AllowedTypeIDs() []string { return h.AllowedTypes }
