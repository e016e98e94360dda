// Package refresh tracks whether the user was sent away to edit or create a
// linked record, so the engine can resynchronize exactly once on return.
package refresh

import "sync"

// Controller is a single-flight pending flag. MarkPending is called before
// navigating away; Consume is called by each return trigger (pointer
// re-entry, window focus) and reports true for exactly one of them.
type Controller struct {
	mu      sync.Mutex
	pending bool
}

// New returns a Controller with no pending refresh.
func New() *Controller {
	return &Controller{}
}

// MarkPending arms the controller. Calling it while already armed keeps a
// single pending refresh.
func (c *Controller) MarkPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = true
}

// Consume disarms the controller and reports whether it was armed. Two
// triggers firing in sequence get true then false, so only one resync runs
// per navigation.
func (c *Controller) Consume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.pending
	c.pending = false
	return was
}

// Pending reports the armed state without consuming it.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}
