package ui

import (
	"context"
	"sync"
)

type ConfirmVariant string

const (
	VariantPrimary ConfirmVariant = "primary"
	VariantDanger  ConfirmVariant = "danger"
	VariantWarning ConfirmVariant = "warning"
)

type ConfirmOptions struct {
	Title          string
	Message        string
	ConfirmText    string
	CancelText     string
	ConfirmVariant ConfirmVariant
	Icon           string
}

func (o ConfirmOptions) withDefaults() ConfirmOptions {
	if o.ConfirmText == "" {
		o.ConfirmText = "Confirm"
	}
	if o.CancelText == "" {
		o.CancelText = "Cancel"
	}
	if o.ConfirmVariant == "" {
		o.ConfirmVariant = VariantPrimary
	}
	return o
}

type ConfirmState struct {
	Open    bool
	Options *ConfirmOptions
}

// ConfirmDialog is a single confirm prompt. Confirm hands back a channel
// that receives exactly one answer.
type ConfirmDialog struct {
	mu      sync.Mutex
	open    bool
	options *ConfirmOptions
	pending chan bool
}

func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{}
}

// Confirm opens the dialog. A prompt that is still pending is answered
// with false first.
func (c *ConfirmDialog) Confirm(opts ConfirmOptions) <-chan bool {
	ch := make(chan bool, 1)
	opts = opts.withDefaults()

	c.mu.Lock()
	if c.pending != nil {
		c.pending <- false
	}
	c.pending = ch
	c.options = &opts
	c.open = true
	c.mu.Unlock()

	return ch
}

func (c *ConfirmDialog) HandleConfirm() {
	c.resolve(true)
}

func (c *ConfirmDialog) HandleCancel() {
	c.resolve(false)
}

func (c *ConfirmDialog) resolve(answer bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending <- answer
	}
	c.pending = nil
	c.options = nil
	c.open = false
}

// Ask blocks until the dialog is answered. Cancelling ctx answers false.
func (c *ConfirmDialog) Ask(ctx context.Context, opts ConfirmOptions) (bool, error) {
	ch := c.Confirm(opts)
	select {
	case answer := <-ch:
		return answer, nil
	case <-ctx.Done():
		c.mu.Lock()
		if c.pending == ch {
			c.pending = nil
			c.options = nil
			c.open = false
		}
		c.mu.Unlock()
		return false, ctx.Err()
	}
}

func (c *ConfirmDialog) State() ConfirmState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := ConfirmState{Open: c.open}
	if c.options != nil {
		o := *c.options
		st.Options = &o
	}
	return st
}
