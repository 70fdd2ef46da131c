package callback

import (
	"sync"

	"field-delivery-sync/internal/domain"
)

// Drafts holds the single in-progress create draft.
type Drafts struct {
	mu    sync.Mutex
	draft *domain.Delivery
}

// NewDrafts returns an empty holder.
func NewDrafts() *Drafts {
	return &Drafts{}
}

// Set replaces the draft with a copy of d.
func (h *Drafts) Set(d domain.Delivery) {
	c := d.Clone()
	h.mu.Lock()
	h.draft = &c
	h.mu.Unlock()
}

// Get returns a copy of the draft.
func (h *Drafts) Get() (domain.Delivery, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.draft == nil {
		return domain.Delivery{}, false
	}
	return h.draft.Clone(), true
}

// Clear drops the draft.
func (h *Drafts) Clear() {
	h.mu.Lock()
	h.draft = nil
	h.mu.Unlock()
}
