package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/service/reference"
)

// ReferenceHandler serves the backend reference lists.
type ReferenceHandler struct {
	refs   referenceLister
	logger logx.Logger
}

// NewReferenceHandler wires the reference service into HTTP handlers.
func NewReferenceHandler(refs referenceLister, logger logx.Logger) *ReferenceHandler {
	logger = logx.OrNop(logger)
	return &ReferenceHandler{refs: refs, logger: logger}
}

// List handles GET /reference/{kind}.
func (h *ReferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.refs.List(r.Context(), reference.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	out, err := referenceToDTO(list)
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// ServiceGroups handles GET /reference/service-groups.
func (h *ReferenceHandler) ServiceGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.refs.ServicesByCategory(r.Context())
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, serviceGroupsToDTO(groups))
}
