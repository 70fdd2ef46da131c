package handlers

import (
	"net/http"

	"field-delivery-sync/internal/logx"
)

// AuthHandler serves login, logout and the credential status.
type AuthHandler struct {
	auth   authenticator
	store  deliveryStore
	logger logx.Logger
}

// NewAuthHandler wires the backend authenticator and the store.
func NewAuthHandler(auth authenticator, s deliveryStore, logger logx.Logger) *AuthHandler {
	logger = logx.OrNop(logger)
	return &AuthHandler{auth: auth, store: s, logger: logger}
}

// Login handles POST /auth/login. A successful login triggers the initial
// load; its failure is reported through the snapshot error, not here.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	ctx := mutationContext(r)
	if err := h.auth.Login(ctx, req.Username, req.Password); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	if err := h.store.Initialize(ctx); err != nil {
		h.logger.Warn("initial load after login failed",
			logx.String("request_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
	writeJSON(h.logger, w, r, http.StatusOK, authStatusDTO{Authenticated: true})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(mutationContext(r)); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status handles GET /auth/status.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	ok, err := h.auth.IsAuthenticated(r.Context())
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, authStatusDTO{Authenticated: ok})
}
