package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/service/callback"
)

// CallbackHandler exposes picker results and the create draft to the UI
// shell.
type CallbackHandler struct {
	store  callbackStore
	logger logx.Logger
}

// NewCallbackHandler wires the store's callback board and draft holder.
func NewCallbackHandler(s callbackStore, logger logx.Logger) *CallbackHandler {
	logger = logx.OrNop(logger)
	return &CallbackHandler{store: s, logger: logger}
}

// Put handles PUT /callbacks/{key}. Any JSON value is accepted.
func (h *CallbackHandler) Put(w http.ResponseWriter, r *http.Request) {
	var v json.RawMessage
	if !decodeJSON(h.logger, w, r, &v) {
		return
	}
	h.store.SetCallbackResult(chi.URLParam(r, "key"), v)
	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /callbacks/{key}.
func (h *CallbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, ok := h.store.CallbackResult(chi.URLParam(r, "key"))
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "no callback result")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, v)
}

// Delete handles DELETE /callbacks/{key}.
func (h *CallbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCallbackResult(chi.URLParam(r, "key"))
	w.WriteHeader(http.StatusNoContent)
}

// PutDraft handles PUT /draft.
func (h *CallbackHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	d, err := req.toDomain("")
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.store.SetDraft(d)
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}

// GetDraft handles GET /draft.
func (h *CallbackHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := h.store.Draft()
	if !ok {
		writeError(h.logger, w, r, http.StatusNotFound, "no draft")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}

// DeleteDraft handles DELETE /draft.
func (h *CallbackHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	h.store.ClearDraft()
	w.WriteHeader(http.StatusNoContent)
}

type pickedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (p pickedRef) valid() bool {
	return p.ID > 0 && strings.TrimSpace(p.Name) != ""
}

type pickedLocation struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

type pickedTimes struct {
	Departure time.Time `json:"departure_time"`
	Delivery  time.Time `json:"delivery_time"`
}

// PutPicker handles PUT /pickers/{picker}. The result waits on the board
// until POST /draft/pickers moves it onto the draft.
func (h *CallbackHandler) PutPicker(w http.ResponseWriter, r *http.Request) {
	board := h.store.Callbacks()
	invalid := func(msg string) {
		writeStoreError(h.logger, w, r, fmt.Errorf("%w: %s", apperr.ErrInvalid, msg))
	}

	switch chi.URLParam(r, "picker") {
	case "vehicle":
		var v pickedRef
		if !decodeJSON(h.logger, w, r, &v) {
			return
		}
		if !v.valid() {
			invalid("vehicle needs id and name")
			return
		}
		callback.Put(board, callback.VehicleSelect, domain.TransportModel{ID: v.ID, Name: v.Name})
	case "package":
		var v pickedRef
		if !decodeJSON(h.logger, w, r, &v) {
			return
		}
		if !v.valid() {
			invalid("package needs id and name")
			return
		}
		callback.Put(board, callback.PackageSelect, domain.PackageType{ID: v.ID, Name: v.Name})
	case "services":
		var v []pickedRef
		if !decodeJSON(h.logger, w, r, &v) {
			return
		}
		services := make([]domain.Service, 0, len(v))
		seen := make(map[int64]struct{}, len(v))
		for _, p := range v {
			if !p.valid() {
				invalid("service needs id and name")
				return
			}
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			services = append(services, domain.Service{ID: p.ID, Name: p.Name})
		}
		callback.Put(board, callback.ServicesSelect, services)
	case "location":
		var v pickedLocation
		if !decodeJSON(h.logger, w, r, &v) {
			return
		}
		if v.DistanceKm < 0 {
			invalid("distance must not be negative")
			return
		}
		callback.Put(board, callback.LocationSelect, callback.LocationSelection(v))
	case "time":
		var v pickedTimes
		if !decodeJSON(h.logger, w, r, &v) {
			return
		}
		d := domain.Delivery{DepartureTime: v.Departure, DeliveryTime: v.Delivery}
		if err := d.ValidateTimes(); err != nil {
			writeStoreError(h.logger, w, r, err)
			return
		}
		callback.Put(board, callback.TimeSelect, callback.TimeSelection(v))
	default:
		writeError(h.logger, w, r, http.StatusNotFound, "unknown picker")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyPickers handles POST /draft/pickers. Pending picker results are
// moved onto the draft, which is created when missing.
func (h *CallbackHandler) ApplyPickers(w http.ResponseWriter, r *http.Request) {
	d, _ := h.store.Draft()
	if callback.Apply(h.store.Callbacks(), &d) {
		h.store.SetDraft(d)
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}
