package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/service/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DeliveryHandler serves the delivery snapshot and its mutations.
type DeliveryHandler struct {
	store  deliveryStore
	export exporter
	logger logx.Logger
	now    func() time.Time
}

// NewDeliveryHandler wires the store and the XLSX exporter into HTTP handlers.
func NewDeliveryHandler(s deliveryStore, export exporter, logger logx.Logger) *DeliveryHandler {
	logger = logx.OrNop(logger)
	return &DeliveryHandler{store: s, export: export, logger: logger, now: time.Now}
}

// mutationContext detaches a store mutation from the client connection.
// The store bounds it with its own operation timeout.
func mutationContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *DeliveryHandler) writeSnapshot(w http.ResponseWriter, r *http.Request, status int) {
	writeJSON(h.logger, w, r, status, snapshotToDTO(h.store.Snapshot(), h.store.Operations()))
}

// List handles GET /deliveries.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	h.writeSnapshot(w, r, http.StatusOK)
}

const (
	defaultWatchWait = 20 * time.Second
	maxWatchWait     = 25 * time.Second
)

// Watch handles GET /deliveries/watch?wait=20s. It answers with the next
// snapshot change, or 204 when nothing changed within wait.
func (h *DeliveryHandler) Watch(w http.ResponseWriter, r *http.Request) {
	wait := defaultWatchWait
	if raw := r.URL.Query().Get("wait"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid wait")
			return
		}
		wait = min(d, maxWatchWait)
	}

	updates, cancel := h.store.Subscribe()
	defer cancel()
	<-updates // текущее состояние

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case snap, ok := <-updates:
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(h.logger, w, r, http.StatusOK, snapshotToDTO(snap, h.store.Operations()))
	case <-timer.C:
		w.WriteHeader(http.StatusNoContent)
	case <-r.Context().Done():
	}
}

// Get handles GET /deliveries/{id}.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Delivery(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToDTO(d))
}

// Reload handles POST /deliveries/reload.
func (h *DeliveryHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.store.LoadDeliveries(mutationContext(r)); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.writeSnapshot(w, r, http.StatusOK)
}

// Create handles POST /deliveries. The body is either JSON or multipart
// with a JSON "delivery" part and optional media_file and logfile parts.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		req   deliveryRequest
		files store.Attachments
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)
		if err := r.ParseMultipartForm(uploadLimit); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid multipart body")
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		defer closeAttachments(&files)

		if !decodeReader(h.logger, w, r, strings.NewReader(r.FormValue("delivery")), &req) {
			return
		}
		var err error
		if files.MediaFile, err = formAttachment(r, "media_file"); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid media_file")
			return
		}
		if files.LogFile, err = formAttachment(r, "logfile"); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid logfile")
			return
		}
	} else if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	draft, err := req.toDomain("")
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	if err := h.store.CreateDelivery(mutationContext(r), draft, files); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.writeSnapshot(w, r, http.StatusCreated)
}

// formAttachment opens the uploaded file under field. A missing field is
// not an error.
func formAttachment(r *http.Request, field string) (*store.Attachment, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store.Attachment{
		Name:        header.Filename,
		ContentType: partContentType(header),
		Content:     file,
	}, nil
}

func closeAttachments(files *store.Attachments) {
	for _, a := range []*store.Attachment{files.MediaFile, files.LogFile} {
		if a == nil {
			continue
		}
		if c, ok := a.Content.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

func partContentType(h *multipart.FileHeader) string {
	if ct := h.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Update handles PUT /deliveries/{id}: every editable field is written.
func (h *DeliveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}
	d, err := req.toDomain(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	if !d.DepartureTime.IsZero() && !d.DeliveryTime.IsZero() {
		if err := d.ValidateTimes(); err != nil {
			writeStoreError(h.logger, w, r, err)
			return
		}
	}
	if err := h.store.UpdateDelivery(mutationContext(r), d); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.writeSnapshot(w, r, http.StatusOK)
}

// Delete handles DELETE /deliveries/{id}.
func (h *DeliveryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDelivery(mutationContext(r), chi.URLParam(r, "id")); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.writeSnapshot(w, r, http.StatusOK)
}

// Process handles POST /deliveries/{id}/process. The body is optional.
func (h *DeliveryHandler) Process(w http.ResponseWriter, r *http.Request) {
	var fields *store.ProcessFields
	if r.ContentLength != 0 && r.Body != http.NoBody {
		var req processRequest
		if !decodeJSON(h.logger, w, r, &req) {
			return
		}
		var err error
		if fields, err = req.toFields(); err != nil {
			writeStoreError(h.logger, w, r, err)
			return
		}
	}
	if err := h.store.ProcessDelivery(mutationContext(r), chi.URLParam(r, "id"), fields); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.writeSnapshot(w, r, http.StatusOK)
}

// Unprocess handles POST /deliveries/{id}/unprocess.
func (h *DeliveryHandler) Unprocess(w http.ResponseWriter, r *http.Request) {
	if err := h.store.UnprocessDelivery(mutationContext(r), chi.URLParam(r, "id")); err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	h.writeSnapshot(w, r, http.StatusOK)
}

// Export handles GET /export.xlsx.
func (h *DeliveryHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.export == nil {
		writeStoreError(h.logger, w, r, errors.New("export is not configured"))
		return
	}
	list := h.store.Snapshot().Deliveries
	b, err := h.export.Generate(list, h.now())
	if err != nil {
		writeStoreError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="deliveries.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		h.logger.Debug("export write failed", logx.String("request_id", reqID(r.Context())), logx.Err(err))
	}
}
