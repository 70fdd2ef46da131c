package backend

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

// Attachment is a file uploaded with a new delivery.
type Attachment struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// CreateDeliveryForm is the multipart body of POST /api/deliveries/.
// Zero IDs and empty strings are not sent.
type CreateDeliveryForm struct {
	TransportModelID   int64
	TransportNumber    string
	PackageTypeID      int64
	ServiceIDs         []int64
	StatusID           int64
	CargoTypeID        int64
	TechnicalCondition string
	LocationFrom       string
	LocationTo         string
	DistanceKm         float64
	DepartureTime      time.Time
	DeliveryTime       time.Time
	TravelTime         string
	Description        string
	CollectorName      string
	CollectorSurname   string
	CollectorLastname  string
	IsProcessed        bool
	MediaFile          *Attachment
	LogFile            *Attachment
}

// FormatTimestamp renders t the way the backend expects timestamps:
// UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func (f CreateDeliveryForm) encode(w *multipart.Writer) error {
	fields := []struct {
		name  string
		value string
	}{
		{"transport_model_id", formatID(f.TransportModelID)},
		{"transport_number", f.TransportNumber},
		{"package_type_id", formatID(f.PackageTypeID)},
		{"status_id", formatID(f.StatusID)},
		{"cargo_type_id", formatID(f.CargoTypeID)},
		{"technical_condition", f.TechnicalCondition},
		{"location.location_from", f.LocationFrom},
		{"location.location_to", f.LocationTo},
		{"location.distance_km", strconv.FormatFloat(f.DistanceKm, 'f', 2, 64)},
		{"departure_time", formatTime(f.DepartureTime)},
		{"delivery_time", formatTime(f.DeliveryTime)},
		{"travel_time", f.TravelTime},
		{"description", f.Description},
		{"collector_name", f.CollectorName},
		{"collector_surname", f.CollectorSurname},
		{"collector_lastname", f.CollectorLastname},
		{"is_processed", strconv.FormatBool(f.IsProcessed)},
	}
	for _, fld := range fields {
		if fld.value == "" {
			continue
		}
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return err
		}
	}
	for _, id := range f.ServiceIDs {
		if err := w.WriteField("services_ids", strconv.FormatInt(id, 10)); err != nil {
			return err
		}
	}
	if err := writeAttachment(w, "media_file", f.MediaFile); err != nil {
		return err
	}
	return writeAttachment(w, "logfile", f.LogFile)
}

func writeAttachment(w *multipart.Writer, field string, a *Attachment) error {
	if a == nil || a.Content == nil {
		return nil
	}
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(field), quoteEscaper.Replace(a.Name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, a.Content); err != nil {
		return fmt.Errorf("copy %s: %w", field, err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FormatTimestamp(t)
}
