// Package mapper converts backend delivery records into domain view models.
package mapper

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/logx"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

const defaultMIME = "application/octet-stream"

// Mapper converts backend records. It holds no state besides the logger.
type Mapper struct {
	logger logx.Logger
}

// New returns a Mapper.
func New(logger logx.Logger) *Mapper {
	logger = logx.OrNop(logger)
	return &Mapper{logger: logger}
}

// ToDeliveries converts a full collection. A single bad record fails the
// whole batch so callers never hold a partial list.
func (m *Mapper) ToDeliveries(recs []backend.Delivery) ([]domain.Delivery, error) {
	out := make([]domain.Delivery, 0, len(recs))
	for _, rec := range recs {
		d, err := m.ToDelivery(rec)
		if err != nil {
			m.logger.Error("map delivery",
				logx.Int64("delivery_id", rec.ID),
				logx.Err(err),
			)
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// ToDelivery converts a single record, filling documented defaults for
// missing relations.
func (m *Mapper) ToDelivery(rec backend.Delivery) (domain.Delivery, error) {
	d := domain.Delivery{
		ID:               strconv.FormatInt(rec.ID, 10),
		VehicleNumber:    rec.TransportNumber,
		TechnicalState:   rec.TechnicalCondition,
		CollectorComment: rec.Description,
		IsProcessed:      rec.IsProcessed,
		CollectorName: domain.CollectorName{
			FirstName: rec.CollectorName,
			Surname:   rec.CollectorSurname,
			LastName:  rec.CollectorLastname,
		},
		LogFile:   FileFromURL(rec.Logfile),
		MediaFile: FileFromURL(rec.MediaFile),
	}
	if d.TechnicalState == "" {
		d.TechnicalState = domain.DefaultTechnicalState
	}
	d.CollectorNameDisplay = d.CollectorName.Display()

	if rec.TransportModel != nil {
		d.VehicleModel = rec.TransportModel.Name
	}
	if rec.PackageType != nil {
		d.PackageType = rec.PackageType.Name
	}
	if rec.Status != nil {
		d.Status = rec.Status.Name
	}
	if rec.Location != nil {
		d.FromLocation = rec.Location.LocationFrom
		d.ToLocation = rec.Location.LocationTo
		if km := rec.Location.DistanceKm.Float64(); km > 0 {
			d.Distance = km
		}
	}
	d.Services = services(rec.Services)

	var err error
	if d.DepartureTime, err = parseTimestamp(rec.DepartureTime); err != nil {
		return domain.Delivery{}, fmt.Errorf("delivery %d departure_time: %w", rec.ID, err)
	}
	if d.DeliveryTime, err = parseTimestamp(rec.DeliveryTime); err != nil {
		return domain.Delivery{}, fmt.Errorf("delivery %d delivery_time: %w", rec.ID, err)
	}
	if rec.TravelTime != "" {
		if d.Duration, err = domain.ParseTravelTime(rec.TravelTime); err != nil {
			return domain.Delivery{}, fmt.Errorf("delivery %d: %w", rec.ID, err)
		}
	}
	return d, nil
}

func services(in []backend.Service) []domain.Service {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(in))
	out := make([]domain.Service, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s.ToDomain())
	}
	return out
}

// localTimestamp is the ISO form without a zone offset, sent by backends
// that store naive datetimes. It is read in the local zone.
const localTimestamp = "2006-01-02T15:04:05.999999999"

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localTimestamp, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", apperr.ErrInvalid, s)
	}
	return t, nil
}

// FileFromURL derives the attachment name and MIME type from a remote URL.
// It returns nil for an empty URL.
func FileFromURL(raw string) *domain.FileInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "." || name == "/" {
		name = ""
	}
	mime, ok := mimeByExt[strings.ToLower(path.Ext(name))]
	if !ok {
		mime = defaultMIME
	}
	return &domain.FileInfo{Name: name, URI: raw, Type: mime}
}
