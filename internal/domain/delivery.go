package domain

import (
	"fmt"
	"time"

	"field-delivery-sync/internal/apperr"
)

// DefaultTechnicalState is assumed when the server omits the technical condition.
const DefaultTechnicalState = "Исправно"

// FileInfo describes an attached file. URI is a remote URL after load and a
// local path before upload.
type FileInfo struct {
	Name string
	URI  string
	Type string
}

// Delivery is the client view of a single courier trip.
type Delivery struct {
	ID                   string
	VehicleModel         string
	VehicleNumber        string
	DepartureTime        time.Time
	DeliveryTime         time.Time
	Duration             int // minutes
	Distance             float64
	Services             []Service
	PackageType          string
	Status               string
	FromLocation         string
	ToLocation           string
	CollectorName        CollectorName
	CollectorNameDisplay string
	CollectorComment     string
	TechnicalState       string
	LogFile              *FileInfo
	MediaFile            *FileInfo
	IsProcessed          bool
}

// ValidateTimes checks that the delivery happens after the departure.
func (d Delivery) ValidateTimes() error {
	if !d.DeliveryTime.After(d.DepartureTime) {
		return fmt.Errorf("delivery time must be after departure time: %w", apperr.ErrInvalid)
	}
	return nil
}

// TransitMinutes returns the stored duration, or the rounded difference between
// delivery and departure when no duration was set.
func (d Delivery) TransitMinutes() int {
	if d.Duration > 0 {
		return d.Duration
	}
	return MinutesBetween(d.DepartureTime, d.DeliveryTime)
}

// ServiceIDs returns the ids of the attached services without duplicates.
func (d Delivery) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(d.Services))
	seen := make(map[int64]struct{}, len(d.Services))
	for _, s := range d.Services {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		ids = append(ids, s.ID)
	}
	return ids
}

// Clone returns a deep copy so that callers can't mutate the store snapshot.
func (d Delivery) Clone() Delivery {
	out := d
	if d.Services != nil {
		out.Services = append([]Service(nil), d.Services...)
	}
	if d.LogFile != nil {
		f := *d.LogFile
		out.LogFile = &f
	}
	if d.MediaFile != nil {
		f := *d.MediaFile
		out.MediaFile = &f
	}
	return out
}
