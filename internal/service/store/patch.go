package store

import (
	"strconv"
	"time"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/service/reference"
)

func updatePatch(d domain.Delivery, ids reference.RequiredIDs) backend.DeliveryPatch {
	serviceIDs := d.ServiceIDs()
	return backend.DeliveryPatch{
		TransportModelID:   backend.Ptr(ids.TransportModel.ID()),
		TransportNumber:    backend.Ptr(d.VehicleNumber),
		PackageTypeID:      backend.Ptr(ids.PackageType.ID()),
		ServiceIDs:         &serviceIDs,
		StatusID:           backend.Ptr(ids.Status.ID()),
		TechnicalCondition: backend.Ptr(d.TechnicalState),
		Location:           patchLocation(d.FromLocation, d.ToLocation, d.Distance),
		DepartureTime:      timestamp(d.DepartureTime),
		DeliveryTime:       timestamp(d.DeliveryTime),
		TravelTime:         backend.Ptr(domain.FormatTravelTime(d.Duration)),
		Description:        backend.Ptr(d.CollectorComment),
		CollectorName:      backend.Ptr(d.CollectorName.FirstName),
		CollectorSurname:   backend.Ptr(d.CollectorName.Surname),
		CollectorLastname:  backend.Ptr(d.CollectorName.LastName),
		IsProcessed:        backend.Ptr(d.IsProcessed),
	}
}

func processPatch(f *ProcessFields) backend.DeliveryPatch {
	var p backend.DeliveryPatch
	if f == nil {
		return p
	}
	if f.FromLocation != nil || f.ToLocation != nil || f.Distance != nil {
		p.Location = patchLocation(deref(f.FromLocation), deref(f.ToLocation), deref(f.Distance))
	}
	if f.DepartureTime != nil {
		p.DepartureTime = timestamp(*f.DepartureTime)
	}
	if f.DeliveryTime != nil {
		p.DeliveryTime = timestamp(*f.DeliveryTime)
	}
	if f.Duration != nil {
		p.TravelTime = backend.Ptr(domain.FormatTravelTime(*f.Duration))
	}
	if f.CollectorComment != nil {
		p.Description = backend.Ptr(*f.CollectorComment)
	}
	if f.CollectorName != nil {
		p.CollectorName = backend.Ptr(f.CollectorName.FirstName)
		p.CollectorSurname = backend.Ptr(f.CollectorName.Surname)
		p.CollectorLastname = backend.Ptr(f.CollectorName.LastName)
	}
	if f.TechnicalState != nil && *f.TechnicalState != "" {
		p.TechnicalCondition = backend.Ptr(*f.TechnicalState)
	}
	return p
}

func patchLocation(from, to string, km float64) *backend.PatchLocation {
	return &backend.PatchLocation{
		LocationFrom: from,
		LocationTo:   to,
		DistanceKm:   strconv.FormatFloat(km, 'f', 2, 64),
	}
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	return backend.Ptr(backend.FormatTimestamp(t))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
