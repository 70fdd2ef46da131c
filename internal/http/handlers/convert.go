package handlers

import (
	"fmt"
	"time"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
)

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func fileToDTO(f *domain.FileInfo) *fileDTO {
	if f == nil {
		return nil
	}
	return &fileDTO{Name: f.Name, URI: f.URI, Type: f.Type}
}

func coordinatesToDTO(location string) *coordinatesDTO {
	c, ok := domain.ParseCoordinates(location)
	if !ok {
		return nil
	}
	return &coordinatesDTO{Latitude: c.Latitude, Longitude: c.Longitude}
}

func serviceToDTO(s domain.Service) serviceDTO {
	out := serviceDTO{ID: s.ID, Name: s.Name}
	if s.Category != nil {
		out.Category = &serviceCategoryDTO{ID: s.Category.ID, Title: s.Category.Title}
	}
	return out
}

func servicesToDTO(list []domain.Service) []serviceDTO {
	out := make([]serviceDTO, 0, len(list))
	for _, s := range list {
		out = append(out, serviceToDTO(s))
	}
	return out
}

func deliveryToDTO(d domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:            d.ID,
		VehicleModel:  d.VehicleModel,
		VehicleNumber: d.VehicleNumber,
		DepartureTime: timePtr(d.DepartureTime),
		DeliveryTime:  timePtr(d.DeliveryTime),
		Duration:      d.Duration,
		TravelTime:    domain.FormatTravelTime(d.TransitMinutes()),
		Distance:      d.Distance,
		Services:      servicesToDTO(d.Services),
		PackageType:   d.PackageType,
		Status:        d.Status,
		FromLocation:  d.FromLocation,
		ToLocation:    d.ToLocation,

		FromCoordinates: coordinatesToDTO(d.FromLocation),
		ToCoordinates:   coordinatesToDTO(d.ToLocation),
		CollectorName: collectorNameDTO{
			FirstName: d.CollectorName.FirstName,
			Surname:   d.CollectorName.Surname,
			LastName:  d.CollectorName.LastName,
		},
		CollectorNameDisplay: d.CollectorNameDisplay,
		CollectorComment:     d.CollectorComment,
		TechnicalState:       d.TechnicalState,
		LogFile:              fileToDTO(d.LogFile),
		MediaFile:            fileToDTO(d.MediaFile),
		IsProcessed:          d.IsProcessed,
	}
}

func deliveriesToDTO(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, deliveryToDTO(d))
	}
	return out
}

func snapshotToDTO(snap store.Snapshot, ops []store.Operation) snapshotDTO {
	out := snapshotDTO{
		Deliveries: deliveriesToDTO(snap.Deliveries),
		Loading:    snap.Loading,
		Operations: make([]operationDTO, 0, len(ops)),
	}
	if snap.Err != nil {
		out.Error = snap.Err.Error()
	}
	for _, op := range ops {
		out.Operations = append(out.Operations, operationDTO{
			ID:        op.ID.String(),
			Kind:      string(op.Kind),
			StartedAt: op.StartedAt,
		})
	}
	return out
}

func (n collectorNameDTO) toDomain() domain.CollectorName {
	return domain.CollectorName{FirstName: n.FirstName, Surname: n.Surname, LastName: n.LastName}
}

func (r deliveryRequest) toDomain(id string) (domain.Delivery, error) {
	d := domain.Delivery{
		ID:               id,
		VehicleModel:     r.VehicleModel,
		VehicleNumber:    r.VehicleNumber,
		Duration:         r.Duration,
		Distance:         r.Distance,
		PackageType:      r.PackageType,
		Status:           r.Status,
		FromLocation:     r.FromLocation,
		ToLocation:       r.ToLocation,
		CollectorName:    r.CollectorName.toDomain(),
		CollectorComment: r.CollectorComment,
		TechnicalState:   r.TechnicalState,
	}
	d.CollectorNameDisplay = d.CollectorName.Display()
	if r.DepartureTime != nil {
		d.DepartureTime = *r.DepartureTime
	}
	if r.DeliveryTime != nil {
		d.DeliveryTime = *r.DeliveryTime
	}
	if r.TravelTime != "" {
		minutes, err := domain.ParseTravelTime(r.TravelTime)
		if err != nil {
			return domain.Delivery{}, err
		}
		d.Duration = minutes
	}
	for _, s := range r.Services {
		svc := domain.Service{ID: s.ID, Name: s.Name}
		if s.Category != nil {
			svc.Category = &domain.ServiceCategory{ID: s.Category.ID, Title: s.Category.Title}
		}
		d.Services = append(d.Services, svc)
	}
	return d, nil
}

func (r processRequest) toFields() (*store.ProcessFields, error) {
	f := &store.ProcessFields{
		FromLocation:     r.FromLocation,
		ToLocation:       r.ToLocation,
		Distance:         r.Distance,
		DepartureTime:    r.DepartureTime,
		DeliveryTime:     r.DeliveryTime,
		CollectorComment: r.CollectorComment,
		TechnicalState:   r.TechnicalState,
	}
	if r.CollectorName != nil {
		n := r.CollectorName.toDomain()
		f.CollectorName = &n
	}
	if r.TravelTime != nil {
		minutes, err := domain.ParseTravelTime(*r.TravelTime)
		if err != nil {
			return nil, err
		}
		f.Duration = &minutes
	}
	return f, nil
}

func refsToDTO[T domain.Named](list []T) []refDTO {
	out := make([]refDTO, 0, len(list))
	for _, v := range list {
		out = append(out, refDTO{ID: v.RefID(), Name: v.RefLabel()})
	}
	return out
}

// referenceToDTO renders a list returned by reference.Service.List.
func referenceToDTO(v any) (any, error) {
	switch list := v.(type) {
	case []domain.TransportModel:
		return refsToDTO(list), nil
	case []domain.PackageType:
		return refsToDTO(list), nil
	case []domain.DeliveryStatus:
		return refsToDTO(list), nil
	case []domain.TechnicalCondition:
		return refsToDTO(list), nil
	case []domain.CargoType:
		return refsToDTO(list), nil
	case []domain.ServiceCategory:
		out := make([]serviceCategoryDTO, 0, len(list))
		for _, c := range list {
			out = append(out, serviceCategoryDTO{ID: c.ID, Title: c.Title})
		}
		return out, nil
	case []domain.Service:
		return servicesToDTO(list), nil
	case []domain.Location:
		out := make([]locationDTO, 0, len(list))
		for _, l := range list {
			out = append(out, locationDTO{ID: l.ID, From: l.From, To: l.To, DistanceKm: l.DistanceKm})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported reference list %T", v)
	}
}

func serviceGroupsToDTO(groups []reference.ServiceGroup) []serviceGroupDTO {
	out := make([]serviceGroupDTO, 0, len(groups))
	for _, g := range groups {
		dto := serviceGroupDTO{Services: servicesToDTO(g.Services)}
		if g.Category != nil {
			dto.Category = &serviceCategoryDTO{ID: g.Category.ID, Title: g.Category.Title}
		}
		out = append(out, dto)
	}
	return out
}
