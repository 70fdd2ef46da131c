package backend

import "field-delivery-sync/internal/domain"

func convertList[S any, D any](in []S, fn func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}

func (t TransportModel) toDomain() domain.TransportModel {
	return domain.TransportModel{ID: t.ID, Name: t.Name}
}

func (p PackageType) toDomain() domain.PackageType {
	return domain.PackageType{ID: p.ID, Name: p.Name}
}

func (c ServiceCategory) toDomain() domain.ServiceCategory {
	return domain.ServiceCategory{ID: c.ID, Title: c.Title}
}

// ToDomain converts a service, keeping a nil category nil.
func (s Service) ToDomain() domain.Service {
	out := domain.Service{ID: s.ID, Name: s.Name}
	if s.Category != nil {
		c := s.Category.toDomain()
		out.Category = &c
	}
	return out
}

func (s DeliveryStatus) toDomain() domain.DeliveryStatus {
	return domain.DeliveryStatus{ID: s.ID, Name: s.Name}
}

func (c TechnicalCondition) toDomain() domain.TechnicalCondition {
	return domain.TechnicalCondition{ID: c.ID, Value: c.Value}
}

func (c CargoType) toDomain() domain.CargoType {
	return domain.CargoType{ID: c.ID, Name: c.Name}
}

func (l Location) toDomain() domain.Location {
	return domain.Location{ID: l.ID, From: l.LocationFrom, To: l.LocationTo, DistanceKm: l.DistanceKm.Float64()}
}
