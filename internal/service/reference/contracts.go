//go:generate mockgen -source=contracts.go -destination=reference_mocks_test.go -package=reference_test

package reference

import (
	"context"

	"field-delivery-sync/internal/domain"
)

// source is the subset of the backend API that serves reference lists.
type source interface {
	TransportModels(ctx context.Context) ([]domain.TransportModel, error)
	PackageTypes(ctx context.Context) ([]domain.PackageType, error)
	ServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error)
	Services(ctx context.Context) ([]domain.Service, error)
	DeliveryStatuses(ctx context.Context) ([]domain.DeliveryStatus, error)
	TechnicalConditions(ctx context.Context) ([]domain.TechnicalCondition, error)
	CargoTypes(ctx context.Context) ([]domain.CargoType, error)
	Locations(ctx context.Context) ([]domain.Location, error)
}
