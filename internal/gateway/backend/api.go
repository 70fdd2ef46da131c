package backend

import (
	"context"

	"field-delivery-sync/internal/domain"
)

// API is the backend surface used by the services. *Client and
// *RetryingAPI implement it.
type API interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)

	ListDeliveries(ctx context.Context) ([]Delivery, error)
	GetDelivery(ctx context.Context, id int64) (*Delivery, error)
	CreateDelivery(ctx context.Context, form CreateDeliveryForm) (*Delivery, error)
	PatchDelivery(ctx context.Context, id int64, patch DeliveryPatch) (*Delivery, error)
	DeleteDelivery(ctx context.Context, id int64) error

	TransportModels(ctx context.Context) ([]domain.TransportModel, error)
	PackageTypes(ctx context.Context) ([]domain.PackageType, error)
	ServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error)
	Services(ctx context.Context) ([]domain.Service, error)
	DeliveryStatuses(ctx context.Context) ([]domain.DeliveryStatus, error)
	TechnicalConditions(ctx context.Context) ([]domain.TechnicalCondition, error)
	CargoTypes(ctx context.Context) ([]domain.CargoType, error)
	Locations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, from, to string, distanceKm float64) (domain.Location, error)
}

var (
	_ API = (*Client)(nil)
	_ API = (*RetryingAPI)(nil)
)
