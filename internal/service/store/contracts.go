//go:generate mockgen -source=contracts.go -destination=store_mocks_test.go -package=store_test

package store

import (
	"context"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/service/reference"
)

type deliveryAPI interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	ListDeliveries(ctx context.Context) ([]backend.Delivery, error)
	CreateDelivery(ctx context.Context, form backend.CreateDeliveryForm) (*backend.Delivery, error)
	PatchDelivery(ctx context.Context, id int64, patch backend.DeliveryPatch) (*backend.Delivery, error)
	DeleteDelivery(ctx context.Context, id int64) error
}

type resolver interface {
	Resolve(ctx context.Context, vehicleModel, packageType, status string) (reference.RequiredIDs, error)
}

type publisher interface {
	Publish(ctx context.Context, ev domain.MutationEvent) error
}

type operationObserver interface {
	Observe(kind string, err error)
}
