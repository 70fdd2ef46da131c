package handlers

import (
	"context"
	"time"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/service/callback"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
)

type deliveryStore interface {
	Snapshot() store.Snapshot
	Operations() []store.Operation
	Delivery(id string) (domain.Delivery, error)
	Initialize(ctx context.Context) error
	LoadDeliveries(ctx context.Context) error
	CreateDelivery(ctx context.Context, draft domain.Delivery, files store.Attachments) error
	UpdateDelivery(ctx context.Context, d domain.Delivery) error
	DeleteDelivery(ctx context.Context, id string) error
	ProcessDelivery(ctx context.Context, id string, fields *store.ProcessFields) error
	UnprocessDelivery(ctx context.Context, id string) error
	Subscribe() (<-chan store.Snapshot, func())
}

type callbackStore interface {
	SetCallbackResult(key string, v any)
	CallbackResult(key string) (any, bool)
	ClearCallbackResult(key string)
	SetDraft(d domain.Delivery)
	Draft() (domain.Delivery, bool)
	ClearDraft()
	Callbacks() *callback.Board
}

type authenticator interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
}

type referenceLister interface {
	List(ctx context.Context, kind reference.Kind) (any, error)
	ServicesByCategory(ctx context.Context) ([]reference.ServiceGroup, error)
}

type exporter interface {
	Generate(deliveries []domain.Delivery, generatedAt time.Time) ([]byte, error)
}
