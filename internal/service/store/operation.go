package store

import (
	"time"

	"github.com/google/uuid"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/gateway/backend"
)

// Kind names a store operation.
type Kind string

// Operation kinds.
const (
	KindInitialize Kind = "initialize"
	KindLoad       Kind = "load"
	KindAdd        Kind = "add"
	KindCreate     Kind = "create"
	KindUpdate     Kind = "update"
	KindDelete     Kind = "delete"
	KindProcess    Kind = "process"
	KindUnprocess  Kind = "unprocess"
)

// Operation is an in-flight store call.
type Operation struct {
	ID        uuid.UUID
	Kind      Kind
	StartedAt time.Time
}

// Snapshot is the observable store state.
type Snapshot struct {
	Deliveries []domain.Delivery
	Err        error
	Loading    bool
}

// ProcessFields are the optional edits sent together with the processed
// flag. Nil fields are not sent.
type ProcessFields struct {
	FromLocation     *string
	ToLocation       *string
	Distance         *float64
	DepartureTime    *time.Time
	DeliveryTime     *time.Time
	Duration         *int
	CollectorComment *string
	CollectorName    *domain.CollectorName
	TechnicalState   *string
}

// Attachments are the files uploaded with a new delivery.
type Attachments struct {
	MediaFile *Attachment
	LogFile   *Attachment
}

// Attachment is a file to upload.
type Attachment = backend.Attachment
