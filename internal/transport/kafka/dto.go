package kafka

import (
	"strings"
	"time"

	"field-delivery-sync/internal/domain"
)

// EventDTO is the wire form of domain.MutationEvent.
type EventDTO struct {
	DeliveryID string    `json:"delivery_id"`
	Action     string    `json:"action"`
	At         time.Time `json:"at"`
}

// FromDomain converts a mutation event to its wire form.
func FromDomain(ev domain.MutationEvent) EventDTO {
	return EventDTO{
		DeliveryID: strings.TrimSpace(ev.DeliveryID),
		Action:     string(ev.Action),
		At:         ev.At.UTC(),
	}
}

// ToDomain converts EventDTO to domain.MutationEvent
func ToDomain(dto EventDTO) domain.MutationEvent {
	return domain.MutationEvent{
		DeliveryID: strings.TrimSpace(dto.DeliveryID),
		Action:     domain.MutationAction(strings.TrimSpace(dto.Action)),
		At:         dto.At,
	}
}
