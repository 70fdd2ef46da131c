package domain

import "time"

// MutationAction names a confirmed change to a delivery.
type MutationAction string

// Mutation actions.
const (
	ActionCreated     MutationAction = "created"
	ActionUpdated     MutationAction = "updated"
	ActionDeleted     MutationAction = "deleted"
	ActionProcessed   MutationAction = "processed"
	ActionUnprocessed MutationAction = "unprocessed"
)

// MutationEvent is emitted after the backend confirmed a change.
type MutationEvent struct {
	DeliveryID string         `json:"delivery_id"`
	Action     MutationAction `json:"action"`
	At         time.Time      `json:"at"`
}
