package models

import "github.com/google/uuid"

// ActorRole identifies who is driving a state transition
type ActorRole string

const (
	ActorRider  ActorRole = "rider"
	ActorDriver ActorRole = "driver"
	ActorSystem ActorRole = "system"
)

// Actor is the caller of a mutating operation
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role ActorRole `json:"role"`
}

// SystemActor is used by cascades and background sweeps.
func SystemActor() Actor {
	return Actor{Role: ActorSystem}
}

// RiderActor wraps an authenticated rider.
func RiderActor(id uuid.UUID) Actor {
	return Actor{ID: id, Role: ActorRider}
}

// CancelReason derives the booking cancel reason for a cancellation issued by a.
func (a Actor) CancelReason() CancelReason {
	switch a.Role {
	case ActorRider:
		return CancelReasonRiderCancelled
	case ActorDriver:
		return CancelReasonDriverCancelled
	}
	return CancelReasonTripCancelled
}
