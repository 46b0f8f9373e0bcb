package models

import (
	"time"

	"github.com/google/uuid"
)

// TripFilter narrows the available trip listing. Empty fields match all.
type TripFilter struct {
	Source      string `query:"source"`
	Destination string `query:"destination"`
}

// AvailableTrip is a bookable trip as shown to riders
type AvailableTrip struct {
	TripID        uuid.UUID `json:"trip_id" db:"trip_id"`
	Source        string    `json:"source" db:"source"`
	Destination   string    `json:"destination" db:"destination"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	SeatsLeft     int       `json:"seats_left" db:"seats_left"`
	PricePerSeat  int64     `json:"price" db:"price_per_seat"`
}

// RiderBooking is a booking joined with its trip
type RiderBooking struct {
	BookingID     uuid.UUID     `json:"booking_id" db:"booking_id"`
	TripID        uuid.UUID     `json:"trip_id" db:"trip_id"`
	Seats         int           `json:"seats" db:"seats"`
	Amount        int64         `json:"amount" db:"amount"`
	Status        BookingStatus `json:"status" db:"status"`
	CancelReason  CancelReason  `json:"cancel_reason,omitempty" db:"cancel_reason"`
	Source        string        `json:"source" db:"source"`
	Destination   string        `json:"destination" db:"destination"`
	DepartureTime time.Time     `json:"departure_time" db:"departure_time"`
	TripStatus    TripStatus    `json:"trip_status" db:"trip_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// DriverStats summarises a driver's trips and earnings
type DriverStats struct {
	Earnings      int64   `json:"earnings"`
	TotalTrips    int     `json:"totalTrips"`
	TodaysTrips   int     `json:"todaysTrips"`
	UpcomingTrips []*Trip `json:"upcomingTrips"`
}
