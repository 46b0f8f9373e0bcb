package constants

// Event subjects. NSQ topics reuse the same names.
const (
	// Trip lifecycle
	SubjectTripCreated   = "trip.created"
	SubjectTripCancelled = "trip.cancelled"
	SubjectTripCompleted = "trip.completed"

	// Booking state machine
	SubjectBookingCreated   = "booking.created"
	SubjectBookingConfirmed = "booking.confirmed"
	SubjectBookingCancelled = "booking.cancelled"
	SubjectBookingExpired   = "booking.expired"

	// Payment settlement
	SubjectPaymentSettled  = "payment.settled"
	SubjectPaymentFailed   = "payment.failed"
	SubjectPaymentRefunded = "payment.refunded"

	// Asynchronous settlement outcomes reported by the payment provider
	SubjectPaymentProviderResult = "payment.provider.result"
)

// JetStream stream and consumer names
const (
	StreamCarpool             = "CARPOOL_STREAM"
	ConsumerBookingSettlement = "booking_settlement_consumer"
)
