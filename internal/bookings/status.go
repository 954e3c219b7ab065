package bookings

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ConsumesCapacity reports whether a booking in this status still occupies
// a seat in its slot window. Cancelled and completed bookings free the seat.
func (s Status) ConsumesCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo enforces the forward-only lifecycle:
// PENDING -> CONFIRMED -> COMPLETED, with cancellation allowed from
// PENDING or CONFIRMED. Terminal states never transition.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// PaymentStatus tracks whether a booking has been paid for.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

func (p PaymentStatus) IsValid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}
