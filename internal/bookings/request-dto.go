package bookings

// UpdateBookingRequest carries a partial update to a booking. Absent fields
// are left untouched.
type UpdateBookingRequest struct {
	Status           *string `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	PaymentStatus    *string `json:"payment_status" binding:"omitempty,oneof=UNPAID PAID"`
	PaymentReference *string `json:"payment_reference" binding:"omitempty,max=255"`
}
