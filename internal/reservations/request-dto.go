package reservations

import "time"

// ReserveSlotRequest is the payload for taking a hold on a slot.
type ReserveSlotRequest struct {
	AppointmentTypeID string    `json:"appointment_type_id" binding:"required,uuid"`
	ResourceID        *string   `json:"resource_id" binding:"omitempty,uuid"`
	CustomerID        string    `json:"customer_id" binding:"required,uuid"`
	StartTime         time.Time `json:"start_time" binding:"required"`
	EndTime           time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
}

// OwnershipRequest identifies the customer acting on an existing hold.
type OwnershipRequest struct {
	CustomerID string `json:"customer_id" binding:"required,uuid"`
}

// ConfirmReservationRequest is the payload for promoting a hold to a booking.
type ConfirmReservationRequest struct {
	CustomerID        string                    `json:"customer_id" binding:"required,uuid"`
	AssignedUserID    *string                   `json:"assigned_user_id" binding:"omitempty,uuid"`
	QuestionResponses []QuestionResponseRequest `json:"question_responses" binding:"omitempty,dive"`
	PaymentReference  *string                   `json:"payment_reference" binding:"omitempty,max=255"`
}

type QuestionResponseRequest struct {
	QuestionID  string `json:"question_id" binding:"required,uuid"`
	AnswerValue string `json:"answer_value"`
}
