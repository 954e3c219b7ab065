package bookings

import (
	"time"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                uuid.UUID                  `json:"id"`
	AppointmentTypeID uuid.UUID                  `json:"appointment_type_id"`
	CustomerID        uuid.UUID                  `json:"customer_id"`
	ResourceID        *uuid.UUID                 `json:"resource_id,omitempty"`
	AssignedUserID    *uuid.UUID                 `json:"assigned_user_id,omitempty"`
	StartTime         time.Time                  `json:"start_time"`
	EndTime           time.Time                  `json:"end_time"`
	Status            Status                     `json:"status"`
	PaymentStatus     PaymentStatus              `json:"payment_status"`
	PaymentReference  *string                    `json:"payment_reference,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	CancelledAt       *time.Time                 `json:"cancelled_at,omitempty"`
	QuestionResponses []QuestionResponseResponse `json:"question_responses,omitempty"`
}

type QuestionResponseResponse struct {
	ID          uuid.UUID `json:"id"`
	QuestionID  uuid.UUID `json:"question_id"`
	AnswerValue string    `json:"answer_value"`
}

func ToBookingResponse(booking *Booking) BookingResponse {
	resp := BookingResponse{
		ID:                booking.ID,
		AppointmentTypeID: booking.AppointmentTypeID,
		CustomerID:        booking.CustomerID,
		ResourceID:        booking.ResourceID,
		AssignedUserID:    booking.AssignedUserID,
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		Status:            booking.Status,
		PaymentStatus:     booking.PaymentStatus,
		PaymentReference:  booking.PaymentReference,
		CreatedAt:         booking.CreatedAt,
		CancelledAt:       booking.CancelledAt,
	}
	for _, qr := range booking.QuestionResponses {
		resp.QuestionResponses = append(resp.QuestionResponses, QuestionResponseResponse{
			ID:          qr.ID,
			QuestionID:  qr.QuestionID,
			AnswerValue: qr.AnswerValue,
		})
	}
	return resp
}

func ToBookingListResponse(bookings []Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses
}
