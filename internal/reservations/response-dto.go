package reservations

import (
	"time"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                uuid.UUID  `json:"id"`
	AppointmentTypeID uuid.UUID  `json:"appointment_type_id"`
	ResourceID        *uuid.UUID `json:"resource_id,omitempty"`
	CustomerID        uuid.UUID  `json:"customer_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	ExpiresAt         time.Time  `json:"expires_at"`
	CreatedAt         time.Time  `json:"created_at"`
	AppointmentTitle  *string    `json:"appointment_title,omitempty"`
	ResourceName      *string    `json:"resource_name,omitempty"`
}

func ToReservationResponse(hold *SlotReservation) ReservationResponse {
	resp := ReservationResponse{
		ID:                hold.ID,
		AppointmentTypeID: hold.AppointmentTypeID,
		ResourceID:        hold.ResourceID,
		CustomerID:        hold.CustomerID,
		StartTime:         hold.StartTime,
		EndTime:           hold.EndTime,
		ExpiresAt:         hold.ExpiresAt,
		CreatedAt:         hold.CreatedAt,
	}
	if hold.AppointmentType != nil {
		resp.AppointmentTitle = &hold.AppointmentType.Title
	}
	if hold.Resource != nil {
		resp.ResourceName = &hold.Resource.Name
	}
	return resp
}
