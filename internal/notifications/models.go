package notifications

import (
	"encoding/json"
	"time"
)

// EventType identifies the kind of booking lifecycle event being published.
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is the message published to Kafka whenever a booking is
// confirmed or cancelled. Keyed by customer so one customer's events stay
// ordered within a partition.
type BookingEvent struct {
	Type              EventType `json:"type"`
	BookingID         string    `json:"booking_id"`
	CustomerID        string    `json:"customer_id"`
	AppointmentTypeID string    `json:"appointment_type_id"`
	ResourceID        *string   `json:"resource_id,omitempty"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	OccurredAt        time.Time `json:"occurred_at"`
}

func (e BookingEvent) PartitionKey() string {
	return e.CustomerID
}

func (e BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (BookingEvent, error) {
	var event BookingEvent
	err := json.Unmarshal(data, &event)
	return event, err
}
