package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a committed reservation, created only by confirming a slot hold.
type Booking struct {
	ID                uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AppointmentTypeID uuid.UUID     `gorm:"type:uuid;index;not null" json:"appointment_type_id"`
	CustomerID        uuid.UUID     `gorm:"type:uuid;index;not null" json:"customer_id"`
	ResourceID        *uuid.UUID    `gorm:"type:uuid;index" json:"resource_id,omitempty"`
	AssignedUserID    *uuid.UUID    `gorm:"type:uuid" json:"assigned_user_id,omitempty"`
	StartTime         time.Time     `gorm:"not null;index:idx_bookings_window" json:"start_time"`
	EndTime           time.Time     `gorm:"not null;index:idx_bookings_window" json:"end_time"`
	Status            Status        `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'CANCELLED', 'COMPLETED');default:'PENDING'" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(20);check:payment_status IN ('UNPAID', 'PAID');default:'UNPAID'" json:"payment_status"`
	PaymentReference  *string       `gorm:"size:255" json:"payment_reference,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	CancelledAt       *time.Time    `json:"cancelled_at,omitempty"`

	// Relationships
	QuestionResponses []QuestionResponse `json:"question_responses,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// QuestionResponse is one intake answer attached to a booking at confirm time.
type QuestionResponse struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID   uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	QuestionID  uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	AnswerValue string    `gorm:"type:text" json:"answer_value"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (QuestionResponse) TableName() string {
	return "question_responses"
}

// Helper methods for booking management

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) IsActive() bool {
	return b.Status.ConsumesCapacity()
}

func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}
