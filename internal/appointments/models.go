package appointments

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType is a bookable service definition. The reservation core
// reads it for duration (slot-window length), publication, and organiser
// linkage; administration is an external collaborator.
type AppointmentType struct {
	ID                 uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	OrganiserID        uuid.UUID `json:"organiser_id" gorm:"type:uuid;index;not null"`
	Title              string    `json:"title" gorm:"not null;size:255"`
	Description        string    `json:"description" gorm:"type:text"`
	Location           string    `json:"location" gorm:"size:500"`
	DurationMinutes    int       `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	BookingFee         float64   `json:"booking_fee" gorm:"not null;default:0;check:booking_fee >= 0"`
	ManualConfirmation bool      `json:"manual_confirmation" gorm:"not null;default:false"`
	IsPublished        bool      `json:"is_published" gorm:"not null;default:false"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (AppointmentType) TableName() string {
	return "appointment_types"
}

// Duration returns the slot-window length for this service.
func (at *AppointmentType) Duration() time.Duration {
	return time.Duration(at.DurationMinutes) * time.Minute
}
