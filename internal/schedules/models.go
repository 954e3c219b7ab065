package schedules

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is one weekly availability range for an appointment type.
// DayOfWeek follows time.Weekday numbering (0 = Sunday). Start and end are
// wall-clock times in "15:04:05" form; the slot generator anchors them to a
// concrete date.
type Schedule struct {
	ID                uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	AppointmentTypeID uuid.UUID `json:"appointment_type_id" gorm:"type:uuid;index;not null"`
	DayOfWeek         int       `json:"day_of_week" gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6"`
	StartTime         string    `json:"start_time" gorm:"type:time;not null"`
	EndTime           string    `json:"end_time" gorm:"type:time;not null"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Schedule) TableName() string {
	return "schedules"
}
