package appointments

import (
	"bookly/internal/questions"
	"bookly/internal/schedules"
)

// AppointmentTypeDetail is the browse view of one service: the type plus its
// weekly availability template and intake questions.
type AppointmentTypeDetail struct {
	AppointmentType
	Schedules []schedules.Schedule       `json:"schedules"`
	Questions []questions.CustomQuestion `json:"questions"`
}

// AppointmentTypeSummary is the compact shape embedded in slot-availability
// responses.
type AppointmentTypeSummary struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"duration_minutes"`
	BookingFee      float64 `json:"booking_fee"`
}

func (at *AppointmentType) ToSummary() AppointmentTypeSummary {
	return AppointmentTypeSummary{
		ID:              at.ID.String(),
		Title:           at.Title,
		DurationMinutes: at.DurationMinutes,
		BookingFee:      at.BookingFee,
	}
}
