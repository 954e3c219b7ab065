package questions

import (
	"time"

	"github.com/google/uuid"
)

type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeTextarea FieldType = "TEXTAREA"
	FieldTypeSelect   FieldType = "SELECT"
	FieldTypeCheckbox FieldType = "CHECKBOX"
)

// CustomQuestion is an intake question attached to an appointment type.
// Question administration is external; confirm validates answers against the
// mandatory flags here.
type CustomQuestion struct {
	ID                uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	AppointmentTypeID uuid.UUID `json:"appointment_type_id" gorm:"type:uuid;index;not null"`
	Label             string    `json:"label" gorm:"not null;size:500"`
	FieldType         FieldType `json:"field_type" gorm:"type:varchar(20);not null;default:'TEXT'"`
	IsMandatory       bool      `json:"is_mandatory" gorm:"not null;default:false"`
	SortOrder         int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"created_at"`
}

func (CustomQuestion) TableName() string {
	return "custom_questions"
}
