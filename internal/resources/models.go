package resources

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a bookable capacity unit (a room, a provider chair, a court).
// Rows are created and updated by organiser tooling; the reservation core
// only reads them.
type Resource struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	OrganiserID uuid.UUID `json:"organiser_id" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Capacity    int       `json:"capacity" gorm:"not null;default:1;check:capacity > 0"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}
