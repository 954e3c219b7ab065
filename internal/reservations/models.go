package reservations

import (
	"time"

	"github.com/google/uuid"

	"bookly/internal/appointments"
	"bookly/internal/resources"
)

// SlotReservation is a temporary hold on one unit of capacity for an exact
// slot window. It lives until confirmed, released, extended past, or swept
// once expires_at has lapsed.
type SlotReservation struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AppointmentTypeID uuid.UUID  `gorm:"type:uuid;index;not null" json:"appointment_type_id"`
	ResourceID        *uuid.UUID `gorm:"type:uuid;index" json:"resource_id,omitempty"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"customer_id"`
	StartTime         time.Time  `gorm:"not null;index:idx_slot_reservations_window" json:"start_time"`
	EndTime           time.Time  `gorm:"not null;index:idx_slot_reservations_window" json:"end_time"`
	ExpiresAt         time.Time  `gorm:"not null;index" json:"expires_at"`
	CreatedAt         time.Time  `json:"created_at"`

	// Relationships (read-only, for display joins)
	AppointmentType *appointments.AppointmentType `json:"appointment_type,omitempty" gorm:"foreignKey:AppointmentTypeID"`
	Resource        *resources.Resource           `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
}

func (SlotReservation) TableName() string {
	return "slot_reservations"
}

func (r *SlotReservation) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// RemainingSeconds reports how long the hold is still valid, floored at zero.
func (r *SlotReservation) RemainingSeconds(now time.Time) int64 {
	remaining := int64(r.ExpiresAt.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Scope returns the capacity scope this hold counts against.
func (r *SlotReservation) Scope() CapacityScope {
	if r.ResourceID != nil {
		return ResourceScope(r.AppointmentTypeID, *r.ResourceID)
	}
	return UnscopedScope(r.AppointmentTypeID)
}

// CapacityScope identifies the pool a hold or booking draws capacity from:
// either a concrete resource, or the appointment type itself when no resource
// is attached (singleton capacity of one). Using a variant instead of a bare
// nullable resource id keeps the branching in one place.
type CapacityScope struct {
	appointmentTypeID uuid.UUID
	resourceID        *uuid.UUID
}

// ResourceScope scopes capacity to a concrete resource.
func ResourceScope(appointmentTypeID, resourceID uuid.UUID) CapacityScope {
	return CapacityScope{appointmentTypeID: appointmentTypeID, resourceID: &resourceID}
}

// UnscopedScope scopes capacity to the appointment type alone, with an
// implicit capacity of one.
func UnscopedScope(appointmentTypeID uuid.UUID) CapacityScope {
	return CapacityScope{appointmentTypeID: appointmentTypeID}
}

func (s CapacityScope) AppointmentTypeID() uuid.UUID {
	return s.appointmentTypeID
}

// ResourceID returns the scoping resource and whether one exists.
func (s CapacityScope) ResourceID() (uuid.UUID, bool) {
	if s.resourceID == nil {
		return uuid.Nil, false
	}
	return *s.resourceID, true
}

func (s CapacityScope) IsResourceScoped() bool {
	return s.resourceID != nil
}

// SingletonCapacity is the capacity assumed when no resource scopes a slot.
const SingletonCapacity = 1

// Slot is an ephemeral candidate window annotated with capacity. Never
// persisted.
type Slot struct {
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	ResourceID        *uuid.UUID `json:"resource_id"`
	ResourceName      *string    `json:"resource_name"`
	RemainingCapacity int        `json:"remaining_capacity"`
	TotalCapacity     int        `json:"total_capacity"`
	Available         bool       `json:"available"`
}
