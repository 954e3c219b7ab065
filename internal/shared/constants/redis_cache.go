package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs.
// Pattern: bookly:{module}:{operation}:{identifier}
//
// Only read-mostly organiser data is cached. Holds, bookings, and capacity
// counts are always re-derived from Postgres inside the owning transaction.

// Detail entries carry their schedules and questions, so one TTL covers all
// cached organiser data.
const TTL_APPOINTMENT_TYPES = 1 * time.Hour

const CACHE_PREFIX = "bookly"

const (
	CACHE_KEY_APPOINTMENT_TYPES_PUBLISHED = CACHE_PREFIX + ":appointment_types:published"
	CACHE_KEY_APPOINTMENT_TYPE_DETAIL     = CACHE_PREFIX + ":appointment_types:detail:uuid:" // + appointment-type-id
)

func BuildAppointmentTypeDetailKey(appointmentTypeID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_APPOINTMENT_TYPE_DETAIL, appointmentTypeID)
}
