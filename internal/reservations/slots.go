package reservations

import (
	"time"

	"bookly/internal/schedules"
	"bookly/internal/shared/apperrors"
)

// Window is one candidate slot boundary pair produced by the generator.
type Window struct {
	Start time.Time
	End   time.Time
}

const scheduleTimeLayout = "15:04:05"

// GenerateWindows walks each schedule range for the date in duration-sized
// steps and emits every window that fits entirely inside the range. A final
// partial window is dropped, never truncated. Ranges are assumed to already
// be filtered to the date's weekday; an empty input yields an empty output.
//
// The result is a pure function of its inputs, so repeated calls produce
// identical boundaries and clients can match slots by value.
func GenerateWindows(date time.Time, rows []schedules.Schedule, duration time.Duration) ([]Window, error) {
	if duration <= 0 {
		return nil, apperrors.Validationf("slot duration must be positive")
	}

	var windows []Window
	for _, row := range rows {
		rangeStart, err := atTimeOfDay(date, row.StartTime)
		if err != nil {
			return nil, apperrors.Validationf("invalid schedule start time %q", row.StartTime)
		}
		rangeEnd, err := atTimeOfDay(date, row.EndTime)
		if err != nil {
			return nil, apperrors.Validationf("invalid schedule end time %q", row.EndTime)
		}

		for cursor := rangeStart; cursor.Before(rangeEnd); cursor = cursor.Add(duration) {
			end := cursor.Add(duration)
			if end.After(rangeEnd) {
				break
			}
			windows = append(windows, Window{Start: cursor, End: end})
		}
	}
	return windows, nil
}

// atTimeOfDay combines a calendar date with an "HH:MM:SS" wall-clock time in
// the date's location.
func atTimeOfDay(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(scheduleTimeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
