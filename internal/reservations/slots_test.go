package reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/internal/schedules"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateWindows(t *testing.T) {
	day := date(2026, time.March, 2) // a Monday

	t.Run("walks the range in duration-sized steps", func(t *testing.T) {
		rows := []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "10:30:00"},
		}

		windows, err := GenerateWindows(day, rows, 30*time.Minute)
		require.NoError(t, err)
		require.Len(t, windows, 3)

		assert.Equal(t, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC), windows[0].End)
		assert.Equal(t, time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC), windows[2].Start)
		assert.Equal(t, time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC), windows[2].End)
	})

	t.Run("drops a partial final window instead of truncating", func(t *testing.T) {
		rows := []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "09:50:00"},
		}

		windows, err := GenerateWindows(day, rows, 30*time.Minute)
		require.NoError(t, err)
		require.Len(t, windows, 1, "the second step would end at 10:00, past the range, and must be dropped whole")
		assert.Equal(t, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC), windows[0].Start)
		assert.Equal(t, time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC), windows[0].End)
	})

	t.Run("fits exactly one window in a 50 minute range with 50 minute duration", func(t *testing.T) {
		rows := []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "09:50:00"},
		}

		windows, err := GenerateWindows(day, rows, 50*time.Minute)
		require.NoError(t, err)
		require.Len(t, windows, 1)
		assert.Equal(t, time.Date(2026, time.March, 2, 9, 50, 0, 0, time.UTC), windows[0].End)
	})

	t.Run("no schedule rows yields an empty sequence", func(t *testing.T) {
		windows, err := GenerateWindows(day, nil, 30*time.Minute)
		require.NoError(t, err)
		assert.Empty(t, windows)
	})

	t.Run("multiple ranges concatenate in order", func(t *testing.T) {
		rows := []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "10:00:00"},
			{DayOfWeek: 1, StartTime: "14:00:00", EndTime: "15:00:00"},
		}

		windows, err := GenerateWindows(day, rows, 30*time.Minute)
		require.NoError(t, err)
		require.Len(t, windows, 4)
		assert.Equal(t, 9, windows[0].Start.Hour())
		assert.Equal(t, 9, windows[1].Start.Hour())
		assert.Equal(t, 14, windows[2].Start.Hour())
		assert.Equal(t, 14, windows[3].Start.Hour())
	})

	t.Run("is deterministic across calls", func(t *testing.T) {
		rows := []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "08:15:00", EndTime: "11:45:00"},
		}

		first, err := GenerateWindows(day, rows, 45*time.Minute)
		require.NoError(t, err)
		second, err := GenerateWindows(day, rows, 45*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		_, err := GenerateWindows(day, nil, 0)
		assert.Error(t, err)
	})

	t.Run("rejects malformed schedule times", func(t *testing.T) {
		rows := []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00:00"},
		}
		_, err := GenerateWindows(day, rows, 30*time.Minute)
		assert.Error(t, err)
	})
}
