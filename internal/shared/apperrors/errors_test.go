package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validationf("end_time must be after start_time"), http.StatusBadRequest},
		{"not found", NotFoundf("reservation not found"), http.StatusNotFound},
		{"conflict", Conflictf("no capacity available for this time slot"), http.StatusConflict},
		{"wrapped conflict", fmt.Errorf("reserve: %w", Conflictf("slot taken")), http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
		{"nil-ish sentinel use", ErrNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestConstructorsKeepClassAndMessage(t *testing.T) {
	err := Conflictf("you already have an active reservation for this appointment type")

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "active reservation")
}

func TestValidationfFormatsArgs(t *testing.T) {
	err := Validationf("answer required for question %q", "Reason for visit")

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `"Reason for visit"`)
}
