package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"bookly/internal/shared/apperrors"
	"bookly/pkg/logger"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a service error onto the standard envelope using the
// apperrors taxonomy. Client errors carry their message; internal errors are
// logged and masked.
func RespondError(c *gin.Context, err error) {
	statusCode := apperrors.StatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		logger.GetDefault().LogHTTPError(c, err, statusCode)
		RespondJSON(c, "error", statusCode, "Internal server error", nil, nil)
		return
	}
	RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
}

// BindingErrors flattens gin binding failures into per-field messages for the
// errors slot of the envelope.
func BindingErrors(err error) interface{} {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "uuid":
			messages = append(messages, fmt.Sprintf("%s must be a valid UUID", field))
		case "gtfield":
			messages = append(messages, fmt.Sprintf("%s must be after %s", field, strings.ToLower(fe.Param())))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return messages
}
