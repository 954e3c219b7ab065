package appointments

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookly/internal/shared/utils/response"
)

type Controller interface {
	GetPublished(c *gin.Context)
	GetDetail(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetPublished handles GET /appointment-types
func (ctrl *controller) GetPublished(c *gin.Context) {
	list, err := ctrl.service.GetPublished(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Appointment types retrieved successfully", gin.H{
		"count":             len(list),
		"appointment_types": list,
	}, nil)
}

// GetDetail handles GET /appointment-types/:appointmentTypeId
func (ctrl *controller) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("appointmentTypeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid appointment type ID", nil, err.Error())
		return
	}

	detail, err := ctrl.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Appointment type retrieved successfully", detail, nil)
}
