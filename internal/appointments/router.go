package appointments

import (
	"github.com/gin-gonic/gin"
)

func SetupAppointmentRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse published services
	appointmentTypes := router.Group("/appointment-types")
	{
		appointmentTypes.GET("", controller.GetPublished)                    // GET /api/v1/appointment-types
		appointmentTypes.GET("/:appointmentTypeId", controller.GetDetail)    // GET /api/v1/appointment-types/:appointmentTypeId
	}
}
