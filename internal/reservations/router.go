package reservations

import (
	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(router *gin.RouterGroup, controller *Controller) {
	reservations := router.Group("/reservations")
	{
		reservations.POST("/reserve", controller.ReserveSlot)                              // POST /api/v1/reservations/reserve
		reservations.GET("/available/:appointmentTypeId/:date", controller.GetAvailableSlots) // GET /api/v1/reservations/available/:appointmentTypeId/:date
		reservations.GET("/active/:customerId", controller.GetActiveReservation)           // GET /api/v1/reservations/active/:customerId
		reservations.DELETE("/:reservationId", controller.ReleaseReservation)              // DELETE /api/v1/reservations/:reservationId
		reservations.PUT("/:reservationId/extend", controller.ExtendReservation)           // PUT /api/v1/reservations/:reservationId/extend
		reservations.POST("/:reservationId/confirm", controller.ConfirmReservation)        // POST /api/v1/reservations/:reservationId/confirm
	}
}
