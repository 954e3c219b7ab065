package bookings

import (
	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller) {
	bookings := router.Group("/bookings")
	{
		bookings.GET("/:bookingId", controller.GetBooking)            // GET /api/v1/bookings/:bookingId
		bookings.PATCH("/:bookingId", controller.UpdateBooking)       // PATCH /api/v1/bookings/:bookingId
		bookings.POST("/:bookingId/cancel", controller.CancelBooking) // POST /api/v1/bookings/:bookingId/cancel
	}

	customers := router.Group("/customers")
	{
		customers.GET("/:customerId/bookings", controller.GetCustomerBookings) // GET /api/v1/customers/:customerId/bookings
	}
}
