package bookings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookly/internal/shared/apperrors"
	"bookly/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetBooking handles GET /bookings/:bookingId
func (ctrl *Controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid booking id"))
		return
	}

	booking, err := ctrl.service.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", gin.H{
		"booking": ToBookingResponse(booking),
	}, nil)
}

// GetCustomerBookings handles GET /customers/:customerId/bookings
func (ctrl *Controller) GetCustomerBookings(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid customer id"))
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	query := BookingListQuery{Page: page, Limit: limit}
	if statusStr := c.Query("status"); statusStr != "" {
		status := Status(statusStr)
		query.Status = &status
	}

	bookings, totalCount, err := ctrl.service.GetByCustomer(c.Request.Context(), customerID, query)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings":    ToBookingListResponse(bookings),
		"count":       len(bookings),
		"total_count": totalCount,
		"page":        page,
		"limit":       limit,
	}, nil)
}

// UpdateBooking handles PATCH /bookings/:bookingId
func (ctrl *Controller) UpdateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid booking id"))
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request payload", nil, response.BindingErrors(err))
		return
	}

	booking, err := ctrl.service.UpdateStatus(c.Request.Context(), bookingID, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking updated successfully", gin.H{
		"booking": ToBookingResponse(booking),
	}, nil)
}

// CancelBooking handles POST /bookings/:bookingId/cancel
func (ctrl *Controller) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid booking id"))
		return
	}

	booking, err := ctrl.service.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", gin.H{
		"booking": ToBookingResponse(booking),
	}, nil)
}
