package reservations

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookly/internal/bookings"
	"bookly/internal/shared/apperrors"
	"bookly/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ReserveSlot handles POST /reservations/reserve
func (ctrl *Controller) ReserveSlot(c *gin.Context) {
	var req ReserveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest,
			"Missing required fields: appointment_type_id, start_time, end_time, customer_id", nil, response.BindingErrors(err))
		return
	}

	input := ReserveInput{
		AppointmentTypeID: uuid.MustParse(req.AppointmentTypeID),
		CustomerID:        uuid.MustParse(req.CustomerID),
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
	}
	if req.ResourceID != nil {
		resourceID := uuid.MustParse(*req.ResourceID)
		input.ResourceID = &resourceID
	}

	result, err := ctrl.service.Reserve(c.Request.Context(), input)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Slot reserved successfully", gin.H{
		"reservation":        ToReservationResponse(result.Reservation),
		"expires_at":         result.ExpiresAt,
		"timeout_minutes":    result.TimeoutMinutes,
		"remaining_capacity": result.RemainingCapacity,
	}, nil)
}

// GetAvailableSlots handles GET /reservations/available/:appointmentTypeId/:date
func (ctrl *Controller) GetAvailableSlots(c *gin.Context) {
	appointmentTypeID, err := uuid.Parse(c.Param("appointmentTypeId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid appointment type id"))
		return
	}
	date, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.UTC)
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid date, expected YYYY-MM-DD"))
		return
	}

	availability, err := ctrl.service.AvailableSlots(c.Request.Context(), appointmentTypeID, date)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Available slots retrieved successfully", gin.H{
		"appointment_type": availability.AppointmentType,
		"date":             availability.Date,
		"slots":            availability.Slots,
	}, nil)
}

// GetActiveReservation handles GET /reservations/active/:customerId
func (ctrl *Controller) GetActiveReservation(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid customer id"))
		return
	}

	active, err := ctrl.service.ActiveReservation(c.Request.Context(), customerID)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	data := gin.H{
		"has_active_reservation": active.HasActive,
		"reservation":            nil,
	}
	if active.HasActive {
		data["reservation"] = ToReservationResponse(active.Reservation)
		data["remaining_seconds"] = active.RemainingSeconds
	}
	response.RespondJSON(c, "success", http.StatusOK, "Active reservation retrieved successfully", data, nil)
}

// ReleaseReservation handles DELETE /reservations/:reservationId
func (ctrl *Controller) ReleaseReservation(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid reservation id"))
		return
	}

	var req OwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Missing required field: customer_id", nil, response.BindingErrors(err))
		return
	}

	released, err := ctrl.service.Release(c.Request.Context(), reservationID, uuid.MustParse(req.CustomerID))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation released successfully", gin.H{
		"released_reservation": ToReservationResponse(released),
	}, nil)
}

// ExtendReservation handles PUT /reservations/:reservationId/extend
func (ctrl *Controller) ExtendReservation(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid reservation id"))
		return
	}

	var req OwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Missing required field: customer_id", nil, response.BindingErrors(err))
		return
	}

	extended, err := ctrl.service.Extend(c.Request.Context(), reservationID, uuid.MustParse(req.CustomerID))
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservation extended successfully", gin.H{
		"reservation":    ToReservationResponse(extended),
		"new_expires_at": extended.ExpiresAt,
	}, nil)
}

// ConfirmReservation handles POST /reservations/:reservationId/confirm
func (ctrl *Controller) ConfirmReservation(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		response.RespondError(c, apperrors.Validationf("invalid reservation id"))
		return
	}

	var req ConfirmReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request payload", nil, response.BindingErrors(err))
		return
	}

	input := ConfirmInput{
		CustomerID:       uuid.MustParse(req.CustomerID),
		PaymentReference: req.PaymentReference,
	}
	if req.AssignedUserID != nil {
		assignedUserID := uuid.MustParse(*req.AssignedUserID)
		input.AssignedUserID = &assignedUserID
	}
	for _, answer := range req.QuestionResponses {
		input.QuestionResponses = append(input.QuestionResponses, QuestionAnswer{
			QuestionID:  uuid.MustParse(answer.QuestionID),
			AnswerValue: answer.AnswerValue,
		})
	}

	booking, err := ctrl.service.Confirm(c.Request.Context(), reservationID, input)
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed successfully", gin.H{
		"booking": bookings.ToBookingResponse(booking),
	}, nil)
}
