package tickets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"movibus/internal/holds"
	"movibus/internal/routes"
	"movibus/internal/shared/utils/response"
)

type Controller interface {
	PurchaseTicket(c *gin.Context)
	HoldSeat(c *gin.Context)
	GetTicket(c *gin.Context)
	GetMyTickets(c *gin.Context)
	GetTripManifest(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) Controller {
	return &controller{
		service:   service,
		validator: validator.New(),
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return uint(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 32)
		if err == nil {
			return uint(id), true
		}
	}
	response.RespondJSON(c, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
	return 0, false
}

// respondReservationError maps the typed reservation failures onto HTTP
// statuses. Conflicts over a seat or the capacity ceiling are 409s.
func respondReservationError(c *gin.Context, err error) {
	var seatTaken *holds.SeatNotAvailableError
	if errors.As(err, &seatTaken) {
		response.RespondJSON(c, "error", http.StatusConflict, seatTaken.Error(), nil, nil)
		return
	}

	var overbooked *OverbookingNotAllowedError
	if errors.As(err, &overbooked) {
		response.RespondJSON(c, "error", http.StatusConflict, overbooked.Error(), gin.H{
			"sold_seats":        overbooked.SoldSeats,
			"limit":             overbooked.Limit,
			"occupancy_percent": overbooked.OccupancyPercent,
		}, nil)
		return
	}

	var notBookable *holds.TripNotBookableError
	if errors.As(err, &notBookable) {
		response.RespondJSON(c, "error", http.StatusConflict, notBookable.Error(), nil, nil)
		return
	}

	if routes.IsInvalidSegment(err) {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	statusCode := http.StatusInternalServerError
	switch err.Error() {
	case "trip not found", "ticket not found":
		statusCode = http.StatusNotFound
	}
	response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
}

func (ctrl *controller) PurchaseTicket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	result, err := ctrl.service.PurchaseTicket(c.Request.Context(), userID, req)
	if err != nil {
		respondReservationError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Ticket purchased successfully", result, nil)
}

func (ctrl *controller) HoldSeat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req HoldSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	hold, err := ctrl.service.HoldSeat(c.Request.Context(), userID, req)
	if err != nil {
		respondReservationError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seat held successfully", hold, nil)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	raw := c.Param("ticketId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ticket, err := ctrl.service.GetTicket(c.Request.Context(), uint(id))
	if err != nil {
		respondReservationError(c, err)
		return
	}

	role, _ := c.Get("user_role")
	if ticket.UserID != userID && role != "ADMIN" {
		response.RespondJSON(c, "error", http.StatusForbidden, "Ticket does not belong to user", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket retrieved successfully", ticket, nil)
}

func (ctrl *controller) GetMyTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	ticketList, err := ctrl.service.GetUserTickets(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tickets retrieved successfully", ticketList, nil)
}

func (ctrl *controller) GetTripManifest(c *gin.Context) {
	raw := c.Param("tripId")
	tripID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || tripID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, nil)
		return
	}

	ticketList, err := ctrl.service.GetTripTickets(c.Request.Context(), uint(tripID))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trip manifest retrieved successfully", ticketList, nil)
}
