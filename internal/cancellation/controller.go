package cancellation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movibus/internal/shared/utils/response"
)

type Controller interface {
	CancelTicket(c *gin.Context)
	GetCancellation(c *gin.Context)
	GetTicketCancellation(c *gin.Context)
	GetMyCancellations(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

type cancelRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
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

func (ctrl *controller) CancelTicket(c *gin.Context) {
	raw := c.Param("ticketId")
	ticketID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || ticketID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req cancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
	}

	record, err := ctrl.service.CancelTicket(c.Request.Context(), uint(ticketID), userID, req.Reason)
	if err != nil {
		ctrl.respondCancelError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Ticket cancelled successfully", record, nil)
}

func (ctrl *controller) respondCancelError(c *gin.Context, err error) {
	var alreadyCancelled *AlreadyCancelledError
	if errors.As(err, &alreadyCancelled) {
		response.RespondJSON(c, "error", http.StatusConflict, alreadyCancelled.Error(), nil, nil)
		return
	}

	statusCode := http.StatusInternalServerError
	switch err.Error() {
	case "ticket not found", "trip not found":
		statusCode = http.StatusNotFound
	case "unauthorized: ticket does not belong to user":
		statusCode = http.StatusForbidden
	}
	response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
}

func (ctrl *controller) GetCancellation(c *gin.Context) {
	raw := c.Param("cancellationId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid cancellation ID", nil, nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := ctrl.service.GetCancellation(c.Request.Context(), uint(id))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "cancellation not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	role, _ := c.Get("user_role")
	if record.UserID != userID && role != "ADMIN" {
		response.RespondJSON(c, "error", http.StatusForbidden, "Cancellation does not belong to user", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation retrieved successfully", record, nil)
}

func (ctrl *controller) GetTicketCancellation(c *gin.Context) {
	raw := c.Param("ticketId")
	ticketID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || ticketID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ticket ID", nil, nil)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := ctrl.service.GetTicketCancellation(c.Request.Context(), uint(ticketID))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "cancellation not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	role, _ := c.Get("user_role")
	if record.UserID != userID && role != "ADMIN" {
		response.RespondJSON(c, "error", http.StatusForbidden, "Cancellation does not belong to user", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellation retrieved successfully", record, nil)
}

func (ctrl *controller) GetMyCancellations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	records, err := ctrl.service.GetUserCancellations(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Cancellations retrieved successfully", records, nil)
}
