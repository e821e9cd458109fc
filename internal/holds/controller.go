package holds

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movibus/internal/shared/utils/response"
)

type Controller interface {
	GetHold(c *gin.Context)
	GetMyHolds(c *gin.Context)
	ReleaseHold(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
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

func parseHoldID(c *gin.Context) (uint, bool) {
	raw := c.Param("holdId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hold ID", nil, nil)
		return 0, false
	}
	return uint(id), true
}

func (ctrl *controller) GetHold(c *gin.Context) {
	holdID, ok := parseHoldID(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	hold, err := ctrl.service.GetHold(c.Request.Context(), holdID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "hold not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	if hold.UserID != userID {
		response.RespondJSON(c, "error", http.StatusForbidden, "Hold does not belong to user", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hold retrieved successfully", hold, nil)
}

func (ctrl *controller) GetMyHolds(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	liveOnly := c.DefaultQuery("live", "true") == "true"

	userHolds, err := ctrl.service.GetUserHolds(c.Request.Context(), userID, liveOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Holds retrieved successfully", userHolds, nil)
}

func (ctrl *controller) ReleaseHold(c *gin.Context) {
	holdID, ok := parseHoldID(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := ctrl.service.ReleaseHold(c.Request.Context(), holdID, userID); err != nil {
		statusCode := http.StatusBadRequest
		switch err.Error() {
		case "hold not found":
			statusCode = http.StatusNotFound
		case "unauthorized: hold does not belong to user":
			statusCode = http.StatusForbidden
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hold released successfully", nil, nil)
}
