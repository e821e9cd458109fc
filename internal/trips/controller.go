package trips

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"movibus/internal/shared/utils/response"
)

type Controller interface {
	CreateTrip(c *gin.Context)
	GetTrip(c *gin.Context)
	GetAllTrips(c *gin.Context)
	UpdateTripStatus(c *gin.Context)
	GetSeatMap(c *gin.Context)
	GetOccupancy(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func parseTripID(c *gin.Context) (uint, bool) {
	raw := c.Param("tripId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid trip ID", nil, nil)
		return 0, false
	}
	return uint(id), true
}

func (ctrl *controller) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	trip, err := ctrl.service.CreateTrip(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Trip created successfully", trip, nil)
}

func (ctrl *controller) GetTrip(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	trip, err := ctrl.service.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "trip not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trip retrieved successfully", trip, nil)
}

func (ctrl *controller) GetAllTrips(c *gin.Context) {
	var query TripListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := ctrl.service.GetAllTrips(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trips retrieved successfully", result, nil)
}

func (ctrl *controller) UpdateTripStatus(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	var req UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	trip, err := ctrl.service.TransitionStatus(c.Request.Context(), tripID, Status(req.Status))
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "trip not found" {
			statusCode = http.StatusNotFound
		} else if strings.Contains(err.Error(), "cannot transition") {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Trip status updated successfully", trip, nil)
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), tripID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "trip not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (ctrl *controller) GetOccupancy(c *gin.Context) {
	tripID, ok := parseTripID(c)
	if !ok {
		return
	}

	occupancy, err := ctrl.service.GetOccupancy(c.Request.Context(), tripID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "trip not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Occupancy retrieved successfully", occupancy, nil)
}
