package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movibus/internal/shared/utils/response"
)

type Controller interface {
	CreateRoute(c *gin.Context)
	GetRoute(c *gin.Context)
	GetAllRoutes(c *gin.Context)
	UpdateRoute(c *gin.Context)
	DeactivateRoute(c *gin.Context)
	AddStop(c *gin.Context)
	GetStops(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid "+name, nil, nil)
		return 0, false
	}
	return uint(id), true
}

func (ctrl *controller) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	route, err := ctrl.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Route created successfully", route, nil)
}

func (ctrl *controller) GetRoute(c *gin.Context) {
	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		return
	}

	route, err := ctrl.service.GetRoute(c.Request.Context(), routeID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "route not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Route retrieved successfully", route, nil)
}

func (ctrl *controller) GetAllRoutes(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	routeList, err := ctrl.service.GetAllRoutes(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Routes retrieved successfully", routeList, nil)
}

func (ctrl *controller) UpdateRoute(c *gin.Context) {
	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		return
	}

	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	route, err := ctrl.service.UpdateRoute(c.Request.Context(), routeID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "route not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Route updated successfully", route, nil)
}

func (ctrl *controller) DeactivateRoute(c *gin.Context) {
	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		return
	}

	if err := ctrl.service.DeactivateRoute(c.Request.Context(), routeID); err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "route not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Route deactivated successfully", nil, nil)
}

func (ctrl *controller) AddStop(c *gin.Context) {
	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		return
	}

	var req CreateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	stop, err := ctrl.service.AddStop(c.Request.Context(), routeID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "route not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Stop added successfully", stop, nil)
}

func (ctrl *controller) GetStops(c *gin.Context) {
	routeID, ok := parseIDParam(c, "routeId")
	if !ok {
		return
	}

	stops, err := ctrl.service.GetStops(c.Request.Context(), routeID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Stops retrieved successfully", stops, nil)
}

// IsInvalidSegment reports whether err is a segment validation failure.
// Controllers in other packages use it to choose a 400 over a 500.
func IsInvalidSegment(err error) bool {
	var invalid *InvalidSegmentError
	return errors.As(err, &invalid)
}
