package buses

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movibus/internal/shared/utils/response"
)

type Controller interface {
	CreateBus(c *gin.Context)
	GetBus(c *gin.Context)
	GetFleet(c *gin.Context)
	UpdateBus(c *gin.Context)
	RetireBus(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func parseBusID(c *gin.Context) (uint, bool) {
	raw := c.Param("busId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid bus ID", nil, nil)
		return 0, false
	}
	return uint(id), true
}

func (ctrl *controller) CreateBus(c *gin.Context) {
	var req CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bus, err := ctrl.service.CreateBus(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Bus created successfully", bus, nil)
}

func (ctrl *controller) GetBus(c *gin.Context) {
	busID, ok := parseBusID(c)
	if !ok {
		return
	}

	bus, err := ctrl.service.GetBus(c.Request.Context(), busID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "bus not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus retrieved successfully", bus, nil)
}

func (ctrl *controller) GetFleet(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	fleet, err := ctrl.service.GetFleet(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Fleet retrieved successfully", fleet, nil)
}

func (ctrl *controller) UpdateBus(c *gin.Context) {
	busID, ok := parseBusID(c)
	if !ok {
		return
	}

	var req UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	bus, err := ctrl.service.UpdateBus(c.Request.Context(), busID, req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "bus not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus updated successfully", bus, nil)
}

func (ctrl *controller) RetireBus(c *gin.Context) {
	busID, ok := parseBusID(c)
	if !ok {
		return
	}

	if err := ctrl.service.RetireBus(c.Request.Context(), busID); err != nil {
		statusCode := http.StatusBadRequest
		if err.Error() == "bus not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bus retired successfully", nil, nil)
}
