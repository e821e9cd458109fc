package pricing

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movibus/internal/shared/utils/response"
)

type Controller interface {
	CreateFareRule(c *gin.Context)
	GetFareRules(c *gin.Context)
	UpdateFareRule(c *gin.Context)
	DeleteFareRule(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateFareRule(c *gin.Context) {
	var req FareRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	rule, err := ctrl.service.CreateFareRule(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Fare rule created successfully", rule, nil)
}

func (ctrl *controller) GetFareRules(c *gin.Context) {
	routeID, err := strconv.ParseUint(c.Param("routeId"), 10, 32)
	if err != nil || routeID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid route ID", nil, nil)
		return
	}

	rules, err := ctrl.service.GetFareRules(c.Request.Context(), uint(routeID))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Fare rules retrieved successfully", rules, nil)
}

func (ctrl *controller) UpdateFareRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("ruleId"), 10, 32)
	if err != nil || ruleID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid fare rule ID", nil, nil)
		return
	}

	var req UpdateFareRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.UpdateFareRule(c.Request.Context(), uint(ruleID), req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Fare rule updated successfully", nil, nil)
}

func (ctrl *controller) DeleteFareRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("ruleId"), 10, 32)
	if err != nil || ruleID == 0 {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid fare rule ID", nil, nil)
		return
	}

	if err := ctrl.service.DeleteFareRule(c.Request.Context(), uint(ruleID)); err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Fare rule deleted successfully", nil, nil)
}
