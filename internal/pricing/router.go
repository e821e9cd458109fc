package pricing

import (
	"movibus/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPricingRoutes(router *gin.RouterGroup, controller Controller) {
	publicFares := router.Group("/routes/:routeId/fares")
	{
		publicFares.GET("", controller.GetFareRules)
	}

	adminFares := router.Group("/admin/fares")
	adminFares.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminFares.POST("", controller.CreateFareRule)
		adminFares.PATCH("/:ruleId", controller.UpdateFareRule)
		adminFares.DELETE("/:ruleId", controller.DeleteFareRule)
	}
}
