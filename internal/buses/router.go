package buses

import (
	"movibus/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBusRoutes(router *gin.RouterGroup, controller Controller) {
	publicBuses := router.Group("/buses")
	{
		publicBuses.GET("", controller.GetFleet)
		publicBuses.GET("/:busId", controller.GetBus)
	}

	adminBuses := router.Group("/admin/buses")
	adminBuses.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminBuses.POST("", controller.CreateBus)
		adminBuses.PUT("/:busId", controller.UpdateBus)
		adminBuses.DELETE("/:busId", controller.RetireBus)
	}
}
