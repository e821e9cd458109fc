package routes

import (
	"movibus/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRouteRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - anyone can browse the network
	publicRoutes := router.Group("/routes")
	{
		publicRoutes.GET("", controller.GetAllRoutes)
		publicRoutes.GET("/:routeId", controller.GetRoute)
		publicRoutes.GET("/:routeId/stops", controller.GetStops)
	}

	// Admin routes - network management
	adminRoutes := router.Group("/admin/routes")
	adminRoutes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminRoutes.POST("", controller.CreateRoute)
		adminRoutes.PUT("/:routeId", controller.UpdateRoute)
		adminRoutes.DELETE("/:routeId", controller.DeactivateRoute)
		adminRoutes.POST("/:routeId/stops", controller.AddStop)
	}
}
