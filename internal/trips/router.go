package trips

import (
	"movibus/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTripRoutes(router *gin.RouterGroup, controller Controller) {
	publicTrips := router.Group("/trips")
	{
		publicTrips.GET("", controller.GetAllTrips)
		publicTrips.GET("/:tripId", controller.GetTrip)
		publicTrips.GET("/:tripId/seat-map", controller.GetSeatMap)
		publicTrips.GET("/:tripId/occupancy", controller.GetOccupancy)
	}

	adminTrips := router.Group("/admin/trips")
	adminTrips.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTrips.POST("", controller.CreateTrip)
		adminTrips.PATCH("/:tripId/status", controller.UpdateTripStatus)
	}
}
