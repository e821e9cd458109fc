package tickets

import (
	"github.com/gin-gonic/gin"

	"movibus/internal/shared/middleware"
)

func SetupTicketRoutes(router *gin.RouterGroup, controller Controller) {
	tickets := router.Group("/tickets")
	tickets.Use(middleware.JWTAuth())
	{
		tickets.POST("", controller.PurchaseTicket)
		tickets.GET("", controller.GetMyTickets)
		tickets.GET("/:ticketId", controller.GetTicket)
	}

	// Hold creation lives here because the purchase pipeline owns the
	// trip-bookable and seat checks; reads and releases are under /holds.
	holdRoutes := router.Group("/holds")
	holdRoutes.Use(middleware.JWTAuth())
	{
		holdRoutes.POST("", controller.HoldSeat)
	}

	adminTrips := router.Group("/admin/trips")
	adminTrips.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTrips.GET("/:tripId/tickets", controller.GetTripManifest)
	}
}
