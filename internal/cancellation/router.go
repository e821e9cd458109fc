package cancellation

import (
	"github.com/gin-gonic/gin"

	"movibus/internal/shared/middleware"
)

func SetupCancellationRoutes(router *gin.RouterGroup, controller Controller) {
	// Cancelling addresses the ticket; reads address the refund record.
	ticketRoutes := router.Group("/tickets")
	ticketRoutes.Use(middleware.JWTAuth())
	{
		ticketRoutes.POST("/:ticketId/cancel", controller.CancelTicket)
		ticketRoutes.GET("/:ticketId/cancellation", controller.GetTicketCancellation)
	}

	cancellations := router.Group("/cancellations")
	cancellations.Use(middleware.JWTAuth())
	{
		cancellations.GET("", controller.GetMyCancellations)
		cancellations.GET("/:cancellationId", controller.GetCancellation)
	}
}
