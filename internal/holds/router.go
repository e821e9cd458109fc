package holds

import (
	"movibus/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupHoldRoutes wires hold queries and release. Hold creation goes
// through the reservation endpoint so availability and trip checks run in
// one place.
func SetupHoldRoutes(router *gin.RouterGroup, controller Controller) {
	userHolds := router.Group("/holds")
	userHolds.Use(middleware.JWTAuth())
	{
		userHolds.GET("", controller.GetMyHolds)
		userHolds.GET("/:holdId", controller.GetHold)
		userHolds.DELETE("/:holdId", controller.ReleaseHold)
	}
}
