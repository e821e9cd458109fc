package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"movibus/internal/buses"
	"movibus/internal/cancellation"
	"movibus/internal/holds"
	"movibus/internal/pricing"
	busroutes "movibus/internal/routes"
	"movibus/internal/shared/config"
	"movibus/internal/shared/database"
	"movibus/internal/stream"
	"movibus/internal/tickets"
	"movibus/internal/trips"
	"movibus/pkg/cache"
)

// Router wires every feature's repository/service/controller chain and
// mounts them under the versioned API prefix.
type Router struct {
	config   *config.Config
	db       *database.DB
	producer stream.Producer

	// services shared across features
	cacheService   cache.Service
	routeService   busroutes.Service
	busService     buses.Service
	tripService    trips.Service
	holdService    holds.Service
	pricingService pricing.Service
	ticketService  tickets.Service
}

func NewRouter(cfg *config.Config, db *database.DB, producer stream.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// HoldService exposes the hold service for the expiry sweeper.
func (r *Router) HoldService() holds.Service {
	return r.holdService
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupRouteRoutes(api)
		r.setupBusRoutes(api)
		r.setupTripRoutes(api)
		r.setupHoldRoutes(api)
		r.setupPricingRoutes(api)
		r.setupTicketRoutes(api)
		r.setupCancellationRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "movibus-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "movibus-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupRouteRoutes(rg *gin.RouterGroup) {
	repo := busroutes.NewRepository(r.db.GetPostgreSQL())
	r.routeService = busroutes.NewService(repo)
	controller := busroutes.NewController(r.routeService)
	busroutes.SetupRouteRoutes(rg, controller)
}

func (r *Router) setupBusRoutes(rg *gin.RouterGroup) {
	repo := buses.NewRepository(r.db.GetPostgreSQL())
	r.busService = buses.NewService(repo)
	controller := buses.NewController(r.busService)
	buses.SetupBusRoutes(rg, controller)
}

func (r *Router) setupTripRoutes(rg *gin.RouterGroup) {
	repo := trips.NewRepository(r.db.GetPostgreSQL())
	r.tripService = trips.NewService(repo, r.busService, r.config)

	if redisClient := r.db.GetRedisClient(); redisClient != nil {
		r.cacheService = cache.NewService(redisClient)
		r.tripService.SetCacheService(r.cacheService)
	}

	controller := trips.NewController(r.tripService)
	trips.SetupTripRoutes(rg, controller)
}

func (r *Router) setupHoldRoutes(rg *gin.RouterGroup) {
	repo := holds.NewRepository(r.db.GetPostgreSQL())
	r.holdService = holds.NewService(repo, r.config)
	r.holdService.SetProducer(r.producer)
	controller := holds.NewController(r.holdService)
	holds.SetupHoldRoutes(rg, controller)
}

func (r *Router) setupPricingRoutes(rg *gin.RouterGroup) {
	repo := pricing.NewRepository(r.db.GetPostgreSQL())
	r.pricingService = pricing.NewService(repo, r.config)
	controller := pricing.NewController(r.pricingService)
	pricing.SetupPricingRoutes(rg, controller)
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	repo := tickets.NewRepository(r.db.GetPostgreSQL())
	r.ticketService = tickets.NewService(
		repo,
		r.tripService,
		r.routeService,
		r.pricingService,
		r.holdService,
		r.producer,
		r.config,
	)
	controller := tickets.NewController(r.ticketService)
	tickets.SetupTicketRoutes(rg, controller)
}

func (r *Router) setupCancellationRoutes(rg *gin.RouterGroup) {
	repo := cancellation.NewRepository(r.db.GetPostgreSQL())
	service := cancellation.NewService(repo, r.ticketService, r.tripService, r.producer, r.config)
	controller := cancellation.NewController(service)
	cancellation.SetupCancellationRoutes(rg, controller)
}
