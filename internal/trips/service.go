package trips

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"movibus/internal/shared/config"
	"movibus/pkg/cache"
	"movibus/pkg/logger"

	"gorm.io/gorm"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateTrip(ctx context.Context, req CreateTripRequest) (*Trip, error)
	GetTrip(ctx context.Context, id uint) (*Trip, error)
	GetAllTrips(ctx context.Context, query TripListQuery) (*PaginatedTrips, error)
	TransitionStatus(ctx context.Context, id uint, next Status) (*Trip, error)

	GetSeatMap(ctx context.Context, tripID uint) (*SeatMap, error)
	GetOccupancy(ctx context.Context, tripID uint) (*Occupancy, error)

	// InvalidateSeatMap drops cached reads after a purchase, hold or
	// cancellation mutates the trip's occupancy.
	InvalidateSeatMap(ctx context.Context, tripID uint)
}

// BusLookup is the narrow slice of the bus service trips depend on.
type BusLookup interface {
	GetCapacity(ctx context.Context, busID uint) (int, error)
}

type service struct {
	repo         Repository
	busLookup    BusLookup
	cacheService cache.Service
	cfg          config.ReservationConfig
	seatMapTTL   time.Duration
}

func NewService(repo Repository, busLookup BusLookup, cfg *config.Config) Service {
	return &service{
		repo:       repo,
		busLookup:  busLookup,
		cfg:        cfg.Reservation,
		seatMapTTL: cfg.Redis.SeatMapTTL,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateTrip(ctx context.Context, req CreateTripRequest) (*Trip, error) {
	if req.DepartureTime.Before(time.Now()) {
		return nil, errors.New("departure time must be in the future")
	}

	if _, err := s.busLookup.GetCapacity(ctx, req.BusID); err != nil {
		return nil, fmt.Errorf("bus validation failed: %w", err)
	}

	trip := &Trip{
		RouteID:       req.RouteID,
		BusID:         req.BusID,
		DepartureTime: req.DepartureTime,
		Status:        StatusScheduled,
	}
	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

func (s *service) GetTrip(ctx context.Context, id uint) (*Trip, error) {
	trip, err := s.repo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

func (s *service) GetAllTrips(ctx context.Context, query TripListQuery) (*PaginatedTrips, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	tripList, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedTrips{
		Trips:      tripList,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) TransitionStatus(ctx context.Context, id uint, next Status) (*Trip, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("invalid trip status: %s", next)
	}

	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if !trip.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot transition trip from %s to %s", trip.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("failed to update trip status: %w", err)
	}

	s.InvalidateSeatMap(ctx, id)

	trip.Status = next
	return trip, nil
}

func (s *service) GetSeatMap(ctx context.Context, tripID uint) (*SeatMap, error) {
	cacheKey := cache.SeatMapKey(tripID)

	var cached SeatMap
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	trip, err := s.repo.GetByIDWithRelations(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	sold, err := s.repo.GetSoldSegments(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold segments: %w", err)
	}

	held, err := s.repo.GetHeldSeats(ctx, tripID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load held seats: %w", err)
	}

	seatMap := &SeatMap{
		TripID:      tripID,
		Capacity:    trip.Bus.Capacity,
		Seats:       make([]SeatView, 0, trip.Bus.Capacity),
		GeneratedAt: time.Now(),
	}
	for seat := 1; seat <= trip.Bus.Capacity; seat++ {
		seatMap.Seats = append(seatMap.Seats, SeatView{
			SeatNumber:   seat,
			SoldSegments: sold[seat],
			Held:         held[seat],
		})
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, seatMap, s.seatMapTTL); err != nil {
			logger.GetDefault().WarnWithContext(ctx, "failed to cache seat map", map[string]interface{}{
				"trip_id": tripID, "error": err.Error(),
			})
		}
	}

	return seatMap, nil
}

func (s *service) GetOccupancy(ctx context.Context, tripID uint) (*Occupancy, error) {
	cacheKey := cache.OccupancyKey(tripID)

	var cached Occupancy
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	trip, err := s.repo.GetByIDWithRelations(ctx, tripID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	soldSeats, err := s.repo.CountSoldSeats(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sold seats: %w", err)
	}

	capacity := trip.Bus.Capacity
	limit := int(math.Ceil(float64(capacity) * (1 + s.cfg.OverbookingMaxPercentage)))

	occupancyPercent := 0.0
	if capacity > 0 {
		occupancyPercent = float64(soldSeats) / float64(capacity) * 100
	}

	occupancy := &Occupancy{
		TripID:           tripID,
		Capacity:         capacity,
		SoldSeats:        soldSeats,
		Limit:            limit,
		OccupancyPercent: math.Round(occupancyPercent*100) / 100,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, occupancy, s.seatMapTTL); err != nil {
			logger.GetDefault().WarnWithContext(ctx, "failed to cache occupancy", map[string]interface{}{
				"trip_id": tripID, "error": err.Error(),
			})
		}
	}

	return occupancy, nil
}

func (s *service) InvalidateSeatMap(ctx context.Context, tripID uint) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, cache.TripPattern(tripID)); err != nil {
		logger.GetDefault().WarnWithContext(ctx, "failed to invalidate seat map cache", map[string]interface{}{
			"trip_id": tripID, "error": err.Error(),
		})
	}
}
