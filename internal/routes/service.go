package routes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Service interface {
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error)
	GetRoute(ctx context.Context, id uint) (*Route, error)
	GetAllRoutes(ctx context.Context, activeOnly bool) ([]Route, error)
	UpdateRoute(ctx context.Context, id uint, req UpdateRouteRequest) (*Route, error)
	DeactivateRoute(ctx context.Context, id uint) error

	AddStop(ctx context.Context, routeID uint, req CreateStopRequest) (*Stop, error)
	GetStops(ctx context.Context, routeID uint) ([]Stop, error)

	// ResolveSegment validates a boarding/alighting stop pair against a
	// route and returns the derived interval.
	ResolveSegment(ctx context.Context, routeID, fromStopID, toStopID uint) (Segment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error) {
	route := &Route{
		Name:     req.Name,
		Origin:   req.Origin,
		Terminus: req.Terminus,
		Active:   true,
	}

	for i, stopReq := range req.Stops {
		route.Stops = append(route.Stops, Stop{
			Name:  stopReq.Name,
			Order: i + 1,
		})
	}

	if err := s.repo.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	return route, nil
}

func (s *service) GetRoute(ctx context.Context, id uint) (*Route, error) {
	route, err := s.repo.GetByIDWithStops(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("route not found")
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}

func (s *service) GetAllRoutes(ctx context.Context, activeOnly bool) ([]Route, error) {
	routeList, err := s.repo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get routes: %w", err)
	}
	return routeList, nil
}

func (s *service) UpdateRoute(ctx context.Context, id uint, req UpdateRouteRequest) (*Route, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("route not found")
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Origin != nil {
		updates["origin"] = *req.Origin
	}
	if req.Terminus != nil {
		updates["terminus"] = *req.Terminus
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update route: %w", err)
		}
	}

	return s.repo.GetByIDWithStops(ctx, id)
}

func (s *service) DeactivateRoute(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("route not found")
		}
		return fmt.Errorf("failed to get route: %w", err)
	}
	return s.repo.Update(ctx, id, map[string]interface{}{"active": false})
}

func (s *service) AddStop(ctx context.Context, routeID uint, req CreateStopRequest) (*Stop, error) {
	if _, err := s.repo.GetByID(ctx, routeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("route not found")
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	existing, err := s.repo.GetStopsByRouteID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stops: %w", err)
	}

	// Appending keeps order numbers strictly increasing.
	order := 1
	if len(existing) > 0 {
		order = existing[len(existing)-1].Order + 1
	}

	stop := &Stop{
		RouteID: routeID,
		Name:    req.Name,
		Order:   order,
	}
	if err := s.repo.CreateStop(ctx, stop); err != nil {
		return nil, fmt.Errorf("failed to create stop: %w", err)
	}
	return stop, nil
}

func (s *service) GetStops(ctx context.Context, routeID uint) ([]Stop, error) {
	stops, err := s.repo.GetStopsByRouteID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stops: %w", err)
	}
	return stops, nil
}

func (s *service) ResolveSegment(ctx context.Context, routeID, fromStopID, toStopID uint) (Segment, error) {
	route, err := s.repo.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Segment{}, errors.New("route not found")
		}
		return Segment{}, fmt.Errorf("failed to get route: %w", err)
	}

	fromStop, err := s.repo.GetStopByID(ctx, fromStopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Segment{}, &InvalidSegmentError{Reason: "boarding stop not found"}
		}
		return Segment{}, fmt.Errorf("failed to get boarding stop: %w", err)
	}

	toStop, err := s.repo.GetStopByID(ctx, toStopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Segment{}, &InvalidSegmentError{Reason: "alighting stop not found"}
		}
		return Segment{}, fmt.Errorf("failed to get alighting stop: %w", err)
	}

	return NewSegment(route, fromStop, toStop)
}
