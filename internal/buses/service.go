package buses

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Service interface {
	CreateBus(ctx context.Context, req CreateBusRequest) (*Bus, error)
	GetBus(ctx context.Context, id uint) (*Bus, error)
	GetFleet(ctx context.Context, activeOnly bool) ([]Bus, error)
	UpdateBus(ctx context.Context, id uint, req UpdateBusRequest) (*Bus, error)
	RetireBus(ctx context.Context, id uint) error

	// GetCapacity is the seat count trip scheduling and seat maps size
	// against. Retired buses are not schedulable.
	GetCapacity(ctx context.Context, id uint) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateBus(ctx context.Context, req CreateBusRequest) (*Bus, error) {
	if _, err := s.repo.GetByPlate(ctx, req.Plate); err == nil {
		return nil, fmt.Errorf("bus with plate %s already exists", req.Plate)
	}

	bus := &Bus{
		Plate:    req.Plate,
		Model:    req.Model,
		Capacity: req.Capacity,
		Active:   true,
	}
	if err := s.repo.Create(ctx, bus); err != nil {
		return nil, fmt.Errorf("failed to create bus: %w", err)
	}
	return bus, nil
}

func (s *service) GetBus(ctx context.Context, id uint) (*Bus, error) {
	bus, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("bus not found")
		}
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}
	return bus, nil
}

func (s *service) GetFleet(ctx context.Context, activeOnly bool) ([]Bus, error) {
	fleet, err := s.repo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get fleet: %w", err)
	}
	return fleet, nil
}

func (s *service) UpdateBus(ctx context.Context, id uint, req UpdateBusRequest) (*Bus, error) {
	if _, err := s.GetBus(ctx, id); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("failed to update bus: %w", err)
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) GetCapacity(ctx context.Context, id uint) (int, error) {
	bus, err := s.GetBus(ctx, id)
	if err != nil {
		return 0, err
	}
	if !bus.Active {
		return 0, errors.New("bus is retired")
	}
	return bus.Capacity, nil
}

func (s *service) RetireBus(ctx context.Context, id uint) error {
	if _, err := s.GetBus(ctx, id); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, map[string]interface{}{"active": false})
}
