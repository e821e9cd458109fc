package holds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movibus/internal/shared/config"
	"movibus/internal/stream"
	"movibus/pkg/logger"

	"gorm.io/gorm"
)

type Service interface {
	// SetProducer injects the optional event producer for release events.
	SetProducer(producer stream.Producer)

	CreateHold(ctx context.Context, tripID uint, seatNumber int, userID uint) (*SeatHold, error)
	GetHold(ctx context.Context, id uint) (*SeatHold, error)
	GetUserHolds(ctx context.Context, userID uint, liveOnly bool) ([]SeatHold, error)
	HasActiveHold(ctx context.Context, tripID uint, seatNumber int) (bool, error)

	// ConsumeHold marks a hold SOLD after the purchase that used it
	// committed. No-op when the hold is already terminal.
	ConsumeHold(ctx context.Context, id uint) error
	ReleaseHold(ctx context.Context, id uint, userID uint) error

	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	repo     Repository
	producer stream.Producer
	cfg      config.ReservationConfig
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo: repo,
		cfg:  cfg.Reservation,
	}
}

func (s *service) SetProducer(producer stream.Producer) {
	s.producer = producer
}

func (s *service) CreateHold(ctx context.Context, tripID uint, seatNumber int, userID uint) (*SeatHold, error) {
	if seatNumber <= 0 {
		return nil, &SeatNotAvailableError{TripID: tripID, SeatNumber: seatNumber, Reason: "invalid seat number"}
	}

	hold := &SeatHold{
		TripID:     tripID,
		SeatNumber: seatNumber,
		UserID:     userID,
		Status:     StatusHold,
		ExpiresAt:  time.Now().Add(s.cfg.HoldDuration),
	}

	if err := s.repo.CreateHoldGuarded(ctx, hold); err != nil {
		return nil, err
	}

	logger.GetDefault().LogHoldCreated(ctx, hold.ID, tripID, seatNumber, hold.ExpiresAt)
	return hold, nil
}

func (s *service) GetHold(ctx context.Context, id uint) (*SeatHold, error) {
	hold, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("hold not found")
		}
		return nil, fmt.Errorf("failed to get hold: %w", err)
	}
	return hold, nil
}

func (s *service) GetUserHolds(ctx context.Context, userID uint, liveOnly bool) ([]SeatHold, error) {
	userHolds, err := s.repo.GetUserHolds(ctx, userID, liveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get holds: %w", err)
	}
	return userHolds, nil
}

func (s *service) HasActiveHold(ctx context.Context, tripID uint, seatNumber int) (bool, error) {
	_, err := s.repo.GetLiveHold(ctx, tripID, seatNumber, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check live hold: %w", err)
	}
	return true, nil
}

func (s *service) ConsumeHold(ctx context.Context, id uint) error {
	transitioned, err := s.repo.UpdateStatus(ctx, id, StatusHold, StatusSold)
	if err != nil {
		return fmt.Errorf("failed to consume hold: %w", err)
	}
	if !transitioned {
		// Already terminal; consuming twice is harmless.
		return nil
	}
	return nil
}

func (s *service) ReleaseHold(ctx context.Context, id uint, userID uint) error {
	hold, err := s.GetHold(ctx, id)
	if err != nil {
		return err
	}

	if hold.UserID != userID {
		return errors.New("unauthorized: hold does not belong to user")
	}
	if hold.Status.IsTerminal() {
		return fmt.Errorf("hold is already %s", hold.Status)
	}

	transitioned, err := s.repo.UpdateStatus(ctx, id, StatusHold, StatusReleased)
	if err != nil {
		return fmt.Errorf("failed to release hold: %w", err)
	}
	if !transitioned {
		return errors.New("hold is no longer active")
	}

	if s.producer != nil {
		event := &stream.Event{
			Type:       stream.EventHoldReleased,
			TripID:     hold.TripID,
			SeatNumber: hold.SeatNumber,
			HoldID:     hold.ID,
			UserID:     userID,
		}
		if err := s.producer.Publish(ctx, event); err != nil {
			logger.GetDefault().WarnWithContext(ctx, "failed to publish hold release event", map[string]interface{}{
				"hold_id": hold.ID, "error": err.Error(),
			})
		}
	}
	return nil
}

func (s *service) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	started := time.Now()
	expired, err := s.repo.SweepExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired holds: %w", err)
	}
	if expired > 0 {
		logger.GetDefault().LogHoldSweep(ctx, int(expired), time.Since(started))
	}
	return expired, nil
}
