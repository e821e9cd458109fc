package cancellation

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"movibus/internal/shared/config"
	"movibus/internal/stream"
	"movibus/internal/tickets"
	"movibus/internal/trips"
	"movibus/pkg/logger"
)

type Service interface {
	// CancelTicket cancels a SOLD ticket before departure and records
	// the time-tier refund. The seat's segments free up immediately.
	CancelTicket(ctx context.Context, ticketID, userID uint, reason string) (*Cancellation, error)

	GetCancellation(ctx context.Context, id uint) (*Cancellation, error)
	GetTicketCancellation(ctx context.Context, ticketID uint) (*Cancellation, error)
	GetUserCancellations(ctx context.Context, userID uint) ([]Cancellation, error)
}

type service struct {
	repo          Repository
	ticketService tickets.Service
	tripService   trips.Service
	producer      stream.Producer
	cfg           config.ReservationConfig
}

func NewService(repo Repository, ticketService tickets.Service, tripService trips.Service, producer stream.Producer, cfg *config.Config) Service {
	return &service{
		repo:          repo,
		ticketService: ticketService,
		tripService:   tripService,
		producer:      producer,
		cfg:           cfg.Reservation,
	}
}

func (s *service) CancelTicket(ctx context.Context, ticketID, userID uint, reason string) (*Cancellation, error) {
	ticket, err := s.ticketService.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripService.GetTrip(ctx, ticket.TripID)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.CancelGuarded(ctx, ticketID, userID, trip.DepartureTime, reason, s.cfg.Refund)
	if err != nil {
		return nil, err
	}

	s.tripService.InvalidateSeatMap(ctx, trip.ID)
	if s.producer != nil {
		event := &stream.Event{
			Type:       stream.EventTicketCancelled,
			TripID:     trip.ID,
			SeatNumber: ticket.SeatNumber,
			TicketID:   ticketID,
			UserID:     userID,
			Amount:     record.RefundAmount.StringFixed(2),
		}
		if err := s.producer.Publish(ctx, event); err != nil {
			logger.GetDefault().WarnWithContext(ctx, "failed to publish cancellation event", map[string]interface{}{
				"ticket_id": ticketID, "error": err.Error(),
			})
		}
	}

	logger.GetDefault().LogTicketCancelled(ctx, ticketID, record.RefundPercentage, record.RefundAmount.StringFixed(2))
	return record, nil
}

func (s *service) GetCancellation(ctx context.Context, id uint) (*Cancellation, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cancellation not found")
		}
		return nil, fmt.Errorf("failed to get cancellation: %w", err)
	}
	return record, nil
}

func (s *service) GetTicketCancellation(ctx context.Context, ticketID uint) (*Cancellation, error) {
	record, err := s.repo.GetByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cancellation not found")
		}
		return nil, fmt.Errorf("failed to get cancellation: %w", err)
	}
	return record, nil
}

func (s *service) GetUserCancellations(ctx context.Context, userID uint) ([]Cancellation, error) {
	records, err := s.repo.GetUserCancellations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cancellations: %w", err)
	}
	return records, nil
}
