package tickets

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"movibus/internal/holds"
	"movibus/internal/pricing"
	"movibus/internal/routes"
	"movibus/internal/shared/config"
	"movibus/internal/stream"
	"movibus/internal/trips"
	"movibus/internal/users"
	"movibus/pkg/logger"

	"gorm.io/gorm"
)

// SegmentResolver is the slice of the route service purchases need.
type SegmentResolver interface {
	ResolveSegment(ctx context.Context, routeID, fromStopID, toStopID uint) (routes.Segment, error)
}

type Service interface {
	// PurchaseTicket runs the full admission pipeline: trip lookup,
	// segment resolution, price quote, then the guarded transactional
	// insert. On success it invalidates the trip's cached seat map and
	// publishes a TICKET_SOLD event.
	PurchaseTicket(ctx context.Context, userID uint, req PurchaseTicketRequest) (*PurchaseResult, error)

	// HoldSeat claims a whole seat for the hold window before purchase.
	HoldSeat(ctx context.Context, userID uint, req HoldSeatRequest) (*holds.SeatHold, error)

	GetTicket(ctx context.Context, id uint) (*Ticket, error)
	GetTicketByReference(ctx context.Context, reference string) (*Ticket, error)
	GetUserTickets(ctx context.Context, userID uint, limit, offset int) ([]Ticket, error)

	// GetTripTickets is the boarding manifest: every ticket on a trip,
	// cancelled rows included.
	GetTripTickets(ctx context.Context, tripID uint) ([]Ticket, error)
}

type service struct {
	repo           Repository
	tripService    trips.Service
	routeService   SegmentResolver
	pricingService pricing.Service
	holdService    holds.Service
	producer       stream.Producer
	cfg            config.ReservationConfig
}

func NewService(
	repo Repository,
	tripService trips.Service,
	routeService SegmentResolver,
	pricingService pricing.Service,
	holdService holds.Service,
	producer stream.Producer,
	cfg *config.Config,
) Service {
	return &service{
		repo:           repo,
		tripService:    tripService,
		routeService:   routeService,
		pricingService: pricingService,
		holdService:    holdService,
		producer:       producer,
		cfg:            cfg.Reservation,
	}
}

func (s *service) PurchaseTicket(ctx context.Context, userID uint, req PurchaseTicketRequest) (*PurchaseResult, error) {
	if req.Category == "" {
		req.Category = string(users.CategoryGeneral)
	}
	if !users.IsValidCategory(req.Category) {
		return nil, fmt.Errorf("invalid passenger category: %s", req.Category)
	}

	trip, err := s.tripService.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if !trip.Status.IsBookable() {
		return nil, &holds.TripNotBookableError{TripID: trip.ID, Status: string(trip.Status)}
	}
	if req.SeatNumber <= 0 || req.SeatNumber > trip.Bus.Capacity {
		return nil, &holds.SeatNotAvailableError{
			TripID:     trip.ID,
			SeatNumber: req.SeatNumber,
			Reason:     fmt.Sprintf("seat number must be between 1 and %d", trip.Bus.Capacity),
		}
	}

	segment, err := s.routeService.ResolveSegment(ctx, trip.RouteID, req.FromStopID, req.ToStopID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricingService.QuotePrice(ctx, trip.RouteID, segment, req.Category, trip.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("failed to quote price: %w", err)
	}

	reference, err := generateReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket reference: %w", err)
	}

	ticket := &Ticket{
		Reference:   reference,
		TripID:      trip.ID,
		UserID:      userID,
		SeatNumber:  req.SeatNumber,
		FromStopID:  req.FromStopID,
		ToStopID:    req.ToStopID,
		SegmentFrom: segment.From,
		SegmentTo:   segment.To,
		Category:    req.Category,
		Price:       quote.FinalPrice,
		Status:      StatusSold,
	}

	err = s.repo.PurchaseGuarded(ctx, ticket, trip.Bus.Capacity, s.cfg.OverbookingMaxPercentage)
	if err != nil {
		var overbooked *OverbookingNotAllowedError
		if errors.As(err, &overbooked) {
			logger.GetDefault().LogOverbookingRejected(ctx, trip.ID, overbooked.OccupancyPercent)
		}
		return nil, err
	}

	s.tripService.InvalidateSeatMap(ctx, trip.ID)
	s.publish(ctx, &stream.Event{
		Type:       stream.EventTicketSold,
		TripID:     trip.ID,
		SeatNumber: ticket.SeatNumber,
		TicketID:   ticket.ID,
		UserID:     userID,
		Amount:     ticket.Price.StringFixed(2),
	})

	logger.GetDefault().LogTicketSold(ctx, ticket.ID, trip.ID, ticket.SeatNumber, ticket.Price.StringFixed(2))

	return &PurchaseResult{Ticket: ticket, Quote: quote}, nil
}

func (s *service) HoldSeat(ctx context.Context, userID uint, req HoldSeatRequest) (*holds.SeatHold, error) {
	trip, err := s.tripService.GetTrip(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if !trip.Status.IsBookable() {
		return nil, &holds.TripNotBookableError{TripID: trip.ID, Status: string(trip.Status)}
	}
	if req.SeatNumber <= 0 || req.SeatNumber > trip.Bus.Capacity {
		return nil, &holds.SeatNotAvailableError{
			TripID:     trip.ID,
			SeatNumber: req.SeatNumber,
			Reason:     fmt.Sprintf("seat number must be between 1 and %d", trip.Bus.Capacity),
		}
	}

	hold, err := s.holdService.CreateHold(ctx, trip.ID, req.SeatNumber, userID)
	if err != nil {
		return nil, err
	}

	s.tripService.InvalidateSeatMap(ctx, trip.ID)
	s.publish(ctx, &stream.Event{
		Type:       stream.EventHoldCreated,
		TripID:     trip.ID,
		SeatNumber: hold.SeatNumber,
		HoldID:     hold.ID,
		UserID:     userID,
	})

	return hold, nil
}

func (s *service) GetTicket(ctx context.Context, id uint) (*Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func (s *service) GetTicketByReference(ctx context.Context, reference string) (*Ticket, error) {
	ticket, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func (s *service) GetUserTickets(ctx context.Context, userID uint, limit, offset int) ([]Ticket, error) {
	if limit <= 0 {
		limit = 10
	}
	ticketList, err := s.repo.GetUserTickets(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	return ticketList, nil
}

func (s *service) GetTripTickets(ctx context.Context, tripID uint) ([]Ticket, error) {
	ticketList, err := s.repo.GetTripTickets(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip tickets: %w", err)
	}
	return ticketList, nil
}

func (s *service) publish(ctx context.Context, event *stream.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		logger.GetDefault().WarnWithContext(ctx, "failed to publish reservation event", map[string]interface{}{
			"event_type": string(event.Type), "trip_id": event.TripID, "error": err.Error(),
		})
	}
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateReference builds a ticket reference like MVB-20260115-K7Q2XR.
// The alphabet drops ambiguous characters for phone and counter use.
func generateReference() (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = referenceAlphabet[n.Int64()]
	}
	return fmt.Sprintf("MVB-%s-%s", time.Now().UTC().Format("20060102"), string(suffix)), nil
}
