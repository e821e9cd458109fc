package tickets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"movibus/internal/buses"
	"movibus/internal/holds"
	"movibus/internal/pricing"
	"movibus/internal/routes"
	"movibus/internal/shared/config"
	"movibus/internal/stream"
	"movibus/internal/trips"
	"movibus/pkg/cache"
)

type fakeTicketRepo struct {
	purchased []*Ticket
	failWith  error
	nextID    uint
}

func (f *fakeTicketRepo) PurchaseGuarded(ctx context.Context, ticket *Ticket, capacity int, overbookingPct float64) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.nextID++
	ticket.ID = f.nextID
	f.purchased = append(f.purchased, ticket)
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id uint) (*Ticket, error) {
	for _, t := range f.purchased {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeTicketRepo) GetByReference(ctx context.Context, reference string) (*Ticket, error) {
	for _, t := range f.purchased {
		if t.Reference == reference {
			return t, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeTicketRepo) GetUserTickets(ctx context.Context, userID uint, limit, offset int) ([]Ticket, error) {
	var out []Ticket
	for _, t := range f.purchased {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) GetTripTickets(ctx context.Context, tripID uint) ([]Ticket, error) {
	var out []Ticket
	for _, t := range f.purchased {
		if t.TripID == tripID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeTripService struct {
	trip        *trips.Trip
	invalidated []uint
}

func (f *fakeTripService) GetTrip(ctx context.Context, id uint) (*trips.Trip, error) {
	if f.trip == nil || f.trip.ID != id {
		return nil, errors.New("trip not found")
	}
	return f.trip, nil
}

func (f *fakeTripService) InvalidateSeatMap(ctx context.Context, tripID uint) {
	f.invalidated = append(f.invalidated, tripID)
}

type fakeResolver struct {
	segment routes.Segment
	err     error
}

func (f *fakeResolver) ResolveSegment(ctx context.Context, routeID, fromStopID, toStopID uint) (routes.Segment, error) {
	if f.err != nil {
		return routes.Segment{}, f.err
	}
	return f.segment, nil
}

type fakePricing struct {
	quote *pricing.Quote
}

func (f *fakePricing) QuotePrice(ctx context.Context, routeID uint, segment routes.Segment, category string, departure time.Time) (*pricing.Quote, error) {
	return f.quote, nil
}

type fakeHoldService struct {
	created *holds.SeatHold
	err     error
}

func (f *fakeHoldService) CreateHold(ctx context.Context, tripID uint, seatNumber int, userID uint) (*holds.SeatHold, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &holds.SeatHold{
		ID:         1,
		TripID:     tripID,
		SeatNumber: seatNumber,
		UserID:     userID,
		Status:     holds.StatusHold,
		ExpiresAt:  time.Now().Add(5 * time.Minute),
	}
	return f.created, nil
}

type fakeProducer struct {
	events []*stream.Event
}

func (f *fakeProducer) Publish(ctx context.Context, event *stream.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func scheduledTrip() *trips.Trip {
	return &trips.Trip{
		ID:            7,
		RouteID:       1,
		BusID:         2,
		DepartureTime: time.Now().Add(48 * time.Hour),
		Status:        trips.StatusScheduled,
		Bus:           buses.Bus{ID: 2, Plate: "WXY-123", Capacity: 40},
	}
}

func quoteOf(price string) *pricing.Quote {
	p := decimal.RequireFromString(price)
	return &pricing.Quote{
		BasePrice:        p,
		DemandLevel:      pricing.DemandNone,
		DemandMultiplier: 1.0,
		PeakMultiplier:   1.0,
		FinalPrice:       p,
	}
}

type testDeps struct {
	repo     *fakeTicketRepo
	trips    *fakeTripService
	resolver *fakeResolver
	pricing  *fakePricing
	holds    *fakeHoldService
	producer *fakeProducer
}

func newTestService(t *testing.T, deps *testDeps) Service {
	t.Helper()
	cfg := config.Load()
	cfg.Reservation.OverbookingMaxPercentage = 0.05
	return &service{
		repo:           deps.repo,
		tripService:    tripServiceAdapter{deps.trips},
		routeService:   deps.resolver,
		pricingService: pricingAdapter{deps.pricing},
		holdService:    holdServiceAdapter{deps.holds},
		producer:       deps.producer,
		cfg:            cfg.Reservation,
	}
}

// Adapters widen the small fakes to the full service interfaces; the
// untested methods panic so a test reaching them fails loudly.

type tripServiceAdapter struct{ f *fakeTripService }

func (a tripServiceAdapter) SetCacheService(c cache.Service) { panic("not used") }
func (a tripServiceAdapter) CreateTrip(ctx context.Context, req trips.CreateTripRequest) (*trips.Trip, error) {
	panic("not used")
}
func (a tripServiceAdapter) GetTrip(ctx context.Context, id uint) (*trips.Trip, error) {
	return a.f.GetTrip(ctx, id)
}
func (a tripServiceAdapter) GetAllTrips(ctx context.Context, query trips.TripListQuery) (*trips.PaginatedTrips, error) {
	panic("not used")
}
func (a tripServiceAdapter) TransitionStatus(ctx context.Context, id uint, next trips.Status) (*trips.Trip, error) {
	panic("not used")
}
func (a tripServiceAdapter) GetSeatMap(ctx context.Context, tripID uint) (*trips.SeatMap, error) {
	panic("not used")
}
func (a tripServiceAdapter) GetOccupancy(ctx context.Context, tripID uint) (*trips.Occupancy, error) {
	panic("not used")
}
func (a tripServiceAdapter) InvalidateSeatMap(ctx context.Context, tripID uint) {
	a.f.InvalidateSeatMap(ctx, tripID)
}

type pricingAdapter struct{ f *fakePricing }

func (a pricingAdapter) QuotePrice(ctx context.Context, routeID uint, segment routes.Segment, category string, departure time.Time) (*pricing.Quote, error) {
	return a.f.QuotePrice(ctx, routeID, segment, category, departure)
}
func (a pricingAdapter) CreateFareRule(ctx context.Context, req pricing.FareRuleRequest) (*pricing.FareRule, error) {
	panic("not used")
}
func (a pricingAdapter) GetFareRules(ctx context.Context, routeID uint) ([]pricing.FareRule, error) {
	panic("not used")
}
func (a pricingAdapter) UpdateFareRule(ctx context.Context, id uint, req pricing.UpdateFareRuleRequest) error {
	panic("not used")
}
func (a pricingAdapter) DeleteFareRule(ctx context.Context, id uint) error { panic("not used") }

type holdServiceAdapter struct{ f *fakeHoldService }

func (a holdServiceAdapter) SetProducer(producer stream.Producer) {}
func (a holdServiceAdapter) CreateHold(ctx context.Context, tripID uint, seatNumber int, userID uint) (*holds.SeatHold, error) {
	return a.f.CreateHold(ctx, tripID, seatNumber, userID)
}
func (a holdServiceAdapter) GetHold(ctx context.Context, id uint) (*holds.SeatHold, error) {
	panic("not used")
}
func (a holdServiceAdapter) GetUserHolds(ctx context.Context, userID uint, liveOnly bool) ([]holds.SeatHold, error) {
	panic("not used")
}
func (a holdServiceAdapter) HasActiveHold(ctx context.Context, tripID uint, seatNumber int) (bool, error) {
	panic("not used")
}
func (a holdServiceAdapter) ConsumeHold(ctx context.Context, id uint) error { panic("not used") }
func (a holdServiceAdapter) ReleaseHold(ctx context.Context, id uint, userID uint) error {
	panic("not used")
}
func (a holdServiceAdapter) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	panic("not used")
}

func defaultDeps() *testDeps {
	return &testDeps{
		repo:     &fakeTicketRepo{},
		trips:    &fakeTripService{trip: scheduledTrip()},
		resolver: &fakeResolver{segment: routes.Segment{From: 1, To: 2}},
		pricing:  &fakePricing{quote: quoteOf("100000.00")},
		holds:    &fakeHoldService{},
		producer: &fakeProducer{},
	}
}

func purchaseRequest() PurchaseTicketRequest {
	return PurchaseTicketRequest{
		TripID:     7,
		SeatNumber: 12,
		FromStopID: 1,
		ToStopID:   2,
		Category:   "GENERAL",
	}
}

func TestPurchaseTicketHappyPath(t *testing.T) {
	deps := defaultDeps()
	svc := newTestService(t, deps)

	result, err := svc.PurchaseTicket(context.Background(), 3, purchaseRequest())
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	ticket := result.Ticket
	if ticket.ID == 0 {
		t.Error("ticket should have an ID after purchase")
	}
	if !ticket.Price.Equal(decimal.RequireFromString("100000.00")) {
		t.Errorf("price = %s, want 100000.00", ticket.Price)
	}
	if ticket.SegmentFrom != 1 || ticket.SegmentTo != 2 {
		t.Errorf("segment = [%d,%d), want [1,2)", ticket.SegmentFrom, ticket.SegmentTo)
	}
	if !strings.HasPrefix(ticket.Reference, "MVB-") {
		t.Errorf("reference %q should carry the MVB prefix", ticket.Reference)
	}

	if len(deps.trips.invalidated) != 1 || deps.trips.invalidated[0] != 7 {
		t.Errorf("seat map invalidations = %v, want [7]", deps.trips.invalidated)
	}
	if len(deps.producer.events) != 1 || deps.producer.events[0].Type != stream.EventTicketSold {
		t.Errorf("published events = %v, want one TICKET_SOLD", deps.producer.events)
	}
}

func TestPurchaseTicketDefaultsCategory(t *testing.T) {
	deps := defaultDeps()
	svc := newTestService(t, deps)

	req := purchaseRequest()
	req.Category = ""
	result, err := svc.PurchaseTicket(context.Background(), 3, req)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if result.Ticket.Category != "GENERAL" {
		t.Errorf("category = %q, want GENERAL", result.Ticket.Category)
	}
}

func TestPurchaseTicketRejectsClosedTrip(t *testing.T) {
	deps := defaultDeps()
	deps.trips.trip.Status = trips.StatusDeparted
	svc := newTestService(t, deps)

	_, err := svc.PurchaseTicket(context.Background(), 3, purchaseRequest())
	var notBookable *holds.TripNotBookableError
	if !errors.As(err, &notBookable) {
		t.Fatalf("expected TripNotBookableError, got %v", err)
	}
	if len(deps.producer.events) != 0 {
		t.Error("no event should be published for a rejected purchase")
	}
}

func TestPurchaseTicketRejectsSeatOutOfRange(t *testing.T) {
	deps := defaultDeps()
	svc := newTestService(t, deps)

	req := purchaseRequest()
	req.SeatNumber = 41
	_, err := svc.PurchaseTicket(context.Background(), 3, req)
	var seatTaken *holds.SeatNotAvailableError
	if !errors.As(err, &seatTaken) {
		t.Fatalf("expected SeatNotAvailableError, got %v", err)
	}
}

func TestPurchaseTicketSurfacesOverbooking(t *testing.T) {
	deps := defaultDeps()
	deps.repo.failWith = &OverbookingNotAllowedError{TripID: 7, SoldSeats: 42, Limit: 42, OccupancyPercent: 105}
	svc := newTestService(t, deps)

	_, err := svc.PurchaseTicket(context.Background(), 3, purchaseRequest())
	var overbooked *OverbookingNotAllowedError
	if !errors.As(err, &overbooked) {
		t.Fatalf("expected OverbookingNotAllowedError, got %v", err)
	}
	if len(deps.trips.invalidated) != 0 {
		t.Error("seat map should not be invalidated for a rejected purchase")
	}
}

func TestHoldSeatPublishesEvent(t *testing.T) {
	deps := defaultDeps()
	svc := newTestService(t, deps)

	hold, err := svc.HoldSeat(context.Background(), 3, HoldSeatRequest{TripID: 7, SeatNumber: 12})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	if hold.Status != holds.StatusHold {
		t.Errorf("hold status = %s, want HOLD", hold.Status)
	}
	if len(deps.producer.events) != 1 || deps.producer.events[0].Type != stream.EventHoldCreated {
		t.Errorf("published events = %v, want one HOLD_CREATED", deps.producer.events)
	}
}

func TestGenerateReferenceShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := generateReference()
		if err != nil {
			t.Fatalf("generate reference: %v", err)
		}
		parts := strings.Split(ref, "-")
		if len(parts) != 3 || parts[0] != "MVB" || len(parts[1]) != 8 || len(parts[2]) != 6 {
			t.Fatalf("reference %q does not match MVB-YYYYMMDD-XXXXXX", ref)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = true
	}
}

func TestGetTripTicketsManifest(t *testing.T) {
	deps := &testDeps{
		repo: &fakeTicketRepo{purchased: []*Ticket{
			{ID: 1, TripID: 7, SeatNumber: 12, Status: StatusSold},
			{ID: 2, TripID: 7, SeatNumber: 13, Status: StatusCancelled},
			{ID: 3, TripID: 8, SeatNumber: 1, Status: StatusSold},
		}},
	}
	svc := newTestService(t, deps)

	manifest, err := svc.GetTripTickets(context.Background(), 7)
	if err != nil {
		t.Fatalf("manifest read failed: %v", err)
	}
	if len(manifest) != 2 {
		t.Fatalf("manifest has %d tickets, want 2", len(manifest))
	}
	if manifest[1].Status != StatusCancelled {
		t.Errorf("cancelled rows must stay on the manifest, got %s", manifest[1].Status)
	}
}
