package holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"movibus/internal/shared/config"

	"gorm.io/gorm"
)

type fakeRepo struct {
	holds      map[uint]*SeatHold
	nextID     uint
	guardError error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{holds: make(map[uint]*SeatHold), nextID: 1}
}

func (f *fakeRepo) CreateHoldGuarded(ctx context.Context, hold *SeatHold) error {
	if f.guardError != nil {
		return f.guardError
	}
	for _, existing := range f.holds {
		if existing.TripID == hold.TripID && existing.SeatNumber == hold.SeatNumber && existing.IsLive(time.Now()) {
			return &SeatNotAvailableError{TripID: hold.TripID, SeatNumber: hold.SeatNumber, Reason: "seat is held by another passenger"}
		}
	}
	hold.ID = f.nextID
	f.nextID++
	f.holds[hold.ID] = hold
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uint) (*SeatHold, error) {
	hold, ok := f.holds[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *hold
	return &copied, nil
}

func (f *fakeRepo) GetLiveHold(ctx context.Context, tripID uint, seatNumber int, now time.Time) (*SeatHold, error) {
	for _, hold := range f.holds {
		if hold.TripID == tripID && hold.SeatNumber == seatNumber && hold.IsLive(now) {
			copied := *hold
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserHolds(ctx context.Context, userID uint, liveOnly bool) ([]SeatHold, error) {
	var result []SeatHold
	for _, hold := range f.holds {
		if hold.UserID != userID {
			continue
		}
		if liveOnly && !hold.IsLive(time.Now()) {
			continue
		}
		result = append(result, *hold)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uint, from, to Status) (bool, error) {
	hold, ok := f.holds[id]
	if !ok || hold.Status != from {
		return false, nil
	}
	hold.Status = to
	return true, nil
}

func (f *fakeRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for _, hold := range f.holds {
		if hold.Status == StatusHold && !hold.ExpiresAt.After(now) {
			hold.Status = StatusExpired
			count++
		}
	}
	return count, nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Reservation.HoldDuration = 10 * time.Minute
	return cfg
}

func TestCreateHoldSetsExpiry(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())

	before := time.Now()
	hold, err := svc.CreateHold(context.Background(), 1, 10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hold.Status != StatusHold {
		t.Errorf("expected status HOLD, got %s", hold.Status)
	}

	wantExpiry := before.Add(10 * time.Minute)
	if hold.ExpiresAt.Before(wantExpiry) || hold.ExpiresAt.After(wantExpiry.Add(time.Second)) {
		t.Errorf("expiry %v not within expected window around %v", hold.ExpiresAt, wantExpiry)
	}
}

func TestCreateHoldConflict(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	if _, err := svc.CreateHold(ctx, 1, 10, 7); err != nil {
		t.Fatalf("first hold failed: %v", err)
	}

	_, err := svc.CreateHold(ctx, 1, 10, 8)
	var notAvailable *SeatNotAvailableError
	if !errors.As(err, &notAvailable) {
		t.Fatalf("expected SeatNotAvailableError, got %v", err)
	}
}

func TestCreateHoldRejectsBadSeat(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())

	_, err := svc.CreateHold(context.Background(), 1, 0, 7)
	var notAvailable *SeatNotAvailableError
	if !errors.As(err, &notAvailable) {
		t.Fatalf("expected SeatNotAvailableError, got %v", err)
	}
}

func TestConsumeHoldIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, 1, 10, 7)
	if err != nil {
		t.Fatalf("hold creation failed: %v", err)
	}

	if err := svc.ConsumeHold(ctx, hold.ID); err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if err := svc.ConsumeHold(ctx, hold.ID); err != nil {
		t.Fatalf("second consume should be a no-op, got %v", err)
	}

	stored, _ := repo.GetByID(ctx, hold.ID)
	if stored.Status != StatusSold {
		t.Errorf("expected status SOLD, got %s", stored.Status)
	}
}

func TestReleaseHoldOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, 1, 10, 7)
	if err != nil {
		t.Fatalf("hold creation failed: %v", err)
	}

	if err := svc.ReleaseHold(ctx, hold.ID, 99); err == nil {
		t.Fatal("expected ownership error for wrong user")
	}

	if err := svc.ReleaseHold(ctx, hold.ID, 7); err != nil {
		t.Fatalf("release by owner failed: %v", err)
	}

	stored, _ := repo.GetByID(ctx, hold.ID)
	if stored.Status != StatusReleased {
		t.Errorf("expected status RELEASED, got %s", stored.Status)
	}

	// Releasing a terminal hold fails.
	if err := svc.ReleaseHold(ctx, hold.ID, 7); err == nil {
		t.Fatal("expected error releasing terminal hold")
	}
}

func TestSweepExpired(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	hold, err := svc.CreateHold(ctx, 1, 10, 7)
	if err != nil {
		t.Fatalf("hold creation failed: %v", err)
	}

	// Not expired yet.
	expired, err := svc.SweepExpired(ctx, time.Now())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if expired != 0 {
		t.Errorf("expected 0 expired, got %d", expired)
	}

	expired, err = svc.SweepExpired(ctx, time.Now().Add(11*time.Minute))
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if expired != 1 {
		t.Errorf("expected 1 expired, got %d", expired)
	}

	stored, _ := repo.GetByID(ctx, hold.ID)
	if stored.Status != StatusExpired {
		t.Errorf("expected status EXPIRED, got %s", stored.Status)
	}

	// Sweeping again finds nothing; terminal states stay put.
	expired, _ = svc.SweepExpired(ctx, time.Now().Add(20*time.Minute))
	if expired != 0 {
		t.Errorf("expected idempotent sweep, got %d", expired)
	}
}

func TestHasActiveHold(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())
	ctx := context.Background()

	active, err := svc.HasActiveHold(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active {
		t.Error("expected no active hold")
	}

	if _, err := svc.CreateHold(ctx, 1, 10, 7); err != nil {
		t.Fatalf("hold creation failed: %v", err)
	}

	active, err = svc.HasActiveHold(ctx, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !active {
		t.Error("expected active hold")
	}
}
