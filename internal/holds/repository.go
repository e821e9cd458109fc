package holds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// CreateHoldGuarded inserts a hold inside one transaction that locks
	// the trip row and re-validates seat availability under the lock.
	CreateHoldGuarded(ctx context.Context, hold *SeatHold) error

	GetByID(ctx context.Context, id uint) (*SeatHold, error)
	GetLiveHold(ctx context.Context, tripID uint, seatNumber int, now time.Time) (*SeatHold, error)
	GetUserHolds(ctx context.Context, userID uint, liveOnly bool) ([]SeatHold, error)
	UpdateStatus(ctx context.Context, id uint, from, to Status) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateHoldGuarded(ctx context.Context, hold *SeatHold) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the trip row to serialize every reservation decision for
		// this trip, then re-check availability under the lock.
		var trip struct {
			ID     uint   `gorm:"column:id"`
			Status string `gorm:"column:status"`
		}
		err := tx.Table("trips").
			Select("id, status").
			Where("id = ?", hold.TripID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&trip).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("trip not found")
			}
			return fmt.Errorf("failed to lock trip: %w", err)
		}

		if trip.Status != "SCHEDULED" && trip.Status != "BOARDING" {
			return &TripNotBookableError{TripID: hold.TripID, Status: trip.Status}
		}

		now := time.Now()

		var liveHolds int64
		err = tx.Table("seat_holds").
			Where("trip_id = ? AND seat_number = ? AND status = 'HOLD' AND expires_at > ?",
				hold.TripID, hold.SeatNumber, now).
			Count(&liveHolds).Error
		if err != nil {
			return fmt.Errorf("failed to check live holds: %w", err)
		}
		if liveHolds > 0 {
			return &SeatNotAvailableError{
				TripID:     hold.TripID,
				SeatNumber: hold.SeatNumber,
				Reason:     "seat is held by another passenger",
			}
		}

		// A hold claims the whole trip, so any sold ticket on the seat
		// blocks it regardless of segment.
		var soldTickets int64
		err = tx.Table("tickets").
			Where("trip_id = ? AND seat_number = ? AND status = 'SOLD'",
				hold.TripID, hold.SeatNumber).
			Count(&soldTickets).Error
		if err != nil {
			return fmt.Errorf("failed to check sold tickets: %w", err)
		}
		if soldTickets > 0 {
			return &SeatNotAvailableError{
				TripID:     hold.TripID,
				SeatNumber: hold.SeatNumber,
				Reason:     "seat already sold on this trip",
			}
		}

		if err := tx.Create(hold).Error; err != nil {
			return fmt.Errorf("failed to create hold: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*SeatHold, error) {
	var hold SeatHold
	err := r.db.WithContext(ctx).First(&hold, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *repository) GetLiveHold(ctx context.Context, tripID uint, seatNumber int, now time.Time) (*SeatHold, error) {
	var hold SeatHold
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND seat_number = ? AND status = ? AND expires_at > ?",
			tripID, seatNumber, StatusHold, now).
		First(&hold).Error
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *repository) GetUserHolds(ctx context.Context, userID uint, liveOnly bool) ([]SeatHold, error) {
	var userHolds []SeatHold
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if liveOnly {
		query = query.Where("status = ? AND expires_at > ?", StatusHold, time.Now())
	}
	err := query.Order("created_at DESC").Find(&userHolds).Error
	return userHolds, err
}

// UpdateStatus performs a compare-and-swap transition. Returns false when
// the hold was not in the expected source state, which makes consume and
// release idempotent on terminal holds.
func (r *repository) UpdateStatus(ctx context.Context, id uint, from, to Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&SeatHold{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&SeatHold{}).
		Where("status = ? AND expires_at <= ?", StatusHold, now).
		Updates(map[string]interface{}{
			"status":     StatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
