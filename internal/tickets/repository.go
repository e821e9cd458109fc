package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movibus/internal/holds"
	"movibus/internal/routes"

	"gorm.io/gorm"
)

type Repository interface {
	// PurchaseGuarded runs the admission sequence and the ticket insert
	// in one transaction: lock the trip row, re-validate trip status,
	// segment overlap, live holds and the overbooking ceiling under the
	// lock, then persist. A live hold owned by the purchaser is consumed
	// inside the same transaction.
	PurchaseGuarded(ctx context.Context, ticket *Ticket, capacity int, overbookingPct float64) error

	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByReference(ctx context.Context, reference string) (*Ticket, error)
	GetUserTickets(ctx context.Context, userID uint, limit, offset int) ([]Ticket, error)
	GetTripTickets(ctx context.Context, tripID uint) ([]Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) PurchaseGuarded(ctx context.Context, ticket *Ticket, capacity int, overbookingPct float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize all reservation decisions for the trip on its row
		// lock, then re-validate everything the caller saw outside the
		// transaction.
		var trip struct {
			ID     uint   `gorm:"column:id"`
			Status string `gorm:"column:status"`
		}
		err := tx.Table("trips").
			Select("id, status").
			Where("id = ?", ticket.TripID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&trip).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("trip not found")
			}
			return fmt.Errorf("failed to lock trip: %w", err)
		}

		if trip.Status != "SCHEDULED" && trip.Status != "BOARDING" {
			return &holds.TripNotBookableError{TripID: ticket.TripID, Status: trip.Status}
		}

		var soldRows []Ticket
		err = tx.
			Where("trip_id = ? AND seat_number = ? AND status = ?", ticket.TripID, ticket.SeatNumber, StatusSold).
			Find(&soldRows).Error
		if err != nil {
			return fmt.Errorf("failed to load sold tickets: %w", err)
		}

		candidate := ticket.Segment()
		soldSegments := make([]routes.Segment, len(soldRows))
		for i, row := range soldRows {
			soldSegments[i] = row.Segment()
		}

		now := time.Now()
		var liveHold holds.SeatHold
		holdFound := true
		err = tx.
			Where("trip_id = ? AND seat_number = ? AND status = ? AND expires_at > ?",
				ticket.TripID, ticket.SeatNumber, holds.StatusHold, now).
			First(&liveHold).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check live hold: %w", err)
			}
			holdFound = false
		}

		heldByOther := holdFound && liveHold.UserID != ticket.UserID
		if !IsSegmentFree(soldSegments, heldByOther, candidate) {
			reason := "segment overlaps an existing ticket"
			if heldByOther {
				reason = "seat is held by another passenger"
			}
			return &holds.SeatNotAvailableError{
				TripID:     ticket.TripID,
				SeatNumber: ticket.SeatNumber,
				Reason:     reason,
			}
		}

		var soldSeats int
		err = tx.
			Model(&Ticket{}).
			Where("trip_id = ? AND status = ?", ticket.TripID, StatusSold).
			Select("COUNT(DISTINCT seat_number)").
			Scan(&soldSeats).Error
		if err != nil {
			return fmt.Errorf("failed to count sold seats: %w", err)
		}

		if err := CheckCapacity(ticket.TripID, soldSeats, capacity, overbookingPct); err != nil {
			return err
		}

		if err := tx.Create(ticket).Error; err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		// Consuming the purchaser's own hold in the same transaction
		// keeps the hold state machine in step with the ticket row.
		if holdFound && liveHold.UserID == ticket.UserID {
			err = tx.Model(&holds.SeatHold{}).
				Where("id = ? AND status = ?", liveHold.ID, holds.StatusHold).
				Updates(map[string]interface{}{
					"status":     holds.StatusSold,
					"updated_at": now,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to consume hold: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).First(&ticket, "reference = ?", reference).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetUserTickets(ctx context.Context, userID uint, limit, offset int) ([]Ticket, error) {
	var ticketList []Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ticketList).Error
	return ticketList, err
}

func (r *repository) GetTripTickets(ctx context.Context, tripID uint) ([]Ticket, error) {
	var ticketList []Ticket
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("seat_number ASC").
		Find(&ticketList).Error
	return ticketList, err
}
