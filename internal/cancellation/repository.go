package cancellation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"movibus/internal/shared/config"
	"movibus/internal/tickets"
)

type Repository interface {
	// CancelGuarded flips a SOLD ticket to CANCELLED and writes the
	// refund record in one transaction. The refund tier is picked from
	// the transaction's own clock so the decision and the audit row
	// always agree.
	CancelGuarded(ctx context.Context, ticketID, userID uint, departure time.Time, reason string, cfg config.RefundConfig) (*Cancellation, error)

	GetByID(ctx context.Context, id uint) (*Cancellation, error)
	GetByTicketID(ctx context.Context, ticketID uint) (*Cancellation, error)
	GetUserCancellations(ctx context.Context, userID uint) ([]Cancellation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CancelGuarded(ctx context.Context, ticketID, userID uint, departure time.Time, reason string, cfg config.RefundConfig) (*Cancellation, error) {
	var record *Cancellation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket tickets.Ticket
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", ticketID).
			First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("ticket not found")
			}
			return fmt.Errorf("failed to lock ticket: %w", err)
		}

		if ticket.UserID != userID {
			return errors.New("unauthorized: ticket does not belong to user")
		}

		switch ticket.Status {
		case tickets.StatusCancelled:
			return &AlreadyCancelledError{TicketID: ticketID, Reason: "already cancelled"}
		case tickets.StatusSold:
		default:
			return &AlreadyCancelledError{TicketID: ticketID, Reason: fmt.Sprintf("status is %s", ticket.Status)}
		}

		now := time.Now()
		if !departure.After(now) {
			return &AlreadyCancelledError{TicketID: ticketID, Reason: "trip has already departed"}
		}

		decision := Decide(ticket.Price, departure, now, cfg)

		err = tx.Model(&tickets.Ticket{}).
			Where("id = ? AND status = ?", ticketID, tickets.StatusSold).
			Updates(map[string]interface{}{
				"status":     tickets.StatusCancelled,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to cancel ticket: %w", err)
		}

		record = &Cancellation{
			TicketID:         ticketID,
			UserID:           userID,
			Reason:           reason,
			HoursBefore:      decision.HoursBefore,
			RefundPercentage: decision.RefundPercentage,
			RefundAmount:     decision.RefundAmount,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create cancellation record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Cancellation, error) {
	var record Cancellation
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) GetByTicketID(ctx context.Context, ticketID uint) (*Cancellation, error) {
	var record Cancellation
	err := r.db.WithContext(ctx).First(&record, "ticket_id = ?", ticketID).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) GetUserCancellations(ctx context.Context, userID uint) ([]Cancellation, error) {
	var records []Cancellation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
