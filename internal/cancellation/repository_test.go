package cancellation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

func expectTicketLock(mock sqlmock.Sqlmock, userID uint, status string) {
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "user_id", "seat_number", "price", "status"}).
			AddRow(5, 7, userID, 12, "100000.00", status))
}

func TestCancelGuardedRecordsRefund(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTicketLock(mock, 3, "SOLD")
	mock.ExpectExec(`UPDATE "tickets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "cancellations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	departure := time.Now().Add(50 * time.Hour)
	record, err := repo.CancelGuarded(context.Background(), 5, 3, departure, "change of plans", testRefundConfig())
	if err != nil {
		t.Fatalf("cancel should succeed, got %v", err)
	}
	if record.RefundPercentage != 90 {
		t.Errorf("refund percentage = %d, want 90", record.RefundPercentage)
	}
	if got := record.RefundAmount.StringFixed(2); got != "90000.00" {
		t.Errorf("refund amount = %s, want 90000.00", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelGuardedRejectsAfterDeparture(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTicketLock(mock, 3, "SOLD")
	mock.ExpectRollback()

	departure := time.Now().Add(-2 * time.Hour)
	_, err := repo.CancelGuarded(context.Background(), 5, 3, departure, "", testRefundConfig())

	var cancelErr *AlreadyCancelledError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("expected AlreadyCancelledError, got %v", err)
	}
	if !strings.Contains(cancelErr.Reason, "departed") {
		t.Errorf("reason = %q, want departure rejection", cancelErr.Reason)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelGuardedRejectsNoShow(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTicketLock(mock, 3, "NO_SHOW")
	mock.ExpectRollback()

	departure := time.Now().Add(50 * time.Hour)
	_, err := repo.CancelGuarded(context.Background(), 5, 3, departure, "", testRefundConfig())

	var cancelErr *AlreadyCancelledError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("expected AlreadyCancelledError, got %v", err)
	}
	if !strings.Contains(cancelErr.Reason, "NO_SHOW") {
		t.Errorf("reason = %q, want status rejection", cancelErr.Reason)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelGuardedRejectsRepeat(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTicketLock(mock, 3, "CANCELLED")
	mock.ExpectRollback()

	departure := time.Now().Add(50 * time.Hour)
	_, err := repo.CancelGuarded(context.Background(), 5, 3, departure, "", testRefundConfig())

	var cancelErr *AlreadyCancelledError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("expected AlreadyCancelledError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByTicketIDReturnsRefundRecord(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "cancellations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ticket_id", "user_id", "refund_percentage", "refund_amount"}).
			AddRow(1, 5, 3, 90, "90000.00"))

	record, err := repo.GetByTicketID(context.Background(), 5)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if record.TicketID != 5 || record.RefundPercentage != 90 {
		t.Errorf("record = %+v, want ticket 5 at 90%%", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelGuardedRejectsForeignTicket(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTicketLock(mock, 99, "SOLD")
	mock.ExpectRollback()

	departure := time.Now().Add(50 * time.Hour)
	_, err := repo.CancelGuarded(context.Background(), 5, 3, departure, "", testRefundConfig())
	if err == nil || !strings.Contains(err.Error(), "unauthorized") {
		t.Fatalf("expected ownership rejection, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
