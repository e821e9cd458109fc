package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"movibus/internal/holds"
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

func testTicket() *Ticket {
	return &Ticket{
		Reference:   "MVB-20260115-TEST01",
		TripID:      7,
		UserID:      3,
		SeatNumber:  12,
		SegmentFrom: 1,
		SegmentTo:   2,
		Category:    "GENERAL",
		Price:       decimal.RequireFromString("100000.00"),
		Status:      StatusSold,
	}
}

func expectTripLock(mock sqlmock.Sqlmock, status string) {
	mock.ExpectQuery(`SELECT id, status FROM "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(7, status))
}

func expectSoldTickets(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).WillReturnRows(rows)
}

func emptyTicketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "trip_id", "user_id", "seat_number", "segment_from", "segment_to", "status"})
}

func expectLiveHold(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "seat_holds"`).WillReturnRows(rows)
}

func emptyHoldRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "trip_id", "seat_number", "user_id", "status", "expires_at"})
}

func expectSoldSeatCount(mock sqlmock.Sqlmock, count int) {
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT seat_number\) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestPurchaseGuardedAdmits(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTripLock(mock, "SCHEDULED")
	expectSoldTickets(mock, emptyTicketRows())
	expectLiveHold(mock, emptyHoldRows())
	expectSoldSeatCount(mock, 0)
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	ticket := testTicket()
	if err := repo.PurchaseGuarded(context.Background(), ticket, 40, 0.05); err != nil {
		t.Fatalf("purchase should succeed, got %v", err)
	}
	if ticket.ID != 1 {
		t.Errorf("ticket ID = %d, want 1", ticket.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPurchaseGuardedConsumesOwnHold(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTripLock(mock, "BOARDING")
	expectSoldTickets(mock, emptyTicketRows())
	expectLiveHold(mock, emptyHoldRows().
		AddRow(9, 7, 12, 3, "HOLD", time.Now().Add(5*time.Minute)))
	expectSoldSeatCount(mock, 5)
	mock.ExpectQuery(`INSERT INTO "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectExec(`UPDATE "seat_holds"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.PurchaseGuarded(context.Background(), testTicket(), 40, 0.05); err != nil {
		t.Fatalf("purchase with own hold should succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPurchaseGuardedRejectsForeignHold(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTripLock(mock, "SCHEDULED")
	expectSoldTickets(mock, emptyTicketRows())
	expectLiveHold(mock, emptyHoldRows().
		AddRow(9, 7, 12, 99, "HOLD", time.Now().Add(5*time.Minute)))
	mock.ExpectRollback()

	err := repo.PurchaseGuarded(context.Background(), testTicket(), 40, 0.05)
	var seatTaken *holds.SeatNotAvailableError
	if !errors.As(err, &seatTaken) {
		t.Fatalf("expected SeatNotAvailableError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPurchaseGuardedRejectsOverlap(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTripLock(mock, "SCHEDULED")
	expectSoldTickets(mock, emptyTicketRows().
		AddRow(11, 7, 42, 12, 1, 3, "SOLD"))
	expectLiveHold(mock, emptyHoldRows())
	mock.ExpectRollback()

	err := repo.PurchaseGuarded(context.Background(), testTicket(), 40, 0.05)
	var seatTaken *holds.SeatNotAvailableError
	if !errors.As(err, &seatTaken) {
		t.Fatalf("expected SeatNotAvailableError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPurchaseGuardedRejectsAtCeiling(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTripLock(mock, "SCHEDULED")
	expectSoldTickets(mock, emptyTicketRows())
	expectLiveHold(mock, emptyHoldRows())
	expectSoldSeatCount(mock, 42)
	mock.ExpectRollback()

	err := repo.PurchaseGuarded(context.Background(), testTicket(), 40, 0.05)
	var overbooked *OverbookingNotAllowedError
	if !errors.As(err, &overbooked) {
		t.Fatalf("expected OverbookingNotAllowedError, got %v", err)
	}
	if overbooked.Limit != 42 {
		t.Errorf("limit = %d, want 42", overbooked.Limit)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPurchaseGuardedRejectsClosedTrip(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	expectTripLock(mock, "DEPARTED")
	mock.ExpectRollback()

	err := repo.PurchaseGuarded(context.Background(), testTicket(), 40, 0.05)
	var notBookable *holds.TripNotBookableError
	if !errors.As(err, &notBookable) {
		t.Fatalf("expected TripNotBookableError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
