package trips

import (
	"context"
	"time"

	"movibus/internal/routes"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id uint) (*Trip, error)
	GetByIDWithRelations(ctx context.Context, id uint) (*Trip, error)
	GetAll(ctx context.Context, query TripListQuery) ([]Trip, int64, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// Seat map reads. Both scan tickets and seat_holds owned by other
	// packages; the read models live here because they are trip-shaped.
	GetSoldSegments(ctx context.Context, tripID uint) (map[int][]routes.Segment, error)
	GetHeldSeats(ctx context.Context, tripID uint, now time.Time) (map[int]bool, error)
	CountSoldSeats(ctx context.Context, tripID uint) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Trip, error) {
	var trip Trip
	err := r.db.WithContext(ctx).First(&trip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uint) (*Trip, error) {
	var trip Trip
	err := r.db.WithContext(ctx).
		Preload("Route").
		Preload("Route.Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("stop_order ASC")
		}).
		Preload("Bus").
		First(&trip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *repository) GetAll(ctx context.Context, query TripListQuery) ([]Trip, int64, error) {
	var tripList []Trip
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Trip{})

	if query.RouteID != 0 {
		baseQuery = baseQuery.Where("route_id = ?", query.RouteID)
	}
	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}
	if query.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			baseQuery = baseQuery.Where("departure_time >= ?", from)
		}
	}
	if query.DateTo != "" {
		if to, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			to = to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			baseQuery = baseQuery.Where("departure_time <= ?", to)
		}
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Route").
		Preload("Bus").
		Order("departure_time ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&tripList).Error

	return tripList, totalCount, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Trip{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) GetSoldSegments(ctx context.Context, tripID uint) (map[int][]routes.Segment, error) {
	var rows []struct {
		SeatNumber  int `gorm:"column:seat_number"`
		SegmentFrom int `gorm:"column:segment_from"`
		SegmentTo   int `gorm:"column:segment_to"`
	}

	err := r.db.WithContext(ctx).
		Table("tickets").
		Select("seat_number, segment_from, segment_to").
		Where("trip_id = ? AND status = 'SOLD'", tripID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	sold := make(map[int][]routes.Segment)
	for _, row := range rows {
		sold[row.SeatNumber] = append(sold[row.SeatNumber], routes.Segment{From: row.SegmentFrom, To: row.SegmentTo})
	}
	return sold, nil
}

func (r *repository) GetHeldSeats(ctx context.Context, tripID uint, now time.Time) (map[int]bool, error) {
	var seatNumbers []int

	err := r.db.WithContext(ctx).
		Table("seat_holds").
		Select("seat_number").
		Where("trip_id = ? AND status = 'HOLD' AND expires_at > ?", tripID, now).
		Find(&seatNumbers).Error
	if err != nil {
		return nil, err
	}

	held := make(map[int]bool)
	for _, n := range seatNumbers {
		held[n] = true
	}
	return held, nil
}

func (r *repository) CountSoldSeats(ctx context.Context, tripID uint) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Table("tickets").
		Where("trip_id = ? AND status = 'SOLD'", tripID).
		Select("COUNT(DISTINCT seat_number)").
		Scan(&count).Error
	return count, err
}
