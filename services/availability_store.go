// services/availability_store.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-backend/availability"
	"rental-backend/models"
)

// AvailabilityStore backs the availability engine with gorm/MySQL.
// Transact locks the listing row FOR UPDATE so validate-then-write runs
// serialized per listing.
type AvailabilityStore struct {
	DB *gorm.DB
}

func NewAvailabilityStore(db *gorm.DB) *AvailabilityStore {
	return &AvailabilityStore{DB: db}
}

func (s *AvailabilityStore) Transact(ctx context.Context, listingID uint, fn func(availability.Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("listing %d: %w", listingID, availability.ErrNotFound)
			}
			return fmt.Errorf("lock listing %d: %w", listingID, err)
		}
		return fn(&AvailabilityStore{DB: tx})
	})
}

func (s *AvailabilityStore) ListingByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("listing %d: %w", id, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get listing %d: %w", id, err)
	}
	return &listing, nil
}

func (s *AvailabilityStore) ReservationByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.WithContext(ctx).First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %d: %w", id, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get reservation %d: %w", id, err)
	}
	return &reservation, nil
}

func (s *AvailabilityStore) BlockedPeriodByID(ctx context.Context, id uint) (*models.BlockedPeriod, error) {
	var blocked models.BlockedPeriod
	if err := s.DB.WithContext(ctx).First(&blocked, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blocked period %d: %w", id, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get blocked period %d: %w", id, err)
	}
	return &blocked, nil
}

// HasOverlap uses the inclusive predicate on both tables: an existing
// period [s, e] overlaps [start, end] iff s <= end AND e >= start.
func (s *AvailabilityStore) HasOverlap(ctx context.Context, listingID uint, start, end time.Time, excludeReservationID uint) (bool, error) {
	var count int64

	q := s.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("listing_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			listingID, models.ReservationAccepted, end, start)
	if excludeReservationID != 0 {
		q = q.Where("id <> ?", excludeReservationID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count overlapping reservations: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	if err := s.DB.WithContext(ctx).Model(&models.BlockedPeriod{}).
		Where("listing_id = ? AND start_date <= ? AND end_date >= ?", listingID, end, start).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count overlapping blocked periods: %w", err)
	}
	return count > 0, nil
}

func (s *AvailabilityStore) CreateReservation(ctx context.Context, r *models.Reservation) error {
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		if isDuplicateKey(err) {
			return availability.ErrConflict
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (s *AvailabilityStore) SetReservationStatus(ctx context.Context, id uint, status models.ReservationStatus) error {
	res := s.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return availability.ErrConflict
		}
		return fmt.Errorf("update reservation %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reservation %d: %w", id, availability.ErrNotFound)
	}
	return nil
}

func (s *AvailabilityStore) CreateBlockedPeriod(ctx context.Context, b *models.BlockedPeriod) error {
	if err := s.DB.WithContext(ctx).Create(b).Error; err != nil {
		if isDuplicateKey(err) {
			return availability.ErrConflict
		}
		return fmt.Errorf("create blocked period: %w", err)
	}
	return nil
}

func (s *AvailabilityStore) DeleteBlockedPeriod(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.BlockedPeriod{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete blocked period %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("blocked period %d: %w", id, availability.ErrNotFound)
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysqldrv.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
