package availability

import (
	"context"
	"time"

	"rental-backend/models"
)

// Store is the persistence boundary of the engine. The engine is
// stateless between calls; every correctness guarantee that needs
// atomicity is expressed through Transact.
type Store interface {
	// Transact runs fn atomically with respect to other Transact calls
	// for the same listing. Implementations must serialize the
	// validate-then-write sequence (row lock, serializable transaction
	// or equivalent).
	Transact(ctx context.Context, listingID uint, fn func(Store) error) error

	ListingByID(ctx context.Context, id uint) (*models.Listing, error)
	ReservationByID(ctx context.Context, id uint) (*models.Reservation, error)
	BlockedPeriodByID(ctx context.Context, id uint) (*models.BlockedPeriod, error)

	// HasOverlap reports whether [start, end] overlaps any accepted
	// reservation or blocked period of the listing, inclusive on both
	// boundaries. excludeReservationID, when non-zero, is skipped so a
	// reservation is not compared against itself at accept time.
	HasOverlap(ctx context.Context, listingID uint, start, end time.Time, excludeReservationID uint) (bool, error)

	CreateReservation(ctx context.Context, r *models.Reservation) error
	SetReservationStatus(ctx context.Context, id uint, status models.ReservationStatus) error
	CreateBlockedPeriod(ctx context.Context, b *models.BlockedPeriod) error
	DeleteBlockedPeriod(ctx context.Context, id uint) error
}

// Overlaps is the shared interval predicate: closed intervals [aStart,
// aEnd] and [bStart, bEnd] overlap iff aStart <= bEnd && bStart <= aEnd.
// A shared boundary day counts as overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// NormalizeDate truncates t to day granularity in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
