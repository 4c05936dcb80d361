package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rental-backend/models"
)

// MemStore is an in-process Store backed by maps. It backs the engine
// tests and is good enough for single-process use; Transact serializes
// on a single mutex, which trivially satisfies the per-listing
// atomicity contract.
type MemStore struct {
	mu           sync.Mutex
	listings     map[uint]*models.Listing
	reservations map[uint]*models.Reservation
	blocked      map[uint]*models.BlockedPeriod
	nextID       uint
}

func NewMemStore() *MemStore {
	return &MemStore{
		listings:     make(map[uint]*models.Listing),
		reservations: make(map[uint]*models.Reservation),
		blocked:      make(map[uint]*models.BlockedPeriod),
	}
}

// AddListing registers a listing and assigns it an id.
func (m *MemStore) AddListing(l *models.Listing) *models.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	l.ID = m.nextID
	cp := *l
	m.listings[l.ID] = &cp
	return l
}

// view implements Store without locking; MemStore's public methods take
// the mutex and delegate, and Transact holds it across fn.
type view struct {
	m *MemStore
}

func (m *MemStore) Transact(_ context.Context, _ uint, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(view{m})
}

func (m *MemStore) ListingByID(ctx context.Context, id uint) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.ListingByID(ctx, id)
}

func (m *MemStore) ReservationByID(ctx context.Context, id uint) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.ReservationByID(ctx, id)
}

func (m *MemStore) BlockedPeriodByID(ctx context.Context, id uint) (*models.BlockedPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.BlockedPeriodByID(ctx, id)
}

func (m *MemStore) HasOverlap(ctx context.Context, listingID uint, start, end time.Time, excludeReservationID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.HasOverlap(ctx, listingID, start, end, excludeReservationID)
}

func (m *MemStore) CreateReservation(ctx context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.CreateReservation(ctx, r)
}

func (m *MemStore) SetReservationStatus(ctx context.Context, id uint, status models.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.SetReservationStatus(ctx, id, status)
}

func (m *MemStore) CreateBlockedPeriod(ctx context.Context, b *models.BlockedPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.CreateBlockedPeriod(ctx, b)
}

func (m *MemStore) DeleteBlockedPeriod(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return view{m}.DeleteBlockedPeriod(ctx, id)
}

func (v view) Transact(_ context.Context, _ uint, fn func(Store) error) error {
	// Already inside the store lock.
	return fn(v)
}

func (v view) ListingByID(_ context.Context, id uint) (*models.Listing, error) {
	l, ok := v.m.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (v view) ReservationByID(_ context.Context, id uint) (*models.Reservation, error) {
	r, ok := v.m.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (v view) BlockedPeriodByID(_ context.Context, id uint) (*models.BlockedPeriod, error) {
	b, ok := v.m.blocked[id]
	if !ok {
		return nil, fmt.Errorf("blocked period %d: %w", id, ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (v view) HasOverlap(_ context.Context, listingID uint, start, end time.Time, excludeReservationID uint) (bool, error) {
	for _, r := range v.m.reservations {
		if r.ListingID != listingID || r.ID == excludeReservationID {
			continue
		}
		if r.Status != models.ReservationAccepted {
			continue
		}
		if Overlaps(r.StartDate, r.EndDate, start, end) {
			return true, nil
		}
	}
	for _, b := range v.m.blocked {
		if b.ListingID != listingID {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (v view) CreateReservation(_ context.Context, r *models.Reservation) error {
	v.m.nextID++
	r.ID = v.m.nextID
	cp := *r
	v.m.reservations[r.ID] = &cp
	return nil
}

func (v view) SetReservationStatus(_ context.Context, id uint, status models.ReservationStatus) error {
	r, ok := v.m.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	r.Status = status
	return nil
}

func (v view) CreateBlockedPeriod(_ context.Context, b *models.BlockedPeriod) error {
	v.m.nextID++
	b.ID = v.m.nextID
	cp := *b
	v.m.blocked[b.ID] = &cp
	return nil
}

func (v view) DeleteBlockedPeriod(_ context.Context, id uint) error {
	if _, ok := v.m.blocked[id]; !ok {
		return fmt.Errorf("blocked period %d: %w", id, ErrNotFound)
	}
	delete(v.m.blocked, id)
	return nil
}
