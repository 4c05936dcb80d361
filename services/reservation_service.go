// services/reservation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rental-backend/availability"
	"rental-backend/models"
)

// Fixed fees in whole currency units, layered on top of the engine's
// nightly total. They are owned here so the engine stays pure.
const (
	CleaningFee int64 = 25
	ServiceFee  int64 = 15
)

type PriceBreakdown struct {
	BaseTotal   int64 `json:"baseTotal"`
	CleaningFee int64 `json:"cleaningFee"`
	ServiceFee  int64 `json:"serviceFee"`
	GrandTotal  int64 `json:"grandTotal"`
}

// ReservationService drives guest reservations and host calendar blocks
// through the availability engine and serves the read paths directly
// from the database.
type ReservationService struct {
	DB     *gorm.DB
	Engine *availability.Engine
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		DB:     db,
		Engine: availability.NewEngine(NewAvailabilityStore(db)),
	}
}

func (s *ReservationService) Propose(ctx context.Context, listingID, guestID uint, start, end time.Time) (*models.Reservation, PriceBreakdown, error) {
	reservation, err := s.Engine.ProposeBooking(ctx, listingID, guestID, start, end)
	if err != nil {
		return nil, PriceBreakdown{}, err
	}

	breakdown := PriceBreakdown{
		BaseTotal:   reservation.TotalPrice,
		CleaningFee: CleaningFee,
		ServiceFee:  ServiceFee,
		GrandTotal:  reservation.TotalPrice + CleaningFee + ServiceFee,
	}

	if err := s.DB.WithContext(ctx).Preload("Listing").First(reservation, reservation.ID).Error; err != nil {
		return nil, PriceBreakdown{}, fmt.Errorf("reload reservation: %w", err)
	}
	return reservation, breakdown, nil
}

func (s *ReservationService) Decide(ctx context.Context, reservationID, deciderID uint, decision availability.Decision) (*models.Reservation, error) {
	return s.Engine.DecideReservation(ctx, reservationID, deciderID, decision)
}

// GetByID returns a reservation to its guest or to the listing owner.
func (s *ReservationService) GetByID(ctx context.Context, id, requesterID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.WithContext(ctx).Preload("Listing").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %d: %w", id, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	if reservation.UserID != requesterID && reservation.Listing.UserID != requesterID {
		return nil, fmt.Errorf("%w: reservation belongs to another guest and listing", availability.ErrNotAuthorized)
	}
	return &reservation, nil
}

// ListForListing returns all reservations of one listing to its owner.
func (s *ReservationService) ListForListing(ctx context.Context, listingID, requesterID uint) ([]models.Reservation, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("listing %d: %w", listingID, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing.UserID != requesterID {
		return nil, fmt.Errorf("%w: listing belongs to another host", availability.ErrNotAuthorized)
	}

	var reservations []models.Reservation
	if err := s.DB.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("start_date ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// ListForHost returns reservations across every listing the host owns,
// for the host dashboard.
func (s *ReservationService) ListForHost(ctx context.Context, hostID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.WithContext(ctx).
		Preload("Listing").
		Preload("User").
		Joins("JOIN listings ON listings.id = reservations.listing_id").
		Where("listings.user_id = ? AND listings.deleted_at IS NULL", hostID).
		Order("reservations.created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list host reservations: %w", err)
	}
	return reservations, nil
}

// ListTrips returns the guest's own reservations, newest first.
func (s *ReservationService) ListTrips(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.DB.WithContext(ctx).
		Preload("Listing").
		Where("user_id = ?", guestID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return reservations, nil
}

// BlockedPeriods lists a listing's blocked ranges, soonest first.
func (s *ReservationService) BlockedPeriods(ctx context.Context, listingID uint) ([]models.BlockedPeriod, error) {
	var blocked []models.BlockedPeriod
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("start_date ASC").
		Find(&blocked).Error; err != nil {
		return nil, fmt.Errorf("list blocked periods: %w", err)
	}
	return blocked, nil
}

func (s *ReservationService) Block(ctx context.Context, listingID, ownerID uint, start, end time.Time) (*models.BlockedPeriod, error) {
	return s.Engine.BlockDates(ctx, listingID, ownerID, start, end)
}

func (s *ReservationService) Unblock(ctx context.Context, blockedPeriodID, ownerID uint) error {
	return s.Engine.UnblockDates(ctx, blockedPeriodID, ownerID)
}
