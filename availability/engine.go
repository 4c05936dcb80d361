package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rental-backend/models"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Engine owns the rule that a listing cannot have two blocking date
// ranges that overlap. It validates proposals and blocks against the
// current accepted/blocked set and drives reservation status
// transitions (pending -> accepted | rejected).
type Engine struct {
	store Store
	now   func() time.Time
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// ProposeBooking creates a pending reservation for the guest. Pending
// reservations of other guests are deliberately ignored: multiple
// guests may request the same dates and the first accepted one wins.
func (e *Engine) ProposeBooking(ctx context.Context, listingID, guestID uint, start, end time.Time) (*models.Reservation, error) {
	start, end = NormalizeDate(start), NormalizeDate(end)

	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}
	if start.Before(NormalizeDate(e.now())) {
		return nil, fmt.Errorf("%w: start date is in the past", ErrValidation)
	}

	listing, err := e.store.ListingByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("check listing: %w", err)
	}

	overlap, err := e.store.HasOverlap(ctx, listingID, start, end, 0)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if overlap {
		return nil, ErrConflict
	}

	nights := int64(end.Sub(start).Hours() / 24)
	reservation := &models.Reservation{
		ListingID:     listingID,
		UserID:        guestID,
		ReferenceCode: uuid.New().String(),
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    listing.Price * nights,
		Status:        models.ReservationPending,
	}

	if err := e.store.CreateReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	return reservation, nil
}

// DecideReservation applies the host's accept/reject decision.
//
// Accept re-validates the date range against the current accepted and
// blocked periods inside a per-listing transaction; that re-check is
// what keeps two overlapping pending requests from both becoming
// accepted. A conflicting reservation stays pending — competitors are
// never auto-rejected on the host's behalf.
func (e *Engine) DecideReservation(ctx context.Context, reservationID, deciderID uint, decision Decision) (*models.Reservation, error) {
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	reservation, err := e.store.ReservationByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	listing, err := e.store.ListingByID(ctx, reservation.ListingID)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if listing.UserID != deciderID {
		return nil, fmt.Errorf("%w: only the listing owner may decide a reservation", ErrNotAuthorized)
	}

	err = e.store.Transact(ctx, reservation.ListingID, func(tx Store) error {
		current, err := tx.ReservationByID(ctx, reservationID)
		if err != nil {
			return fmt.Errorf("reload reservation: %w", err)
		}

		// Repeating the decision that already landed is a no-op;
		// crossing a terminal state is not.
		if current.Status.Terminal() {
			if (decision == DecisionAccept && current.Status == models.ReservationAccepted) ||
				(decision == DecisionReject && current.Status == models.ReservationRejected) {
				reservation = current
				return nil
			}
			return fmt.Errorf("%w: reservation is already %s", ErrInvalidState, current.Status)
		}

		if decision == DecisionReject {
			if err := tx.SetReservationStatus(ctx, reservationID, models.ReservationRejected); err != nil {
				return fmt.Errorf("reject reservation: %w", err)
			}
			current.Status = models.ReservationRejected
			reservation = current
			return nil
		}

		overlap, err := tx.HasOverlap(ctx, current.ListingID, current.StartDate, current.EndDate, reservationID)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if overlap {
			return ErrConflict
		}

		if err := tx.SetReservationStatus(ctx, reservationID, models.ReservationAccepted); err != nil {
			return fmt.Errorf("accept reservation: %w", err)
		}
		current.Status = models.ReservationAccepted
		reservation = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// BlockDates creates a host-imposed unavailable period, validated
// against accepted reservations and existing blocks at creation time.
func (e *Engine) BlockDates(ctx context.Context, listingID, ownerID uint, start, end time.Time) (*models.BlockedPeriod, error) {
	start, end = NormalizeDate(start), NormalizeDate(end)

	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrValidation)
	}

	listing, err := e.store.ListingByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("check listing: %w", err)
	}
	if listing.UserID != ownerID {
		return nil, fmt.Errorf("%w: only the listing owner may block dates", ErrNotAuthorized)
	}

	blocked := &models.BlockedPeriod{ListingID: listingID, StartDate: start, EndDate: end}

	err = e.store.Transact(ctx, listingID, func(tx Store) error {
		overlap, err := tx.HasOverlap(ctx, listingID, start, end, 0)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if overlap {
			return ErrConflict
		}
		if err := tx.CreateBlockedPeriod(ctx, blocked); err != nil {
			return fmt.Errorf("create blocked period: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocked, nil
}

// UnblockDates removes a blocked period. Removing a block can never
// create a conflict, so no validation is needed.
func (e *Engine) UnblockDates(ctx context.Context, blockedPeriodID, ownerID uint) error {
	blocked, err := e.store.BlockedPeriodByID(ctx, blockedPeriodID)
	if err != nil {
		return fmt.Errorf("get blocked period: %w", err)
	}

	listing, err := e.store.ListingByID(ctx, blocked.ListingID)
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}
	if listing.UserID != ownerID {
		return fmt.Errorf("%w: only the listing owner may unblock dates", ErrNotAuthorized)
	}

	if err := e.store.DeleteBlockedPeriod(ctx, blockedPeriodID); err != nil {
		return fmt.Errorf("delete blocked period: %w", err)
	}
	return nil
}
