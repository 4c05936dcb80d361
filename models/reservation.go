package models

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationAccepted ReservationStatus = "accepted"
	ReservationRejected ReservationStatus = "rejected"
)

// Terminal reports whether no further status transition is permitted.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationAccepted || s == ReservationRejected
}

type Reservation struct {
	gorm.Model

	ListingID uint `gorm:"index;column:listing_id" json:"listingId"`
	UserID    uint `gorm:"index;column:user_id" json:"userId"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode,omitempty"`

	// Day-granularity UTC dates, inclusive on both ends.
	StartDate time.Time `gorm:"column:start_date;index" json:"startDate"`
	EndDate   time.Time `gorm:"column:end_date;index" json:"endDate"`

	// Nightly price x nights, in whole currency units. Fixed fees are
	// layered on top by the service, not stored here.
	TotalPrice int64 `gorm:"column:total_price" json:"totalPrice"`

	Status ReservationStatus `gorm:"column:status;size:32;default:'pending'" json:"status"`

	Listing Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
