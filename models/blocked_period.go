package models

import (
	"time"

	"gorm.io/gorm"
)

// BlockedPeriod is a host-imposed unavailable date range, independent of
// guest reservations.
type BlockedPeriod struct {
	gorm.Model

	ListingID uint `gorm:"index;column:listing_id" json:"listingId"`

	StartDate time.Time `gorm:"column:start_date;index" json:"startDate"`
	EndDate   time.Time `gorm:"column:end_date;index" json:"endDate"`

	Listing Listing `gorm:"foreignKey:ListingID" json:"-"`
}
