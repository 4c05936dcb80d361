package models

import (
	"gorm.io/gorm"
)

type Favorite struct {
	gorm.Model

	UserID    uint `gorm:"column:user_id;uniqueIndex:idx_user_listing" json:"userId"`
	ListingID uint `gorm:"column:listing_id;uniqueIndex:idx_user_listing" json:"listingId"`

	Listing Listing `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing,omitempty"`
}
