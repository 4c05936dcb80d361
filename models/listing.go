package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Listing struct {
	gorm.Model

	UserID uint `gorm:"index;column:user_id" json:"userId"`

	Title       string `json:"title" gorm:"size:191"`
	Description string `json:"description" gorm:"type:text"`

	// JSON array of image URLs; media itself lives on the external host.
	Images datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	Category      string `json:"category" gorm:"size:64;index"`
	LocationValue string `json:"locationValue" gorm:"column:location_value;size:191;index"`

	RoomCount     int `json:"roomCount" gorm:"column:room_count"`
	BathroomCount int `json:"bathroomCount" gorm:"column:bathroom_count"`
	GuestCount    int `json:"guestCount" gorm:"column:guest_count"`

	// Nightly price in whole currency units.
	Price int64 `json:"price"`

	User         User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reservations []Reservation   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"reservations,omitempty"`
	Blocked      []BlockedPeriod `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
}
