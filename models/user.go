package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;size:191"`
	Password string `json:"-"`
	Image    string `json:"image,omitempty"`

	Listings  []Listing  `gorm:"foreignKey:UserID" json:"-"`
	Favorites []Favorite `gorm:"foreignKey:UserID" json:"-"`
}
