// services/favorite_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rental-backend/availability"
	"rental-backend/models"
)

var ErrAlreadyFavorited = errors.New("listing is already in favorites")

type FavoriteService struct {
	DB *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

func (s *FavoriteService) Add(ctx context.Context, userID, listingID uint) (*models.Favorite, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("listing %d: %w", listingID, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}

	favorite := &models.Favorite{UserID: userID, ListingID: listingID}
	if err := s.DB.WithContext(ctx).Create(favorite).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return favorite, nil
}

// Remove hard-deletes the favorite. A soft-deleted row would keep
// occupying idx_user_listing and block re-adding the same pair.
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID uint) error {
	res := s.DB.WithContext(ctx).Unscoped().
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return fmt.Errorf("delete favorite: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite: %w", availability.ErrNotFound)
	}
	return nil
}

func (s *FavoriteService) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.DB.WithContext(ctx).
		Preload("Listing").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}
