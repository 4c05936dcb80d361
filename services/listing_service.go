// services/listing_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rental-backend/availability"
	"rental-backend/models"
	"rental-backend/utils"
)

const (
	searchCachePrefix = "listings:search"
	searchCacheTTL    = 60 * time.Second
)

type ListingInput struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Category      string   `json:"category" binding:"required"`
	LocationValue string   `json:"locationValue" binding:"required"`
	RoomCount     int      `json:"roomCount" binding:"required,gt=0"`
	BathroomCount int      `json:"bathroomCount" binding:"required,gt=0"`
	GuestCount    int      `json:"guestCount" binding:"required,gt=0"`
	Price         int64    `json:"price" binding:"required,gt=0"`
}

type ListingFilters struct {
	Category   string
	Location   string
	GuestCount int
	MinPrice   int64
	MaxPrice   int64
}

type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

func (s *ListingService) Create(ctx context.Context, ownerID uint, input ListingInput) (*models.Listing, error) {
	images, err := json.Marshal(input.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}

	listing := &models.Listing{
		UserID:        ownerID,
		Title:         input.Title,
		Description:   input.Description,
		Images:        datatypes.JSON(images),
		Category:      input.Category,
		LocationValue: input.LocationValue,
		RoomCount:     input.RoomCount,
		BathroomCount: input.BathroomCount,
		GuestCount:    input.GuestCount,
		Price:         input.Price,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	s.invalidateSearchCache(ctx)
	return listing, nil
}

// invalidateSearchCache purges cached search results after a write so
// searches never serve renamed or deleted listings.
func (s *ListingService) invalidateSearchCache(ctx context.Context) {
	if utils.RedisClient == nil {
		return
	}
	if err := utils.InvalidatePrefix(ctx, searchCachePrefix); err != nil {
		log.Printf("warning: listing cache invalidation failed: %v", err)
	}
}

func (s *ListingService) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).Preload("User").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("listing %d: %w", id, availability.ErrNotFound)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &listing, nil
}

// Search filters listings and caches each distinct filter combination
// for a short TTL.
func (s *ListingService) Search(ctx context.Context, filters ListingFilters) ([]models.Listing, error) {
	cacheKey := utils.GenerateQueryCacheKey(searchCachePrefix, map[string]string{
		"category":   filters.Category,
		"location":   filters.Location,
		"guestCount": strconv.Itoa(filters.GuestCount),
		"minPrice":   strconv.FormatInt(filters.MinPrice, 10),
		"maxPrice":   strconv.FormatInt(filters.MaxPrice, 10),
	})

	var listings []models.Listing
	if utils.RedisClient != nil {
		hit, err := utils.GetCached(ctx, cacheKey, &listings)
		if err != nil {
			log.Printf("warning: listing cache read failed: %v", err)
		} else if hit {
			return listings, nil
		}
	}

	q := s.DB.WithContext(ctx).Model(&models.Listing{})
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Location != "" {
		q = q.Where("location_value = ?", filters.Location)
	}
	if filters.GuestCount > 0 {
		q = q.Where("guest_count >= ?", filters.GuestCount)
	}
	if filters.MinPrice > 0 {
		q = q.Where("price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		q = q.Where("price <= ?", filters.MaxPrice)
	}

	if err := q.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}

	if utils.RedisClient != nil {
		if err := utils.SetCached(ctx, cacheKey, listings, searchCacheTTL); err != nil {
			log.Printf("warning: listing cache write failed: %v", err)
		}
	}
	return listings, nil
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("list listings by owner: %w", err)
	}
	return listings, nil
}

func (s *ListingService) Update(ctx context.Context, id, ownerID uint, input ListingInput) (*models.Listing, error) {
	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.UserID != ownerID {
		return nil, fmt.Errorf("%w: listing belongs to another host", availability.ErrNotAuthorized)
	}

	images, err := json.Marshal(input.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}

	if err := s.DB.WithContext(ctx).Model(listing).Updates(map[string]interface{}{
		"title":          input.Title,
		"description":    input.Description,
		"images":         datatypes.JSON(images),
		"category":       input.Category,
		"location_value": input.LocationValue,
		"room_count":     input.RoomCount,
		"bathroom_count": input.BathroomCount,
		"guest_count":    input.GuestCount,
		"price":          input.Price,
	}).Error; err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	s.invalidateSearchCache(ctx)
	return listing, nil
}

// Delete removes the listing and everything it owns: reservations,
// blocked periods and favorites go in the same transaction.
func (s *ListingService) Delete(ctx context.Context, id, ownerID uint) error {
	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.UserID != ownerID {
		return fmt.Errorf("%w: listing belongs to another host", availability.ErrNotAuthorized)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
			return fmt.Errorf("delete reservations: %w", err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.BlockedPeriod{}).Error; err != nil {
			return fmt.Errorf("delete blocked periods: %w", err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := tx.Delete(&models.Listing{}, id).Error; err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateSearchCache(ctx)
	return nil
}
