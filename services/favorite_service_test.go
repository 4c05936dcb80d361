package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rental-backend/availability"
	"rental-backend/models"
)

func newFavoriteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Listing{}, &models.Favorite{}))
	return db
}

func TestFavorite_RemoveThenReAdd(t *testing.T) {
	db := newFavoriteTestDB(t)
	svc := NewFavoriteService(db)

	listing := &models.Listing{UserID: 1, Title: "Cabin", Price: 80}
	require.NoError(t, db.Create(listing).Error)

	_, err := svc.Add(context.Background(), 2, listing.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), 2, listing.ID))

	// The (user, listing) pair must be free again after removal.
	fav, err := svc.Add(context.Background(), 2, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), fav.UserID)
	assert.Equal(t, listing.ID, fav.ListingID)

	favs, err := svc.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestFavorite_RemoveUnknown(t *testing.T) {
	db := newFavoriteTestDB(t)
	svc := NewFavoriteService(db)

	err := svc.Remove(context.Background(), 2, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, availability.ErrNotFound)
}

func TestFavorite_AddUnknownListing(t *testing.T) {
	db := newFavoriteTestDB(t)
	svc := NewFavoriteService(db)

	_, err := svc.Add(context.Background(), 2, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, availability.ErrNotFound)
}
