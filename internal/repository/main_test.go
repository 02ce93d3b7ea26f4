package repository

import (
	"context"
	"testing"
	"time"

	"globetrotter/internal/database"
	"globetrotter/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		Password:     "hashed",
		ProfileImage: models.DefaultProfileImage,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCity(t *testing.T, db *gorm.DB, name, country string, popularity int) *models.City {
	t.Helper()
	city := &models.City{
		Name:       name,
		Country:    country,
		CostIndex:  55,
		Popularity: popularity,
	}
	require.NoError(t, db.Create(city).Error)
	return city
}

func seedTrip(t *testing.T, db *gorm.DB, userID uint) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		Title:     "Summer in Europe",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC),
		UserID:    userID,
	}
	require.NoError(t, db.Create(trip).Error)
	return trip
}

func seedStop(t *testing.T, db *gorm.DB, tripID, cityID uint, order int) *models.TripStop {
	t.Helper()
	stop := &models.TripStop{TripID: tripID, CityID: cityID, Order: order}
	require.NoError(t, db.Create(stop).Error)
	return stop
}

func seedActivity(t *testing.T, db *gorm.DB, stopID uint, name string, order int, cost float64) *models.Activity {
	t.Helper()
	activity := &models.Activity{TripStopID: stopID, Name: name, Order: order, Cost: cost, Day: 1}
	require.NoError(t, db.Create(activity).Error)
	return activity
}

func testCtx() context.Context {
	return context.Background()
}
