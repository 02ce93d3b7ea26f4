package repository

import (
	"context"
	"errors"
	"strings"

	"globetrotter/internal/models"

	"gorm.io/gorm"
)

// CityRepository defines persistence operations for the city catalog and
// per-user saved cities.
type CityRepository interface {
	Search(ctx context.Context, query string, limit int) ([]models.City, error)
	Popular(ctx context.Context, limit int) ([]models.City, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.City, error)
	Create(ctx context.Context, city *models.City) error
	Count(ctx context.Context) (int64, error)
	SavedByUser(ctx context.Context, userID uint) ([]models.City, error)
	Save(ctx context.Context, userID, cityID uint) error
	Unsave(ctx context.Context, userID, cityID uint) error
}

type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository returns a new CityRepository implementation.
func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

// Search matches name or country case-insensitively. LOWER + LIKE keeps the
// query portable between postgres and the sqlite test driver.
func (r *cityRepository) Search(ctx context.Context, query string, limit int) ([]models.City, error) {
	var cities []models.City
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(country) LIKE ?", pattern, pattern).
		Order("popularity DESC").
		Limit(limit).
		Find(&cities).Error
	if err != nil {
		return nil, classify(err)
	}
	return cities, nil
}

func (r *cityRepository) Popular(ctx context.Context, limit int) ([]models.City, error) {
	var cities []models.City
	err := r.db.WithContext(ctx).
		Order("popularity DESC").
		Limit(limit).
		Find(&cities).Error
	if err != nil {
		return nil, classify(err)
	}
	return cities, nil
}

func (r *cityRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.City, error) {
	var cities []models.City
	if len(ids) == 0 {
		return cities, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cities).Error; err != nil {
		return nil, classify(err)
	}
	return cities, nil
}

func (r *cityRepository) Create(ctx context.Context, city *models.City) error {
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *cityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.City{}).Count(&count).Error; err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func (r *cityRepository) SavedByUser(ctx context.Context, userID uint) ([]models.City, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("SavedCities").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, classify(err)
	}
	return user.SavedCities, nil
}

// Save is idempotent: appending an already-saved city is a no-op.
func (r *cityRepository) Save(ctx context.Context, userID, cityID uint) error {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, cityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("City", cityID)
		}
		return classify(err)
	}

	user := models.User{ID: userID}
	err := r.db.WithContext(ctx).Model(&user).Association("SavedCities").Append(&city)
	if err != nil && !isUniqueConstraintError(err) {
		return classify(err)
	}
	return nil
}

func (r *cityRepository) Unsave(ctx context.Context, userID, cityID uint) error {
	user := models.User{ID: userID}
	city := models.City{ID: cityID}
	if err := r.db.WithContext(ctx).Model(&user).Association("SavedCities").Delete(&city); err != nil {
		return classify(err)
	}
	return nil
}
