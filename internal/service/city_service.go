package service

import (
	"context"
	"errors"
	"strings"

	"globetrotter/internal/cache"
	"globetrotter/internal/models"
	"globetrotter/internal/repository"
)

// CityService serves the read-mostly city catalog and per-user saved cities.
type CityService struct {
	cities repository.CityRepository
}

const (
	defaultSearchLimit  = 20
	defaultPopularLimit = 10
	maxCityLimit        = 50
)

func NewCityService(cities repository.CityRepository) *CityService {
	return &CityService{cities: cities}
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxCityLimit {
		return maxCityLimit
	}
	return limit
}

// Search is cached per query+limit since the catalog only changes on reseed.
func (s *CityService) Search(ctx context.Context, query string, limit int) ([]models.City, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, models.NewValidationError("Query parameter q is required")
	}
	limit = clampLimit(limit, defaultSearchLimit)

	var cities []models.City
	fetch := func() error {
		found, err := s.cities.Search(ctx, query, limit)
		if err != nil {
			return err
		}
		cities = found
		return nil
	}

	err := cache.Aside(ctx, cache.CitySearchKey(query, limit), &cities, cache.CitySearchTTL, fetch)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if err := fetch(); err != nil {
			return nil, err
		}
	}
	return cities, nil
}

func (s *CityService) Popular(ctx context.Context, limit int) ([]models.City, error) {
	limit = clampLimit(limit, defaultPopularLimit)

	var cities []models.City
	fetch := func() error {
		found, err := s.cities.Popular(ctx, limit)
		if err != nil {
			return err
		}
		cities = found
		return nil
	}

	err := cache.Aside(ctx, cache.PopularCitiesKey(limit), &cities, cache.PopularCitiesTTL, fetch)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		if err := fetch(); err != nil {
			return nil, err
		}
	}
	return cities, nil
}

func (s *CityService) SavedCities(ctx context.Context, userID uint) ([]models.City, error) {
	return s.cities.SavedByUser(ctx, userID)
}

func (s *CityService) SaveCity(ctx context.Context, userID, cityID uint) error {
	if cityID == 0 {
		return models.NewValidationError("City ID is required")
	}
	return s.cities.Save(ctx, userID, cityID)
}

func (s *CityService) UnsaveCity(ctx context.Context, userID, cityID uint) error {
	if cityID == 0 {
		return models.NewValidationError("City ID is required")
	}
	return s.cities.Unsave(ctx, userID, cityID)
}
