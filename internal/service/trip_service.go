package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"globetrotter/internal/cache"
	"globetrotter/internal/models"
	"globetrotter/internal/repository"
)

type TripService struct {
	trips  repository.TripRepository
	cities repository.CityRepository
}

type CreateTripInput struct {
	UserID      uint
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	IsPublic    bool
	CoverImage  string
}

type UpdateTripInput struct {
	UserID      uint
	TripID      uint
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsPublic    *bool
	CoverImage  *string
}

type StopInput struct {
	CityID    uint
	StartDate time.Time
	EndDate   time.Time
}

func NewTripService(trips repository.TripRepository, cities repository.CityRepository) *TripService {
	return &TripService{trips: trips, cities: cities}
}

// Ownership failures and missing trips are indistinguishable to the caller,
// so trip IDs cannot be probed.
var errTripAccess = &models.AppError{Code: models.CodeNotFound, Message: "Trip not found or access denied"}

var errTripNotPublic = &models.AppError{Code: models.CodeNotFound, Message: "Trip not found or not public"}

// ownedTrip is the single ownership gate for everything nested under a trip.
func ownedTrip(ctx context.Context, trips repository.TripRepository, tripID, userID uint) (*models.Trip, error) {
	trip, err := trips.GetByID(ctx, tripID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, errTripAccess
		}
		return nil, err
	}
	if trip.UserID != userID {
		return nil, errTripAccess
	}
	return trip, nil
}

// attachOwner replaces the loaded owner row with its public projection so
// trip responses never carry the owner's email or contact fields.
func attachOwner(trip *models.Trip) {
	if trip.User.ID != 0 {
		summary := trip.User.PublicProfile()
		trip.Owner = &summary
	}
}

// buildBudget derives the cost summary from an already-loaded trip graph. It
// never writes anything back.
func buildBudget(trip *models.Trip) models.BudgetSummary {
	var summary models.BudgetSummary
	for _, stop := range trip.Stops {
		for _, activity := range stop.Activities {
			summary.ActivitiesTotal += activity.Cost
		}
	}
	breakdown := make(map[string]float64)
	for _, expense := range trip.Expenses {
		summary.ExpensesTotal += expense.Amount
		breakdown[expense.Category] += expense.Amount
	}
	summary.GrandTotal = summary.ActivitiesTotal + summary.ExpensesTotal
	summary.Breakdown = breakdown
	return summary
}

func validateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start) {
		return models.NewValidationError("End date must not be before start date")
	}
	return nil
}

func (s *TripService) CreateTrip(ctx context.Context, in CreateTripInput) (*models.Trip, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if err := validateDateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsPublic:    in.IsPublic,
		CoverImage:  in.CoverImage,
		UserID:      in.UserID,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *TripService) GetMyTrips(ctx context.Context, userID uint) ([]models.Trip, error) {
	trips, err := s.trips.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		attachOwner(&trips[i])
	}
	return trips, nil
}

// GetTrip returns the full trip graph with its derived budget. Owner only.
func (s *TripService) GetTrip(ctx context.Context, tripID, userID uint) (*models.TripDetail, error) {
	trip, err := s.trips.GetDetail(ctx, tripID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, errTripAccess
		}
		return nil, err
	}
	if trip.UserID != userID {
		return nil, errTripAccess
	}
	attachOwner(trip)
	return &models.TripDetail{Trip: *trip, Budget: buildBudget(trip)}, nil
}

// GetPublicTrip serves the unauthenticated read path, cached briefly since
// public trips are share links fetched repeatedly.
func (s *TripService) GetPublicTrip(ctx context.Context, tripID uint) (*models.TripDetail, error) {
	var detail models.TripDetail
	fetch := func() error {
		trip, err := s.trips.GetDetail(ctx, tripID)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				return errTripNotPublic
			}
			return err
		}
		if !trip.IsPublic {
			return errTripNotPublic
		}
		attachOwner(trip)
		detail = models.TripDetail{Trip: *trip, Budget: buildBudget(trip)}
		return nil
	}

	err := cache.Aside(ctx, cache.PublicTripKey(tripID), &detail, cache.PublicTripTTL, fetch)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		// Cache unavailable; serve straight from the store.
		if err := fetch(); err != nil {
			return nil, err
		}
	}
	return &detail, nil
}

// UpdateTrip applies a partial patch: nil fields are left untouched.
func (s *TripService) UpdateTrip(ctx context.Context, in UpdateTripInput) (*models.Trip, error) {
	trip, err := ownedTrip(ctx, s.trips, in.TripID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		trip.Title = *in.Title
	}
	if in.Description != nil {
		trip.Description = *in.Description
	}
	if in.StartDate != nil {
		trip.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		trip.EndDate = *in.EndDate
	}
	if in.IsPublic != nil {
		trip.IsPublic = *in.IsPublic
	}
	if in.CoverImage != nil {
		trip.CoverImage = *in.CoverImage
	}
	if err := validateDateRange(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, err
	}
	cache.InvalidatePublicTrip(ctx, trip.ID)
	return trip, nil
}

func (s *TripService) DeleteTrip(ctx context.Context, tripID, userID uint) error {
	if _, err := ownedTrip(ctx, s.trips, tripID, userID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return err
	}
	cache.InvalidatePublicTrip(ctx, tripID)
	return nil
}

// ReplaceStops swaps the trip's whole itinerary for the given list. All city
// IDs must resolve or nothing is written.
func (s *TripService) ReplaceStops(ctx context.Context, tripID, userID uint, stops []StopInput) ([]models.TripStop, error) {
	if _, err := ownedTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, models.NewValidationError("At least one stop is required")
	}

	cityIDs := make([]uint, 0, len(stops))
	seen := make(map[uint]bool, len(stops))
	for _, in := range stops {
		if in.CityID == 0 {
			return nil, models.NewValidationError("Each stop requires a city ID")
		}
		if err := validateDateRange(in.StartDate, in.EndDate); err != nil {
			return nil, err
		}
		if !seen[in.CityID] {
			seen[in.CityID] = true
			cityIDs = append(cityIDs, in.CityID)
		}
	}

	cities, err := s.cities.GetByIDs(ctx, cityIDs)
	if err != nil {
		return nil, err
	}
	if len(cities) != len(cityIDs) {
		found := make(map[uint]bool, len(cities))
		for _, city := range cities {
			found[city.ID] = true
		}
		var missing []uint
		for _, id := range cityIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, models.NewValidationError(fmt.Sprintf("Unknown city IDs: %v", missing))
	}

	rows := make([]models.TripStop, len(stops))
	for i, in := range stops {
		rows[i] = models.TripStop{
			CityID:    in.CityID,
			StartDate: in.StartDate,
			EndDate:   in.EndDate,
		}
	}
	if err := s.trips.ReplaceStops(ctx, tripID, rows); err != nil {
		return nil, err
	}
	cache.InvalidatePublicTrip(ctx, tripID)

	trip, err := s.trips.GetDetail(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return trip.Stops, nil
}

// ReorderStops permutes the existing stops without touching their rows.
func (s *TripService) ReorderStops(ctx context.Context, tripID, userID uint, orderedIDs []uint) ([]models.TripStop, error) {
	if _, err := ownedTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	if len(orderedIDs) == 0 {
		return nil, models.NewValidationError("Ordered stop IDs are required")
	}
	if err := s.trips.ReorderStops(ctx, tripID, orderedIDs); err != nil {
		return nil, err
	}
	cache.InvalidatePublicTrip(ctx, tripID)
	return s.trips.GetStops(ctx, tripID)
}
