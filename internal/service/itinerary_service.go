package service

import (
	"context"
	"errors"

	"globetrotter/internal/cache"
	"globetrotter/internal/models"
	"globetrotter/internal/repository"
)

// ItineraryService manages the activities nested under a trip stop.
type ItineraryService struct {
	stops repository.StopRepository
	trips repository.TripRepository
}

type ActivityInput struct {
	Name       string
	Type       string
	Cost       float64
	DurationHr float64
	Day        int
}

func NewItineraryService(stops repository.StopRepository, trips repository.TripRepository) *ItineraryService {
	return &ItineraryService{stops: stops, trips: trips}
}

var errStopAccess = &models.AppError{Code: models.CodeNotFound, Message: "Stop not found or access denied"}

// ownedStop walks stop -> trip and verifies the trip belongs to userID.
func (s *ItineraryService) ownedStop(ctx context.Context, stopID, userID uint) (*models.TripStop, error) {
	stop, err := s.stops.GetByID(ctx, stopID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, errStopAccess
		}
		return nil, err
	}
	trip, err := s.trips.GetByID(ctx, stop.TripID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, errStopAccess
		}
		return nil, err
	}
	if trip.UserID != userID {
		return nil, errStopAccess
	}
	return stop, nil
}

func (s *ItineraryService) GetStop(ctx context.Context, stopID, userID uint) (*models.TripStop, error) {
	if _, err := s.ownedStop(ctx, stopID, userID); err != nil {
		return nil, err
	}
	return s.stops.GetDetail(ctx, stopID)
}

// ReplaceActivities swaps the stop's whole activity list for the given one.
func (s *ItineraryService) ReplaceActivities(ctx context.Context, stopID, userID uint, activities []ActivityInput) ([]models.Activity, error) {
	stop, err := s.ownedStop(ctx, stopID, userID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, models.NewValidationError("At least one activity is required")
	}

	rows := make([]models.Activity, len(activities))
	for i, in := range activities {
		if in.Name == "" {
			return nil, models.NewValidationError("Each activity requires a name")
		}
		if in.Cost < 0 {
			return nil, models.NewValidationError("Activity cost must not be negative")
		}
		if in.DurationHr < 0 {
			return nil, models.NewValidationError("Activity duration must not be negative")
		}
		day := in.Day
		if day == 0 {
			day = 1
		}
		if day < 1 {
			return nil, models.NewValidationError("Activity day must be 1 or greater")
		}
		rows[i] = models.Activity{
			Name:       in.Name,
			Type:       in.Type,
			Cost:       in.Cost,
			DurationHr: in.DurationHr,
			Day:        day,
		}
	}

	if err := s.stops.ReplaceActivities(ctx, stopID, rows); err != nil {
		return nil, err
	}
	cache.InvalidatePublicTrip(ctx, stop.TripID)
	return s.stops.GetActivities(ctx, stopID)
}

// ReorderActivities permutes the stop's existing activities.
func (s *ItineraryService) ReorderActivities(ctx context.Context, stopID, userID uint, orderedIDs []uint) ([]models.Activity, error) {
	stop, err := s.ownedStop(ctx, stopID, userID)
	if err != nil {
		return nil, err
	}
	if len(orderedIDs) == 0 {
		return nil, models.NewValidationError("Ordered activity IDs are required")
	}
	if err := s.stops.ReorderActivities(ctx, stopID, orderedIDs); err != nil {
		return nil, err
	}
	cache.InvalidatePublicTrip(ctx, stop.TripID)
	return s.stops.GetActivities(ctx, stopID)
}
