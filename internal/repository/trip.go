package repository

import (
	"context"
	"errors"
	"fmt"

	"globetrotter/internal/models"

	"gorm.io/gorm"
)

// TripRepository defines persistence operations for trips and their stops.
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	GetDetail(ctx context.Context, id uint) (*models.Trip, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id uint) error
	GetStops(ctx context.Context, tripID uint) ([]models.TripStop, error)
	ReplaceStops(ctx context.Context, tripID uint, stops []models.TripStop) error
	ReorderStops(ctx context.Context, tripID uint, orderedIDs []uint) error
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository returns a new TripRepository implementation.
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return classify(err)
	}
	return nil
}

// GetByID loads the bare trip row, no associations. Ownership checks only
// need UserID and IsPublic.
func (r *tripRepository) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trip", id)
		}
		return nil, classify(err)
	}
	return &trip, nil
}

// GetDetail loads the full trip graph: owner, stops in itinerary order with
// their city and ordered activities, and expenses.
func (r *tripRepository) GetDetail(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Stops.City").
		Preload("Stops.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Expenses").
		First(&trip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trip", id)
		}
		return nil, classify(err)
	}
	return &trip, nil
}

func (r *tripRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Stops.City").
		Order("created_at DESC").
		Find(&trips).Error
	if err != nil {
		return nil, classify(err)
	}
	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *models.Trip) error {
	err := r.db.WithContext(ctx).
		Omit("Stops", "Expenses", "User").
		Save(trip).Error
	if err != nil {
		return classify(err)
	}
	return nil
}

// Delete removes the trip and its whole subtree in one transaction. The
// cascade is done explicitly so behavior does not depend on FK enforcement
// being enabled in the underlying store.
func (r *tripRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stopIDs []uint
		if err := tx.Model(&models.TripStop{}).Where("trip_id = ?", id).Pluck("id", &stopIDs).Error; err != nil {
			return err
		}
		if len(stopIDs) > 0 {
			if err := tx.Where("trip_stop_id IN ?", stopIDs).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", id).Delete(&models.TripStop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Trip{}, id).Error
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (r *tripRepository) GetStops(ctx context.Context, tripID uint) ([]models.TripStop, error) {
	var stops []models.TripStop
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order(`"order" ASC`).
		Find(&stops).Error
	if err != nil {
		return nil, classify(err)
	}
	return stops, nil
}

// ReplaceStops swaps the trip's entire stop list atomically. Existing stops
// and their activities are removed, then the new stops are inserted with
// dense order 1..N following slice position.
func (r *tripRepository) ReplaceStops(ctx context.Context, tripID uint, stops []models.TripStop) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldStopIDs []uint
		if err := tx.Model(&models.TripStop{}).Where("trip_id = ?", tripID).Pluck("id", &oldStopIDs).Error; err != nil {
			return err
		}
		if len(oldStopIDs) > 0 {
			if err := tx.Where("trip_stop_id IN ?", oldStopIDs).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
			if err := tx.Where("trip_id = ?", tripID).Delete(&models.TripStop{}).Error; err != nil {
				return err
			}
		}
		for i := range stops {
			stops[i].ID = 0
			stops[i].TripID = tripID
			stops[i].Order = i + 1
			if err := tx.Create(&stops[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

// ReorderStops assigns order 1..N to the trip's stops following orderedIDs.
// Membership is re-verified inside the transaction so a concurrent replace
// cannot leave a partially reordered itinerary.
func (r *tripRepository) ReorderStops(ctx context.Context, tripID uint, orderedIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentIDs []uint
		if err := tx.Model(&models.TripStop{}).Where("trip_id = ?", tripID).Pluck("id", &currentIDs).Error; err != nil {
			return err
		}
		if err := checkPermutation(currentIDs, orderedIDs); err != nil {
			return err
		}
		for i, stopID := range orderedIDs {
			err := tx.Model(&models.TripStop{}).
				Where("id = ? AND trip_id = ?", stopID, tripID).
				Update("order", i+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return classify(err)
	}
	return nil
}

// checkPermutation verifies orderedIDs is exactly the set currentIDs, no
// omissions, no extras, no duplicates.
func checkPermutation(currentIDs, orderedIDs []uint) error {
	if len(orderedIDs) != len(currentIDs) {
		return models.NewValidationError(
			fmt.Sprintf("expected %d IDs, got %d", len(currentIDs), len(orderedIDs)))
	}
	current := make(map[uint]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}
	seen := make(map[uint]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] {
			return models.NewValidationError(fmt.Sprintf("ID %d does not belong to this collection", id))
		}
		if seen[id] {
			return models.NewValidationError(fmt.Sprintf("ID %d appears more than once", id))
		}
		seen[id] = true
	}
	return nil
}
