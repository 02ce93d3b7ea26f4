package repository

import (
	"context"
	"errors"

	"globetrotter/internal/models"

	"gorm.io/gorm"
)

// StopRepository defines persistence operations for trip stops and the
// activities nested under them.
type StopRepository interface {
	GetByID(ctx context.Context, id uint) (*models.TripStop, error)
	GetDetail(ctx context.Context, id uint) (*models.TripStop, error)
	GetActivities(ctx context.Context, stopID uint) ([]models.Activity, error)
	ReplaceActivities(ctx context.Context, stopID uint, activities []models.Activity) error
	ReorderActivities(ctx context.Context, stopID uint, orderedIDs []uint) error
}

type stopRepository struct {
	db *gorm.DB
}

// NewStopRepository returns a new StopRepository implementation.
func NewStopRepository(db *gorm.DB) StopRepository {
	return &stopRepository{db: db}
}

// GetByID loads the bare stop row. Ownership checks walk stop.TripID up to
// the trip.
func (r *stopRepository) GetByID(ctx context.Context, id uint) (*models.TripStop, error) {
	var stop models.TripStop
	if err := r.db.WithContext(ctx).First(&stop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Stop", id)
		}
		return nil, classify(err)
	}
	return &stop, nil
}

func (r *stopRepository) GetDetail(ctx context.Context, id uint) (*models.TripStop, error) {
	var stop models.TripStop
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		First(&stop, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Stop", id)
		}
		return nil, classify(err)
	}
	return &stop, nil
}

func (r *stopRepository) GetActivities(ctx context.Context, stopID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("trip_stop_id = ?", stopID).
		Order(`"order" ASC`).
		Find(&activities).Error
	if err != nil {
		return nil, classify(err)
	}
	return activities, nil
}

// ReplaceActivities swaps the stop's entire activity list atomically with
// dense order 1..N following slice position.
func (r *stopRepository) ReplaceActivities(ctx context.Context, stopID uint, activities []models.Activity) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_stop_id = ?", stopID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		for i := range activities {
			activities[i].ID = 0
			activities[i].TripStopID = stopID
			activities[i].Order = i + 1
			if err := tx.Create(&activities[i]).Error; err != nil {
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

// ReorderActivities assigns order 1..N following orderedIDs, validated as a
// full permutation of the stop's activities inside the transaction.
func (r *stopRepository) ReorderActivities(ctx context.Context, stopID uint, orderedIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentIDs []uint
		if err := tx.Model(&models.Activity{}).Where("trip_stop_id = ?", stopID).Pluck("id", &currentIDs).Error; err != nil {
			return err
		}
		if err := checkPermutation(currentIDs, orderedIDs); err != nil {
			return err
		}
		for i, activityID := range orderedIDs {
			err := tx.Model(&models.Activity{}).
				Where("id = ? AND trip_stop_id = ?", activityID, stopID).
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
