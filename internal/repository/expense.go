package repository

import (
	"context"

	"globetrotter/internal/models"

	"gorm.io/gorm"
)

// ExpenseRepository defines persistence operations for trip expenses.
type ExpenseRepository interface {
	GetByTripID(ctx context.Context, tripID uint) ([]models.Expense, error)
	ReplaceForTrip(ctx context.Context, tripID uint, expenses []models.Expense) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository returns a new ExpenseRepository implementation.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) GetByTripID(ctx context.Context, tripID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, classify(err)
	}
	return expenses, nil
}

// ReplaceForTrip swaps the trip's entire expense list atomically. Expenses
// carry no order column; the list is a categorized bag.
func (r *expenseRepository) ReplaceForTrip(ctx context.Context, tripID uint, expenses []models.Expense) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		for i := range expenses {
			expenses[i].ID = 0
			expenses[i].TripID = tripID
			if err := tx.Create(&expenses[i]).Error; err != nil {
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
