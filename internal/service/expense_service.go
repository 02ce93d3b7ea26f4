package service

import (
	"context"
	"fmt"
	"strings"

	"globetrotter/internal/cache"
	"globetrotter/internal/models"
	"globetrotter/internal/repository"
)

// ExpenseService manages the expenses attached to a trip.
type ExpenseService struct {
	expenses repository.ExpenseRepository
	trips    repository.TripRepository
}

type ExpenseInput struct {
	Category string
	Amount   float64
	Note     string
}

func NewExpenseService(expenses repository.ExpenseRepository, trips repository.TripRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, trips: trips}
}

func (s *ExpenseService) GetExpenses(ctx context.Context, tripID, userID uint) ([]models.Expense, error) {
	if _, err := ownedTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}
	return s.expenses.GetByTripID(ctx, tripID)
}

// ReplaceExpenses swaps the trip's whole expense list. An empty list clears
// all recorded expenses.
func (s *ExpenseService) ReplaceExpenses(ctx context.Context, tripID, userID uint, expenses []ExpenseInput) ([]models.Expense, error) {
	if _, err := ownedTrip(ctx, s.trips, tripID, userID); err != nil {
		return nil, err
	}

	rows := make([]models.Expense, len(expenses))
	for i, in := range expenses {
		if !models.IsValidExpenseCategory(in.Category) {
			return nil, models.NewValidationError(fmt.Sprintf(
				"Invalid expense category %q, must be one of: %s",
				in.Category, strings.Join(models.ExpenseCategories, ", ")))
		}
		if in.Amount < 0 {
			return nil, models.NewValidationError("Expense amount must not be negative")
		}
		rows[i] = models.Expense{
			Category: in.Category,
			Amount:   in.Amount,
			Note:     in.Note,
		}
	}

	if err := s.expenses.ReplaceForTrip(ctx, tripID, rows); err != nil {
		return nil, err
	}
	cache.InvalidatePublicTrip(ctx, tripID)
	return s.expenses.GetByTripID(ctx, tripID)
}
