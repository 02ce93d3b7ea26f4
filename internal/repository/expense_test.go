package repository

import (
	"testing"

	"globetrotter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseRepository_ReplaceForTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	user := seedUser(t, db, "owner@example.com")
	trip := seedTrip(t, db, user.ID)
	require.NoError(t, db.Create(&models.Expense{TripID: trip.ID, Category: models.ExpenseCategoryFood, Amount: 30}).Error)

	err := repo.ReplaceForTrip(testCtx(), trip.ID, []models.Expense{
		{Category: models.ExpenseCategoryTransport, Amount: 120, Note: "Flights"},
		{Category: models.ExpenseCategoryFood, Amount: 45},
	})
	require.NoError(t, err)

	expenses, err := repo.GetByTripID(testCtx(), trip.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, models.ExpenseCategoryTransport, expenses[0].Category)
	assert.Equal(t, trip.ID, expenses[0].TripID)
}

func TestExpenseRepository_ReplaceForTrip_EmptyClears(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	user := seedUser(t, db, "owner@example.com")
	trip := seedTrip(t, db, user.ID)
	require.NoError(t, db.Create(&models.Expense{TripID: trip.ID, Category: models.ExpenseCategoryFood, Amount: 30}).Error)

	require.NoError(t, repo.ReplaceForTrip(testCtx(), trip.ID, nil))

	expenses, err := repo.GetByTripID(testCtx(), trip.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestExpenseRepository_ReplaceForTrip_ScopedToTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	user := seedUser(t, db, "owner@example.com")
	trip := seedTrip(t, db, user.ID)
	other := seedTrip(t, db, user.ID)
	require.NoError(t, db.Create(&models.Expense{TripID: other.ID, Category: models.ExpenseCategoryOther, Amount: 99}).Error)

	require.NoError(t, repo.ReplaceForTrip(testCtx(), trip.ID, []models.Expense{
		{Category: models.ExpenseCategoryShopping, Amount: 10},
	}))

	otherExpenses, err := repo.GetByTripID(testCtx(), other.ID)
	require.NoError(t, err)
	require.Len(t, otherExpenses, 1)
	assert.Equal(t, 99.0, otherExpenses[0].Amount)
}
