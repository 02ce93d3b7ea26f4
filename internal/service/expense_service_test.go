package service

import (
	"context"
	"testing"

	"globetrotter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_ReplaceExpenses(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		expenses := noopExpenseRepo()
		var replaced []models.Expense
		expenses.replaceForTripFn = func(_ context.Context, _ uint, rows []models.Expense) error {
			replaced = rows
			return nil
		}
		svc := NewExpenseService(expenses, ownedTripStub(1))

		_, err := svc.ReplaceExpenses(context.Background(), 9, 1, []ExpenseInput{
			{Category: models.ExpenseCategoryTransport, Amount: 120, Note: "Flights"},
			{Category: models.ExpenseCategoryFood, Amount: 45},
		})
		require.NoError(t, err)
		require.Len(t, replaced, 2)
		assert.Equal(t, "Flights", replaced[0].Note)
	})

	t.Run("Empty list clears", func(t *testing.T) {
		expenses := noopExpenseRepo()
		cleared := false
		expenses.replaceForTripFn = func(_ context.Context, _ uint, rows []models.Expense) error {
			cleared = len(rows) == 0
			return nil
		}
		svc := NewExpenseService(expenses, ownedTripStub(1))

		_, err := svc.ReplaceExpenses(context.Background(), 9, 1, nil)
		require.NoError(t, err)
		assert.True(t, cleared)
	})

	t.Run("Unknown category", func(t *testing.T) {
		svc := NewExpenseService(noopExpenseRepo(), ownedTripStub(1))
		_, err := svc.ReplaceExpenses(context.Background(), 9, 1, []ExpenseInput{
			{Category: "bribes", Amount: 10},
		})
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "bribes")
	})

	t.Run("Negative amount", func(t *testing.T) {
		svc := NewExpenseService(noopExpenseRepo(), ownedTripStub(1))
		_, err := svc.ReplaceExpenses(context.Background(), 9, 1, []ExpenseInput{
			{Category: models.ExpenseCategoryFood, Amount: -5},
		})
		assertValidationError(t, err)
	})

	t.Run("Ownership gate", func(t *testing.T) {
		svc := NewExpenseService(noopExpenseRepo(), ownedTripStub(1))
		_, err := svc.ReplaceExpenses(context.Background(), 9, 2, []ExpenseInput{
			{Category: models.ExpenseCategoryFood, Amount: 5},
		})
		assertNotFoundError(t, err)
	})
}

func TestExpenseService_GetExpenses(t *testing.T) {
	expenses := noopExpenseRepo()
	expenses.getByTripIDFn = func(_ context.Context, _ uint) ([]models.Expense, error) {
		return []models.Expense{{Category: models.ExpenseCategoryFood, Amount: 12}}, nil
	}
	svc := NewExpenseService(expenses, ownedTripStub(1))

	rows, err := svc.GetExpenses(context.Background(), 9, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.GetExpenses(context.Background(), 9, 2)
	assertNotFoundError(t, err)
}
