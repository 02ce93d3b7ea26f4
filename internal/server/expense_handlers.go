package server

import (
	"globetrotter/internal/models"
	"globetrotter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetExpenses handles GET /api/expenses/:tripId.
func (s *Server) GetExpenses(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}
	expenses, err := s.expenseService.GetExpenses(c.UserContext(), tripID, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"expenses": expenses})
}

// ReplaceExpenses handles POST /api/expenses/:tripId. An empty list clears
// every expense on the trip.
func (s *Server) ReplaceExpenses(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	var req struct {
		Expenses []struct {
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
			Note     string  `json:"note"`
		} `json:"expenses"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	expenses := make([]service.ExpenseInput, len(req.Expenses))
	for i, e := range req.Expenses {
		expenses[i] = service.ExpenseInput{Category: e.Category, Amount: e.Amount, Note: e.Note}
	}

	result, err := s.expenseService.ReplaceExpenses(c.UserContext(), tripID, currentUserID(c), expenses)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Expenses updated", fiber.Map{"expenses": result})
}
