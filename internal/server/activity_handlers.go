package server

import (
	"globetrotter/internal/models"
	"globetrotter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetStop handles GET /api/activities/:stopId, returning the stop with its
// city and ordered activities.
func (s *Server) GetStop(c *fiber.Ctx) error {
	stopID, err := s.parseID(c, "stopId")
	if err != nil {
		return nil
	}
	stop, err := s.itineraryService.GetStop(c.UserContext(), stopID, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"stop": stop})
}

// ReplaceActivities handles POST /api/activities/:stopId/activities.
func (s *Server) ReplaceActivities(c *fiber.Ctx) error {
	stopID, err := s.parseID(c, "stopId")
	if err != nil {
		return nil
	}

	var req struct {
		Activities []struct {
			Name       string  `json:"name"`
			Type       string  `json:"type"`
			Cost       float64 `json:"cost"`
			DurationHr float64 `json:"durationHr"`
			Day        int     `json:"day"`
		} `json:"activities"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	activities := make([]service.ActivityInput, len(req.Activities))
	for i, a := range req.Activities {
		activities[i] = service.ActivityInput{
			Name:       a.Name,
			Type:       a.Type,
			Cost:       a.Cost,
			DurationHr: a.DurationHr,
			Day:        a.Day,
		}
	}

	result, err := s.itineraryService.ReplaceActivities(c.UserContext(), stopID, currentUserID(c), activities)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Activities updated", fiber.Map{"activities": result})
}

// ReorderActivities handles PATCH /api/activities/:stopId/activities/order.
func (s *Server) ReorderActivities(c *fiber.Ctx) error {
	stopID, err := s.parseID(c, "stopId")
	if err != nil {
		return nil
	}

	var req struct {
		ActivityIDs []uint `json:"activityIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.itineraryService.ReorderActivities(c.UserContext(), stopID, currentUserID(c), req.ActivityIDs)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Activities reordered", fiber.Map{"activities": result})
}
