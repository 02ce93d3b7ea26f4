package server

import (
	"time"

	"globetrotter/internal/models"
	"globetrotter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTrip handles POST /api/trips. Accepts JSON or a multipart form with
// an optional coverImage file field.
func (s *Server) CreateTrip(c *fiber.Ctx) error {
	in := service.CreateTripInput{UserID: currentUserID(c)}

	if isMultipart(c) {
		in.Title = c.FormValue("title")
		in.Description = c.FormValue("description")
		in.IsPublic = c.FormValue("isPublic") == "true"

		start, err := parseDate(c.FormValue("startDate"))
		if err != nil {
			return fail(c, models.NewValidationError(err.Error()))
		}
		end, err := parseDate(c.FormValue("endDate"))
		if err != nil {
			return fail(c, models.NewValidationError(err.Error()))
		}
		in.StartDate, in.EndDate = start, end

		file, err := readUploadedFile(c, "coverImage")
		if err != nil {
			return fail(c, models.NewValidationError("Invalid cover image upload"))
		}
		if file != nil {
			url, storeErr := s.imageService.Store(service.StoreImageInput{
				Filename:    file.Filename,
				ContentType: file.ContentType,
				Content:     file.Content,
			})
			if storeErr != nil {
				return fail(c, storeErr)
			}
			in.CoverImage = url
		}
	} else {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			StartDate   string `json:"startDate"`
			EndDate     string `json:"endDate"`
			IsPublic    bool   `json:"isPublic"`
			CoverImage  string `json:"coverImage"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, models.NewValidationError("Invalid request body"))
		}

		start, err := parseDate(req.StartDate)
		if err != nil {
			return fail(c, models.NewValidationError(err.Error()))
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return fail(c, models.NewValidationError(err.Error()))
		}
		in.Title = req.Title
		in.Description = req.Description
		in.StartDate, in.EndDate = start, end
		in.IsPublic = req.IsPublic
		in.CoverImage = req.CoverImage
	}

	trip, err := s.tripService.CreateTrip(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, "Trip created", fiber.Map{"trip": trip})
}

// GetMyTrips handles GET /api/trips/my.
func (s *Server) GetMyTrips(c *fiber.Ctx) error {
	trips, err := s.tripService.GetMyTrips(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"trips": trips})
}

// GetTrip handles GET /api/trips/:tripId.
func (s *Server) GetTrip(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}
	detail, err := s.tripService.GetTrip(c.UserContext(), tripID, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"trip": detail})
}

// GetPublicTrip handles GET /api/trips/public/:tripId without authentication.
func (s *Server) GetPublicTrip(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}
	detail, err := s.tripService.GetPublicTrip(c.UserContext(), tripID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"trip": detail})
}

// UpdateTrip handles PATCH /api/trips/:tripId. Omitted fields stay untouched.
func (s *Server) UpdateTrip(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		StartDate   *string `json:"startDate"`
		EndDate     *string `json:"endDate"`
		IsPublic    *bool   `json:"isPublic"`
		CoverImage  *string `json:"coverImage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateTripInput{
		UserID:      currentUserID(c),
		TripID:      tripID,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CoverImage:  req.CoverImage,
	}
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			return fail(c, models.NewValidationError(err.Error()))
		}
		in.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			return fail(c, models.NewValidationError(err.Error()))
		}
		in.EndDate = &t
	}

	trip, err := s.tripService.UpdateTrip(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Trip updated", fiber.Map{"trip": trip})
}

// DeleteTrip handles DELETE /api/trips/:tripId.
func (s *Server) DeleteTrip(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}
	if err := s.tripService.DeleteTrip(c.UserContext(), tripID, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Trip deleted", nil)
}

// ReplaceStops handles POST /api/trips/:tripId/stops.
func (s *Server) ReplaceStops(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	var req struct {
		Stops []struct {
			CityID    uint   `json:"cityId"`
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		} `json:"stops"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	stops := make([]service.StopInput, len(req.Stops))
	for i, stop := range req.Stops {
		var start, end time.Time
		var parseErr error
		if start, parseErr = parseDate(stop.StartDate); parseErr != nil {
			return fail(c, models.NewValidationError(parseErr.Error()))
		}
		if end, parseErr = parseDate(stop.EndDate); parseErr != nil {
			return fail(c, models.NewValidationError(parseErr.Error()))
		}
		stops[i] = service.StopInput{CityID: stop.CityID, StartDate: start, EndDate: end}
	}

	result, err := s.tripService.ReplaceStops(c.UserContext(), tripID, currentUserID(c), stops)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Stops updated", fiber.Map{"stops": result})
}

// ReorderStops handles PATCH /api/trips/:tripId/stops/order.
func (s *Server) ReorderStops(c *fiber.Ctx) error {
	tripID, err := s.parseID(c, "tripId")
	if err != nil {
		return nil
	}

	var req struct {
		StopIDs []uint `json:"stopIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.tripService.ReorderStops(c.UserContext(), tripID, currentUserID(c), req.StopIDs)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Stops reordered", fiber.Map{"stops": result})
}
