package server

import (
	"github.com/gofiber/fiber/v2"
)

// SearchCities handles GET /api/cities/search?q=&limit=.
func (s *Server) SearchCities(c *fiber.Ctx) error {
	cities, err := s.cityService.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"cities": cities})
}

// PopularCities handles GET /api/cities/popular?limit=.
func (s *Server) PopularCities(c *fiber.Ctx) error {
	cities, err := s.cityService.Popular(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"cities": cities})
}

// GetSavedCities handles GET /api/cities/me/saved.
func (s *Server) GetSavedCities(c *fiber.Ctx) error {
	cities, err := s.cityService.SavedCities(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"cities": cities})
}

// SaveCity handles POST /api/cities/me/saved/:cityId.
func (s *Server) SaveCity(c *fiber.Ctx) error {
	cityID, err := s.parseID(c, "cityId")
	if err != nil {
		return nil
	}
	if err := s.cityService.SaveCity(c.UserContext(), currentUserID(c), cityID); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusCreated, "City saved", nil)
}

// UnsaveCity handles DELETE /api/cities/me/saved/:cityId.
func (s *Server) UnsaveCity(c *fiber.Ctx) error {
	cityID, err := s.parseID(c, "cityId")
	if err != nil {
		return nil
	}
	if err := s.cityService.UnsaveCity(c.UserContext(), currentUserID(c), cityID); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "City removed from saved", nil)
}
