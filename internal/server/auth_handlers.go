package server

import (
	"globetrotter/internal/models"
	"globetrotter/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Country  string `json:"country"`
		City     string `json:"city"`
		Phone    string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Country:  req.Country,
		City:     req.City,
		Phone:    req.Phone,
	})
	if err != nil {
		return fail(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return respond(c, fiber.StatusCreated, "Registration successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	return respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetProfile handles GET /api/auth/profile.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.authService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"user": user})
}

// UpdateProfile handles PATCH /api/auth/update-profile. Accepts JSON or a
// multipart form with an optional profileImage file field.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	in := service.UpdateProfileInput{UserID: currentUserID(c)}

	if isMultipart(c) {
		in.Name = c.FormValue("name")
		in.Country = c.FormValue("country")
		in.City = c.FormValue("city")
		in.Phone = c.FormValue("phone")

		file, err := readUploadedFile(c, "profileImage")
		if err != nil {
			return fail(c, models.NewValidationError("Invalid profile image upload"))
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
			in.ProfileImage = url
		}
	} else {
		var req struct {
			Name    string `json:"name"`
			Country string `json:"country"`
			City    string `json:"city"`
			Phone   string `json:"phone"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fail(c, models.NewValidationError("Invalid request body"))
		}
		in.Name = req.Name
		in.Country = req.Country
		in.City = req.City
		in.Phone = req.Phone
	}

	user, err := s.authService.UpdateProfile(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile updated", fiber.Map{"user": user})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is the
// same whether or not the email matches an account.
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.authService.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "If that email is registered, a reset code has been sent", nil)
}

// ResetPassword handles POST /api/auth/reset-password.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	if err := s.authService.ResetPassword(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, "Password has been reset", nil)
}
