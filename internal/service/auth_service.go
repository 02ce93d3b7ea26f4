// Package service contains the domain logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"globetrotter/internal/config"
	"globetrotter/internal/mailer"
	"globetrotter/internal/middleware"
	"globetrotter/internal/models"
	"globetrotter/internal/repository"
	"globetrotter/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  repository.UserRepository
	mail   mailer.Mailer
	otpTTL time.Duration
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// Optional profile fields accepted at signup.
	Country string
	City    string
	Phone   string
}

type UpdateProfileInput struct {
	UserID       uint
	Name         string
	Country      string
	City         string
	Phone        string
	ProfileImage string
}

func NewAuthService(users repository.UserRepository, mail mailer.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		mail:   mail,
		otpTTL: time.Duration(cfg.OTPExpiryMinutes) * time.Minute,
	}
}

// errInvalidOTP is uniform for wrong-code, expired-code, and unknown-email so
// the response does not reveal which check failed.
var errInvalidOTP = &models.AppError{Code: models.CodeValidation, Message: "Invalid or expired OTP"}

// normalizeEmail keeps stored and queried addresses comparable.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email, and password are required")
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("An account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Password:     string(hashed),
		ProfileImage: models.DefaultProfileImage,
		Country:      in.Country,
		City:         in.City,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns the user on success. Unknown email and wrong password fail
// identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial patch: empty fields are left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Country != "" {
		user.Country = in.Country
	}
	if in.City != "" {
		user.City = in.City
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.ProfileImage != "" {
		user.ProfileImage = in.ProfileImage
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword stores a fresh OTP and mails it. The caller gets the same
// nil result whether or not the email matches an account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return models.NewValidationError("Email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	otp, err := generateOTP()
	if err != nil {
		return models.NewInternalError(err)
	}
	expires := time.Now().Add(s.otpTTL)
	user.ResetOTP = &otp
	user.ResetOTPExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if err := s.mail.SendOTP(ctx, user.Email, otp); err != nil {
		// The OTP is stored; delivery failure must not reveal account existence.
		middleware.Logger.ErrorContext(ctx, "failed to deliver password reset code",
			slog.Any("error", err))
	}
	return nil
}

// ResetPassword consumes the OTP: it is single-use and cleared on success.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || otp == "" || newPassword == "" {
		return models.NewValidationError("Email, OTP, and new password are required")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || user.ResetOTP == nil || user.ResetOTPExpires == nil {
		return errInvalidOTP
	}
	if *user.ResetOTP != otp || time.Now().After(*user.ResetOTPExpires) {
		return errInvalidOTP
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	user.ResetOTP = nil
	user.ResetOTPExpires = nil
	return s.users.Update(ctx, user)
}

// generateOTP returns a 6-digit numeric code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
