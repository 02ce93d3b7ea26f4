package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"globetrotter/internal/config"
	"globetrotter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{OTPExpiryMinutes: 10}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := noopUserRepo()
		var created *models.User
		users.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 7
			created = u
			return nil
		}
		svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

		user, err := svc.Register(context.Background(), RegisterInput{
			Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		assert.Equal(t, models.DefaultProfileImage, user.ProfileImage)
		assert.NotEqual(t, "secret1", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))
	})

	t.Run("Duplicate email", func(t *testing.T) {
		users := noopUserRepo()
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1}, nil
		}
		svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

		_, err := svc.Register(context.Background(), RegisterInput{
			Name: "Ada Lovelace", Email: "taken@example.com", Password: "secret1",
		})
		assertConflictError(t, err)
	})

	t.Run("Invalid input", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), &mailerStub{}, testAuthConfig())

		cases := []RegisterInput{
			{Name: "", Email: "a@x.com", Password: "secret1"},
			{Name: "Ada", Email: "not-an-email", Password: "secret1"},
			{Name: "Ada", Email: "a@x.com", Password: "short"},
		}
		for _, in := range cases {
			_, err := svc.Register(context.Background(), in)
			assertValidationError(t, err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	users := noopUserRepo()
	users.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "ada@example.com" {
			return &models.User{ID: 1, Email: email, Password: hashPassword(t, "secret1")}, nil
		}
		return nil, nil
	}
	svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

	t.Run("Success", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "ada@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ada@example.com", "wrong")
		assertUnauthorizedError(t, err)
	})

	t.Run("Unknown email fails identically", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "secret1")
		assertUnauthorizedError(t, err)
	})

	t.Run("Email is case-insensitive", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "  Ada@Example.COM ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	users := noopUserRepo()
	stored := &models.User{ID: 1, Name: "Ada", Country: "UK", Phone: "111"}
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) { return stored, nil }
	svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1, Country: "Portugal", City: "Lisbon",
	})
	require.NoError(t, err)
	// Provided fields patched, the rest untouched.
	assert.Equal(t, "Portugal", user.Country)
	assert.Equal(t, "Lisbon", user.City)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "111", user.Phone)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("Known email stores a 6-digit code and mails it", func(t *testing.T) {
		users := noopUserRepo()
		stored := &models.User{ID: 1, Email: "ada@example.com"}
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		var updated *models.User
		users.updateFn = func(_ context.Context, u *models.User) error {
			updated = u
			return nil
		}
		mail := &mailerStub{}
		svc := NewAuthService(users, mail, testAuthConfig())

		require.NoError(t, svc.ForgotPassword(context.Background(), "ada@example.com"))

		require.NotNil(t, updated)
		require.NotNil(t, updated.ResetOTP)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), *updated.ResetOTP)
		require.NotNil(t, updated.ResetOTPExpires)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), *updated.ResetOTPExpires, time.Minute)

		require.Len(t, mail.sent, 1)
		assert.Equal(t, *updated.ResetOTP, mail.sent[0])
		assert.Equal(t, "ada@example.com", mail.to[0])
	})

	t.Run("Unknown email succeeds without sending", func(t *testing.T) {
		mail := &mailerStub{}
		svc := NewAuthService(noopUserRepo(), mail, testAuthConfig())

		require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
		assert.Empty(t, mail.sent)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	otp := "123456"
	newUserWithOTP := func(expires time.Time) *models.User {
		code := otp
		exp := expires
		return &models.User{
			ID:              1,
			Email:           "ada@example.com",
			Password:        hashPassword(t, "oldpass"),
			ResetOTP:        &code,
			ResetOTPExpires: &exp,
		}
	}

	t.Run("Success clears the OTP and rotates the password", func(t *testing.T) {
		users := noopUserRepo()
		stored := newUserWithOTP(time.Now().Add(5 * time.Minute))
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

		require.NoError(t, svc.ResetPassword(context.Background(), "ada@example.com", otp, "newsecret"))
		assert.Nil(t, stored.ResetOTP)
		assert.Nil(t, stored.ResetOTPExpires)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")))
	})

	t.Run("Wrong code", func(t *testing.T) {
		users := noopUserRepo()
		stored := newUserWithOTP(time.Now().Add(5 * time.Minute))
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

		err := svc.ResetPassword(context.Background(), "ada@example.com", "000000", "newsecret")
		assertValidationError(t, err)
	})

	t.Run("Expired code", func(t *testing.T) {
		users := noopUserRepo()
		stored := newUserWithOTP(time.Now().Add(-time.Minute))
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

		err := svc.ResetPassword(context.Background(), "ada@example.com", otp, "newsecret")
		assertValidationError(t, err)
	})

	t.Run("Code is single-use", func(t *testing.T) {
		users := noopUserRepo()
		stored := newUserWithOTP(time.Now().Add(5 * time.Minute))
		users.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(users, &mailerStub{}, testAuthConfig())

		require.NoError(t, svc.ResetPassword(context.Background(), "ada@example.com", otp, "newsecret"))
		err := svc.ResetPassword(context.Background(), "ada@example.com", otp, "another1")
		assertValidationError(t, err)
	})

	t.Run("Weak new password", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), &mailerStub{}, testAuthConfig())
		err := svc.ResetPassword(context.Background(), "ada@example.com", otp, "short")
		assertValidationError(t, err)
	})

	t.Run("Unknown email fails identically to a wrong code", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), &mailerStub{}, testAuthConfig())
		err := svc.ResetPassword(context.Background(), "ghost@example.com", otp, "newsecret")
		assertValidationError(t, err)
	})
}
