package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"globetrotter/internal/cache"
	"globetrotter/internal/config"
	"globetrotter/internal/database"
	"globetrotter/internal/models"
	"globetrotter/internal/repository"
	"globetrotter/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mailerStub struct {
	to  []string
	otp []string
}

func (m *mailerStub) SendOTP(_ context.Context, to, otp string) error {
	m.to = append(m.to, to)
	m.otp = append(m.otp, otp)
	return nil
}

// newTestServer builds a full server stack on an in-memory database with the
// routes registered on a fresh Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// Handlers must behave identically without a cache.
	cache.SetClient(nil)

	cfg := &config.Config{
		JWTSecret:        "test-secret-long-enough-for-hmac-signing",
		OTPExpiryMinutes: 10,
		UploadDir:        t.TempDir(),
		UploadMaxSizeMB:  5,
	}

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		cityRepo:    repository.NewCityRepository(db),
		tripRepo:    repository.NewTripRepository(db),
		stopRepo:    repository.NewStopRepository(db),
		expenseRepo: repository.NewExpenseRepository(db),
	}
	s.authService = service.NewAuthService(s.userRepo, &mailerStub{}, cfg)
	s.tripService = service.NewTripService(s.tripRepo, s.cityRepo)
	s.itineraryService = service.NewItineraryService(s.stopRepo, s.tripRepo)
	s.expenseService = service.NewExpenseService(s.expenseRepo, s.tripRepo)
	s.cityService = service.NewCityService(s.cityRepo)
	s.imageService = service.NewImageService(cfg)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Data    map[string]any `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// registerUser creates an account through the API and returns its token and ID.
func registerUser(t *testing.T, app *fiber.App, email string) (string, uint) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Test Traveler",
		"email":    email,
		"password": "SuperSecret1!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	user, _ := env.Data["user"].(map[string]any)
	require.NotNil(t, user)
	return token, uint(user["id"].(float64))
}

func seedTestCity(t *testing.T, db *gorm.DB, name, country string, popularity int) *models.City {
	t.Helper()
	city := &models.City{Name: name, Country: country, Popularity: popularity, CostIndex: 1.0}
	require.NoError(t, db.Create(city).Error)
	return city
}

// createTestTrip creates a trip through the API and returns its ID.
func createTestTrip(t *testing.T, app *fiber.App, token, title string, public bool) uint {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/trips/", token, fiber.Map{
		"title":     title,
		"startDate": "2026-09-01",
		"endDate":   "2026-09-14",
		"isPublic":  public,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	trip, _ := env.Data["trip"].(map[string]any)
	require.NotNil(t, trip)
	return uint(trip["id"].(float64))
}

func tripPath(tripID uint, suffix string) string {
	return fmt.Sprintf("/api/trips/%d%s", tripID, suffix)
}
