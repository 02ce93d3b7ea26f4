// Package seed creates demo data for development and testing. It is never
// wired into the server itself; see cmd/seed.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"globetrotter/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// Options tune seeding behavior.
type Options struct {
	// SkipBcrypt stores demo passwords in plain text for faster seeding.
	// Seeded accounts cannot log in when this is set.
	SkipBcrypt bool
}

// NewFactory creates a Factory bound to the provided GORM DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var activityTypes = []string{"sightseeing", "food", "museum", "hike", "nightlife", "shopping", "tour"}

// CreateUser persists a demo user. Every seeded account uses the password
// "password123". Optional overrides modify the user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/300?u=%s", gofakeit.UUID()),
		Country:      gofakeit.Country(),
		City:         gofakeit.City(),
		Phone:        gofakeit.Phone(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user create failed: %w", err)
	}
	return user, nil
}

// CreateTrip persists a demo trip for the user, with stops through the given
// cities, a few activities per stop, and a spread of expenses.
func (f *Factory) CreateTrip(user *models.User, cities []models.City, overrides ...func(*models.Trip)) (*models.Trip, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("seed trip needs at least one city")
	}

	start := time.Now().AddDate(0, 0, f.rng.Intn(120)-30)
	daysPerStop := 2 + f.rng.Intn(3)
	end := start.AddDate(0, 0, daysPerStop*len(cities))

	trip := &models.Trip{
		Title:       tripTitle(cities),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		StartDate:   start,
		EndDate:     end,
		IsPublic:    f.rng.Intn(3) == 0,
		CoverImage:  fmt.Sprintf("https://picsum.photos/seed/trip-%s/1200/600", gofakeit.UUID()),
		UserID:      user.ID,
	}
	for _, override := range overrides {
		override(trip)
	}
	if err := f.db.Create(trip).Error; err != nil {
		return nil, fmt.Errorf("seed trip create failed: %w", err)
	}

	for i, city := range cities {
		stopStart := start.AddDate(0, 0, i*daysPerStop)
		stop := models.TripStop{
			TripID:    trip.ID,
			CityID:    city.ID,
			Order:     i + 1,
			StartDate: stopStart,
			EndDate:   stopStart.AddDate(0, 0, daysPerStop),
		}
		if err := f.db.Create(&stop).Error; err != nil {
			return nil, fmt.Errorf("seed stop create failed: %w", err)
		}

		numActivities := 1 + f.rng.Intn(4)
		for j := 0; j < numActivities; j++ {
			activity := models.Activity{
				TripStopID: stop.ID,
				Name:       fmt.Sprintf("%s in %s", gofakeit.HipsterWord(), city.Name),
				Type:       activityTypes[f.rng.Intn(len(activityTypes))],
				Cost:       roundMoney(city.CostIndex * float64(10+f.rng.Intn(90))),
				DurationHr: float64(1+f.rng.Intn(6)) * 0.5,
				Day:        1 + f.rng.Intn(daysPerStop),
				Order:      j + 1,
			}
			if err := f.db.Create(&activity).Error; err != nil {
				return nil, fmt.Errorf("seed activity create failed: %w", err)
			}
		}
	}

	numExpenses := 2 + f.rng.Intn(5)
	for i := 0; i < numExpenses; i++ {
		expense := models.Expense{
			TripID:   trip.ID,
			Category: models.ExpenseCategories[f.rng.Intn(len(models.ExpenseCategories))],
			Amount:   roundMoney(float64(20 + f.rng.Intn(400))),
			Note:     gofakeit.Sentence(4),
		}
		if err := f.db.Create(&expense).Error; err != nil {
			return nil, fmt.Errorf("seed expense create failed: %w", err)
		}
	}

	return trip, nil
}

func tripTitle(cities []models.City) string {
	if len(cities) == 1 {
		return fmt.Sprintf("%s Getaway", cities[0].Name)
	}
	return fmt.Sprintf("%s to %s", cities[0].Name, cities[len(cities)-1].Name)
}

func roundMoney(v float64) float64 {
	return float64(int(v*100)) / 100
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
