package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"globetrotter/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates demo-data creation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, Options{}),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every seeded row, children before parents so foreign keys
// never block the deletes.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Activity{},
		&models.TripStop{},
		&models.Expense{},
		&models.Trip{},
		&models.City{},
		&models.User{},
	}
	if err := s.db.Exec("DELETE FROM user_saved_cities").Error; err != nil {
		return fmt.Errorf("clearing saved cities failed: %w", err)
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clearing table failed: %w", err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// SeedDemo creates numUsers demo accounts, each with 1-3 trips through
// random catalog cities and a handful of saved cities. The city catalog must
// already be seeded.
func (s *Seeder) SeedDemo(numUsers int) error {
	var cities []models.City
	if err := s.db.Order("popularity DESC").Find(&cities).Error; err != nil {
		return fmt.Errorf("loading city catalog failed: %w", err)
	}
	if len(cities) == 0 {
		return fmt.Errorf("city catalog is empty, run seed.Cities first")
	}

	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}

		numTrips := 1 + s.rng.Intn(3)
		for t := 0; t < numTrips; t++ {
			stops := s.pickCities(cities, 1+s.rng.Intn(4))
			if _, err := s.factory.CreateTrip(user, stops); err != nil {
				return err
			}
		}

		for _, city := range s.pickCities(cities, s.rng.Intn(5)) {
			if err := s.db.Model(user).Association("SavedCities").Append(&city); err != nil {
				return fmt.Errorf("saving city for user %d failed: %w", user.ID, err)
			}
		}
	}

	log.Printf("Seeded %d demo users with trips", numUsers)
	return nil
}

// pickCities returns n distinct random cities from the catalog.
func (s *Seeder) pickCities(cities []models.City, n int) []models.City {
	if n > len(cities) {
		n = len(cities)
	}
	picked := make([]models.City, 0, n)
	for _, i := range s.rng.Perm(len(cities))[:n] {
		picked = append(picked, cities[i])
	}
	return picked
}
