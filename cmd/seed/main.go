// Command main populates the database with the city catalog and demo data.
package main

import (
	"flag"
	"log"

	"globetrotter/internal/config"
	"globetrotter/internal/database"
	"globetrotter/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of demo users to create")
	shouldClean := flag.Bool("clean", false, "Clear the database before seeding")
	citiesOnly := flag.Bool("cities-only", false, "Seed only the city catalog")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.Cities(db); err != nil {
		log.Fatalf("City catalog seeding failed: %v", err)
	}

	if !*citiesOnly {
		if err := s.SeedDemo(*numUsers); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
	}

	log.Println("Seeding complete. Demo users log in with password: password123")
}
