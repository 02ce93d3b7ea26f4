package seed

import (
	"fmt"
	"log"

	"globetrotter/internal/models"

	"gorm.io/gorm"
)

// cityCatalog is the built-in destination list. Popularity is a rough
// relative ranking used by the popular-cities endpoint; cost index is an
// approximate daily budget multiplier (1.0 = global average).
var cityCatalog = []models.City{
	{Name: "Paris", Country: "France", CostIndex: 1.45, Popularity: 100},
	{Name: "Tokyo", Country: "Japan", CostIndex: 1.30, Popularity: 98},
	{Name: "New York", Country: "United States", CostIndex: 1.80, Popularity: 97},
	{Name: "London", Country: "United Kingdom", CostIndex: 1.65, Popularity: 96},
	{Name: "Barcelona", Country: "Spain", CostIndex: 1.10, Popularity: 94},
	{Name: "Rome", Country: "Italy", CostIndex: 1.15, Popularity: 93},
	{Name: "Bangkok", Country: "Thailand", CostIndex: 0.55, Popularity: 92},
	{Name: "Istanbul", Country: "Turkey", CostIndex: 0.60, Popularity: 90},
	{Name: "Dubai", Country: "United Arab Emirates", CostIndex: 1.40, Popularity: 89},
	{Name: "Singapore", Country: "Singapore", CostIndex: 1.50, Popularity: 88},
	{Name: "Amsterdam", Country: "Netherlands", CostIndex: 1.40, Popularity: 86},
	{Name: "Lisbon", Country: "Portugal", CostIndex: 0.90, Popularity: 85},
	{Name: "Prague", Country: "Czech Republic", CostIndex: 0.80, Popularity: 84},
	{Name: "Seoul", Country: "South Korea", CostIndex: 1.10, Popularity: 83},
	{Name: "Sydney", Country: "Australia", CostIndex: 1.45, Popularity: 82},
	{Name: "Mexico City", Country: "Mexico", CostIndex: 0.55, Popularity: 80},
	{Name: "Vienna", Country: "Austria", CostIndex: 1.25, Popularity: 79},
	{Name: "Budapest", Country: "Hungary", CostIndex: 0.70, Popularity: 78},
	{Name: "Marrakech", Country: "Morocco", CostIndex: 0.50, Popularity: 76},
	{Name: "Bali", Country: "Indonesia", CostIndex: 0.45, Popularity: 75},
	{Name: "Rio de Janeiro", Country: "Brazil", CostIndex: 0.65, Popularity: 74},
	{Name: "Cape Town", Country: "South Africa", CostIndex: 0.60, Popularity: 72},
	{Name: "Reykjavik", Country: "Iceland", CostIndex: 1.70, Popularity: 70},
	{Name: "Kyoto", Country: "Japan", CostIndex: 1.20, Popularity: 69},
	{Name: "Berlin", Country: "Germany", CostIndex: 1.15, Popularity: 68},
	{Name: "Athens", Country: "Greece", CostIndex: 0.85, Popularity: 67},
	{Name: "Hanoi", Country: "Vietnam", CostIndex: 0.40, Popularity: 66},
	{Name: "Buenos Aires", Country: "Argentina", CostIndex: 0.55, Popularity: 64},
	{Name: "Edinburgh", Country: "United Kingdom", CostIndex: 1.30, Popularity: 62},
	{Name: "Vancouver", Country: "Canada", CostIndex: 1.40, Popularity: 60},
	{Name: "Cairo", Country: "Egypt", CostIndex: 0.35, Popularity: 58},
	{Name: "Dubrovnik", Country: "Croatia", CostIndex: 0.95, Popularity: 56},
	{Name: "Queenstown", Country: "New Zealand", CostIndex: 1.35, Popularity: 54},
	{Name: "Porto", Country: "Portugal", CostIndex: 0.80, Popularity: 52},
	{Name: "Krakow", Country: "Poland", CostIndex: 0.65, Popularity: 50},
}

// Cities inserts the built-in city catalog, skipping entries that already
// exist. Safe to run repeatedly.
func Cities(db *gorm.DB) error {
	created := 0
	for _, city := range cityCatalog {
		var count int64
		if err := db.Model(&models.City{}).
			Where("name = ? AND country = ?", city.Name, city.Country).
			Count(&count).Error; err != nil {
			return fmt.Errorf("city catalog lookup failed: %w", err)
		}
		if count > 0 {
			continue
		}

		row := city
		row.Description = fmt.Sprintf("%s, %s", row.Name, row.Country)
		row.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/500", slugify(row.Name))
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("city catalog insert failed for %s: %w", row.Name, err)
		}
		created++
	}
	log.Printf("City catalog: %d new cities inserted (%d total in catalog)", created, len(cityCatalog))
	return nil
}
