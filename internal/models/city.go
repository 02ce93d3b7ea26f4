package models

import "time"

// City is static reference data seeded out-of-band (see cmd/seed).
type City struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Country     string    `gorm:"not null;index" json:"country"`
	CostIndex   float64   `json:"cost_index"`
	Popularity  int       `gorm:"index" json:"popularity"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
