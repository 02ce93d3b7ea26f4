package models

import "time"

// Activity belongs to a trip stop. Day is 1-based relative to the stop;
// Order values within a stop are a dense permutation of 1..N.
type Activity struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TripStopID uint      `gorm:"not null;index" json:"trip_stop_id"`
	Name       string    `gorm:"not null" json:"name"`
	Type       string    `json:"type"`
	Cost       float64   `json:"cost"`
	DurationHr float64   `json:"duration_hr"`
	Day        int       `json:"day"`
	Order      int       `gorm:"not null" json:"order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
