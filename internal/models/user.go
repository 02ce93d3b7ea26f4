// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultProfileImage is assigned to newly registered users until they
// upload their own picture.
const DefaultProfileImage = "https://i.pravatar.cc/300"

// User represents a registered GlobeTrotter account.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"not null" json:"-"`
	ProfileImage string `json:"profile_image"`
	Country      string `json:"country,omitempty"`
	City         string `json:"city,omitempty"`
	Phone        string `json:"phone,omitempty"`
	// Password-reset state: nil when no reset is pending.
	ResetOTP        *string    `json:"-"`
	ResetOTPExpires *time.Time `json:"-"`
	SavedCities     []City     `gorm:"many2many:user_saved_cities" json:"saved_cities,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// UserSummary is the subset of user fields safe to embed in trip responses.
type UserSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// PublicProfile projects the user down to the fields safe to expose to
// other users, including anonymous public-trip readers.
func (u *User) PublicProfile() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
	}
}
