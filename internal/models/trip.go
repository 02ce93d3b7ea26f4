package models

import "time"

// Trip is owned by exactly one user. Stops and expenses cascade on delete.
type Trip struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	IsPublic    bool       `gorm:"default:false" json:"is_public"`
	CoverImage  string     `json:"cover_image,omitempty"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	// User is the loaded owner row; only its public projection is serialized.
	User  User         `gorm:"foreignKey:UserID" json:"-"`
	Owner *UserSummary `gorm:"-" json:"user,omitempty"`
	Stops     []TripStop `gorm:"constraint:OnDelete:CASCADE" json:"stops,omitempty"`
	Expenses  []Expense  `gorm:"constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TripStop is a city visited during a trip. Order values within a trip are
// a dense permutation of 1..N.
type TripStop struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TripID     uint       `gorm:"not null;index" json:"trip_id"`
	CityID     uint       `gorm:"not null" json:"city_id"`
	City       City       `gorm:"foreignKey:CityID" json:"city"`
	Order      int        `gorm:"not null" json:"order"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Activities []Activity `gorm:"constraint:OnDelete:CASCADE" json:"activities,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// BudgetSummary is derived on every trip fetch and never persisted.
type BudgetSummary struct {
	ActivitiesTotal float64            `json:"activities_total"`
	ExpensesTotal   float64            `json:"expenses_total"`
	GrandTotal      float64            `json:"grand_total"`
	Breakdown       map[string]float64 `json:"breakdown"`
}

// TripDetail is a trip with its derived budget attached.
type TripDetail struct {
	Trip
	Budget BudgetSummary `json:"budget"`
}
