package domain

import "time"

// Category is a per-household task category with a display color
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	HouseholdID string    `json:"household_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Color       string    `json:"color" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
