// Package entity defines the domain models for the users feature.
package entity

import "time"

// SavedDrink links a user to a catalog drink they bookmarked. The pair is
// the primary key, so saving the same drink twice is a no-op.
type SavedDrink struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	DrinkID   uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
