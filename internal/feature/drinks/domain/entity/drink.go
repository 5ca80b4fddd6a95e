// Package entity defines the domain models for the drinks feature.
package entity

import "time"

// Drink represents a cocktail recipe in the catalog. Entries come from two
// places: the external catalog ingested by cmd/ingest (SourceID set) and
// recipes created by administrators (SourceID nil).
type Drink struct {
	ID           uint      `gorm:"primaryKey"`
	SourceID     *string   `gorm:"size:64;uniqueIndex"`
	Name         string    `gorm:"size:255;not null;index"`
	Category     string    `gorm:"size:128"`
	Alcoholic    bool      `gorm:"not null;default:true"`
	Glass        string    `gorm:"size:128"`
	Instructions string    `gorm:"type:text"`
	ImageURL     string    `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
