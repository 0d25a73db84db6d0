package models

import "time"

// Project: a bounded inventory scope (plant, warehouse area, annual count).
// Deactivation is soft; projects are never physically deleted.
type Project struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:255"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Parts    []Part
	Sessions []StockTakingSession
}
