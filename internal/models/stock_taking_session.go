package models

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "ACTIVE"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCancelled SessionStatus = "CANCELLED"
)

// StockTakingSession: a bounded unit of counting work by one user against one
// project. Created ACTIVE; COMPLETED and CANCELLED are terminal.
type StockTakingSession struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	User        User
	ProjectID   uint `gorm:"index;not null"`
	Project     Project
	SessionName string        `gorm:"size:100;not null"`
	Status      SessionStatus `gorm:"size:20;not null;default:ACTIVE"`
	StartedAt   time.Time     `gorm:"not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time

	Records []StockTakingRecord `gorm:"foreignKey:SessionID"`
}
