package models

import "time"

// StockTakingRecord: one counted observation of a part within a session.
// Rows are append-only; multiple records per part per session are allowed and
// the most recent one becomes the part's QtySisa.
type StockTakingRecord struct {
	ID        uint `gorm:"primaryKey"`
	SessionID uint `gorm:"index;not null"`
	Session   StockTakingSession
	PartID    uint `gorm:"index;not null"`
	Part      Part
	QtyCounted int `gorm:"not null"`
	// QtyDifference = QtyCounted - part.QtyStd at recording time (signed).
	QtyDifference int       `gorm:"not null"`
	Remark        *string   `gorm:"size:255"`
	RecordedAt    time.Time `gorm:"not null"`
	CreatedAt     time.Time
}
