package models

import "time"

// StorageLocation: a physical rack/shelf identified by a human code and an
// optional scannable QR code. Immutable once created (no update handler).
type StorageLocation struct {
	ID           uint    `gorm:"primaryKey"`
	LocationCode string  `gorm:"size:50;uniqueIndex;not null"`
	LocationName string  `gorm:"size:100;not null"`
	QRCode       *string `gorm:"column:qr_code;size:100;uniqueIndex"`
	CreatedAt    time.Time

	Parts []Part
}
