package models

import "time"

// Part: one master-data line item. QtyStd is the reference count set at
// import time; QtySisa is the live on-hand quantity and is overwritten (not
// accumulated) by each new stock count.
type Part struct {
	ID                uint    `gorm:"primaryKey"`
	No                string  `gorm:"size:50;not null"`
	Part              string  `gorm:"size:100;not null"`
	StdPack           float64 `gorm:"type:numeric(10,2);not null"`
	ProjectID         uint    `gorm:"index;not null"`
	Project           Project
	PartName          string `gorm:"size:100;not null"`
	PartNumber        string `gorm:"size:100;not null"`
	StorageLocationID uint   `gorm:"index;not null"`
	StorageLocation   StorageLocation
	SupplierCode      *string `gorm:"size:50"`
	SupplierName      *string `gorm:"size:100"`
	Type              *string `gorm:"size:50"`
	Image             *string `gorm:"size:255"`
	QtyStd            int     `gorm:"not null;default:0"`
	QtySisa           int     `gorm:"not null;default:0"`
	Remark            *string `gorm:"size:255"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
