package model

import (
	"time"

	"github.com/google/uuid"
)

// NoCategoryName is the sentinel category that absorbs products whose
// category gets archived. It is seeded at startup and can never be archived.
const NoCategoryName = "NO CATEGORY"

// Category classifies products and owns the barcode prefix used when
// generating barcodes for new medicines.
type Category struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string    `gorm:"uniqueIndex;not null"`
	Prefix string    `gorm:"type:varchar(10);not null"`
	// Description is shown in the admin dashboard only.
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }

// CategoryBarcodeCounter tracks the last issued barcode sequence per
// category. The next barcode is prefix + zero-padded(last+1), re-probed on
// collision with manually inserted barcodes.
type CategoryBarcodeCounter struct {
	CategoryID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastSequence int       `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

func (CategoryBarcodeCounter) TableName() string { return "category_barcode_counters" }
