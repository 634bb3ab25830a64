package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a medicine in the catalog. Stock is NOT stored here — it lives
// in BranchInventory, one row per branch (see branch_inventory.go).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Barcode     string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Brand       *string
	Description *string
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Critical is the reorder threshold: branch stock at or below this value
	// shows up in the low-stock report.
	Critical  int  `gorm:"not null;default:10"`
	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
