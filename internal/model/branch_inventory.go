package model

import (
	"time"

	"github.com/google/uuid"
)

// BranchInventory is one stock row per (branch, product).
// Invariant: stock never goes below zero — decrements are issued as
// conditional UPDATEs that fail the enclosing transaction instead.
type BranchInventory struct {
	BranchID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stock      int       `gorm:"not null;default:0"`
	ExpiryDate *time.Time
	IsActive   bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Branch  *Branch  `gorm:"foreignKey:BranchID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (BranchInventory) TableName() string { return "branch_inventory" }
