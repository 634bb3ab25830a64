package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Archive twins. Every archivable entity has a mirror table holding the
// full snapshot of the live row at archive time plus who/why/when stamps.
// Restoring copies the snapshot back and deletes the archive row.

// ArchiveStamp is embedded in every archive twin.
type ArchiveStamp struct {
	ArchivedBy    uuid.UUID `gorm:"type:uuid;not null"`
	ArchiveReason string    `gorm:"not null"`
	ArchivedAt    time.Time `gorm:"not null"`
}

type ProductArchive struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Barcode     string    `gorm:"not null"`
	Name        string    `gorm:"not null"`
	Brand       *string
	Description *string
	CategoryID  *uuid.UUID      `gorm:"type:uuid"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Critical    int             `gorm:"not null"`
	ArchiveStamp
}

func (ProductArchive) TableName() string { return "products_archive" }

// BranchInventoryArchive preserves per-branch stock rows alongside an
// archived product so a restore can rebuild them.
type BranchInventoryArchive struct {
	BranchID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stock      int       `gorm:"not null"`
	ExpiryDate *time.Time
	ArchivedAt time.Time `gorm:"not null"`
}

func (BranchInventoryArchive) TableName() string { return "branch_inventory_archive" }

type CategoryArchive struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Prefix      string    `gorm:"not null"`
	Description *string
	ArchiveStamp
}

func (CategoryArchive) TableName() string { return "categories_archive" }

type BranchArchive struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code    string    `gorm:"column:branch_code;not null"`
	Name    string    `gorm:"not null"`
	Address *string
	Phone   *string
	ArchiveStamp
}

func (BranchArchive) TableName() string { return "branches_archive" }

type CustomerArchive struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Phone        *string
	Email        *string
	CardID       *string
	DiscountType string `gorm:"not null"`
	DiscountID   *string
	ArchiveStamp
}

func (CustomerArchive) TableName() string { return "customers_archive" }
