package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the header row of one POS transaction. Created atomically with
// its SaleItems, the stock decrements, and the points award.
// Status: "completed" | "voided"
type Sale struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string     `gorm:"uniqueIndex;not null"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	BranchID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	// PharmacistSessionID links the sale to the shift it was rung up in;
	// session close recomputes total_sales from these rows.
	PharmacistSessionID uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountType        string          `gorm:"type:varchar(20);not null;default:'none'"`
	PaymentMethod       string          `gorm:"type:varchar(20);not null"`
	// PaymentStatus is fixed to "paid" at creation — there is no partial
	// payment state machine.
	PaymentStatus  string `gorm:"type:varchar(20);not null;default:'paid'"`
	Status         string `gorm:"type:varchar(20);not null;default:'completed'"`
	PointsEarned   int    `gorm:"not null;default:0"`
	PointsRedeemed int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items    []SaleItem `gorm:"foreignKey:SaleID"`
	Customer *Customer  `gorm:"foreignKey:CustomerID"`
}

// SaleItem is one cart line. Its creation always pairs with a stock
// decrement on the sale's branch.
type SaleItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
