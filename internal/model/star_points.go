package model

import (
	"time"

	"github.com/google/uuid"
)

// Star points transaction types.
const (
	PointsEarned   = "EARNED"
	PointsRedeemed = "REDEEMED"
)

// StarPoints is the loyalty balance row, one per customer, created lazily
// on the customer's first sale or registration.
// Invariant: PointsBalance == TotalPointsEarned - TotalPointsRedeemed >= 0.
type StarPoints struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PointsBalance       int       `gorm:"not null;default:0"`
	TotalPointsEarned   int       `gorm:"not null;default:0"`
	TotalPointsRedeemed int       `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (StarPoints) TableName() string { return "star_points" }

// StarPointsTransaction is an immutable ledger entry. Rows are only ever
// inserted — cancellations append compensating entries.
// TransactionType: EARNED | REDEEMED
type StarPointsTransaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StarPointsID    uuid.UUID `gorm:"type:uuid;index;not null"`
	PointsAmount    int       `gorm:"not null"`
	TransactionType string    `gorm:"type:varchar(10);not null"`
	// ReferenceSaleID links the entry to the sale that earned or spent the
	// points, when there is one.
	ReferenceSaleID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time
}

func (StarPointsTransaction) TableName() string { return "star_points_transactions" }
