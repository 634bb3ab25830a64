package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSession is a branch-scoped shift window. OPEN while EndTime is NULL.
// TotalSales is recomputed from the session's sales at close time — the
// running value is never trusted.
type SalesSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID   uuid.UUID `gorm:"type:uuid;index;not null"`
	StartTime  time.Time `gorm:"not null"`
	EndTime    *time.Time
	TotalSales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SalesSession) TableName() string { return "sales_sessions" }

// PharmacistSession binds one pharmacist to one SalesSession.
// SharePercentage is always written as 100.00; multi-pharmacist revenue
// splitting is schema-supported but not computed anywhere.
type PharmacistSession struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	SalesSessionID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	SharePercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:100.00"`
	CreatedAt       time.Time
}

func (PharmacistSession) TableName() string { return "pharmacist_sessions" }

// CashReconciliation is the end-of-shift declared-cash record, one row per
// ended session, inserted in the same transaction that closes the session.
type CashReconciliation struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PharmacistSessionID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	DeclaredCash        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeclaredNonCash     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SystemTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discrepancy         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes               *string
	CreatedAt           time.Time
}

func (CashReconciliation) TableName() string { return "cash_reconciliations" }
