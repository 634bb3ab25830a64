package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account with role-based access.
// Role: "pharmacist" | "manager" | "admin"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	// PINHash is set for pharmacists who log in at the POS terminal with a
	// numeric PIN; nil for dashboard-only accounts.
	PINHash *string `gorm:"column:pin_hash"`
	Role    string  `gorm:"type:varchar(20);not null"`
	// BranchID pins a pharmacist to one branch; nil = all branches.
	BranchID  *uuid.UUID `gorm:"type:uuid;index"`
	IsActive  bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
