package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer holds loyalty members and discount-eligible buyers.
// DiscountType: "none" | "senior" | "pwd"
type Customer struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name  string    `gorm:"not null"`
	Phone *string
	Email *string
	// CardID is the physical loyalty card number; unique when present.
	CardID       *string `gorm:"uniqueIndex"`
	DiscountType string  `gorm:"type:varchar(20);not null;default:'none'"`
	DiscountID   *string
	IsActive     bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
