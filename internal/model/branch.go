package model

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical pharmacy location. Inventory and sales sessions are
// branch-scoped.
type Branch struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code    string    `gorm:"column:branch_code;uniqueIndex;not null"`
	Name    string    `gorm:"not null"`
	Address *string
	Phone   *string
	// IsArchived is flipped by the archival subsystem; archiving is refused
	// while active users are still assigned to the branch.
	IsActive   bool `gorm:"not null;default:true"`
	IsArchived bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Branch) TableName() string { return "branches" }
