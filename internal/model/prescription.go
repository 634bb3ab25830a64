package model

import (
	"time"

	"github.com/google/uuid"
)

// Prescription statuses.
const (
	PrescriptionActive  = "ACTIVE"
	PrescriptionExpired = "EXPIRED"
)

// Prescription audits a doctor's order against which controlled items are
// dispensed. The scanned image is stored as raw bytes.
type Prescription struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	DoctorName string    `gorm:"not null"`
	Image      []byte    `gorm:"type:bytea"`
	Status     string    `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID"`
}

// PrescriptionItem is one prescribed medicine line.
type PrescriptionItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Quantity       int       `gorm:"not null"`
	Dosage         *string
	CreatedAt      time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
