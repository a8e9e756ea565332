package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Role          string    `gorm:"type:varchar(50);not null;index"`
	KYCVerified   bool      `gorm:"not null;default:false;index"`
	KYCVerifiedAt *time.Time
	KYCPan        string `gorm:"type:varchar(255)"`
	KYCAadhaar    string `gorm:"type:varchar(255)"`
	KYCIDProof    string `gorm:"type:varchar(255)"`
	// Lender funding policy; null for borrowers and admins.
	MaxAmount    *float64
	InterestRate *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
