package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanRequest struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BorrowerID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount           float64    `gorm:"not null"`
	InterestRate     float64    `gorm:"not null"`
	PeriodMonths     int        `gorm:"not null"`
	Status           string     `gorm:"type:varchar(50);not null;index"`
	MatchedWith      *uuid.UUID `gorm:"type:uuid;index"`
	BorrowerAccepted bool       `gorm:"not null;default:false"`
	LenderAccepted   bool       `gorm:"not null;default:false"`
	// Version guards every mutation; updates carry WHERE version = ?.
	Version   int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
