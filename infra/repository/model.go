package repository

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an account record in the database.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       int64     `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"size:255;not null"`
	Balance      float64   `gorm:"not null"`
	SpecialLimit float64   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a transaction record. Either side may be absent.
type Transaction struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type              string     `gorm:"size:16;not null"`
	Amount            float64    `gorm:"not null"`
	SourceAccountID   *uuid.UUID `gorm:"type:uuid;index"`
	ReceiverAccountID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time

	Source   *Account `gorm:"foreignKey:SourceAccountID"`
	Receiver *Account `gorm:"foreignKey:ReceiverAccountID"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
