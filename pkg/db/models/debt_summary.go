package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtType classifies which side of the ledger a debt row sits on.
type DebtType string

const (
	DebtDealerToManufacturer DebtType = "DealerToManufacturer"
	DebtCustomerToDealer     DebtType = "CustomerToDealer"
)

// DebtSummary is one open obligation: a dealer owing the manufacturer for an
// unpaid contract, or a customer owing a dealer on an installment order. Rows
// with zero outstanding amount are never stored.
type DebtSummary struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	DealerID          *string         `gorm:"column:dealer_id"`
	DealerName        string          `gorm:"column:dealer_name"`
	CustomerID        *string         `gorm:"column:customer_id"`
	CustomerName      string          `gorm:"column:customer_name"`
	DebtType          DebtType        `gorm:"column:debt_type;not null"`
	ReferenceType     string          `gorm:"column:reference_type;not null"`
	ReferenceID       string          `gorm:"column:reference_id;not null"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(18,2);not null"`
	Status            string          `gorm:"column:status;not null"`
	DueDate           time.Time       `gorm:"column:due_date"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	LastUpdatedAt     time.Time       `gorm:"column:last_updated_at;autoUpdateTime"`
}

func (DebtSummary) TableName() string { return "debt_summaries" }
