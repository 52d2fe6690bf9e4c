package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary is one aggregated sales row per (date, dealer). The table is
// rebuilt wholesale on every sync run, never patched in place.
type SalesSummary struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Date            time.Time       `gorm:"column:date;not null;index:idx_sales_summaries_date_dealer,unique"`
	DealerID        string          `gorm:"column:dealer_id;not null;index:idx_sales_summaries_date_dealer,unique"`
	DealerName      string          `gorm:"column:dealer_name;not null"`
	Region          string          `gorm:"column:region;not null"`
	SalespersonID   string          `gorm:"column:salesperson_id"`
	SalespersonName string          `gorm:"column:salesperson_name"`
	TotalOrders     int             `gorm:"column:total_orders;not null;default:0"`
	TotalRevenue    decimal.Decimal `gorm:"column:total_revenue;type:decimal(18,2);not null"`
	LastUpdatedAt   time.Time       `gorm:"column:last_updated_at;autoUpdateTime"`
}

func (SalesSummary) TableName() string { return "sales_summaries" }
