package models

import (
	"time"

	"github.com/google/uuid"
)

// InventorySummary is one stock row per (dealer, vehicle) as of the last full
// sync; it does not track live stock.
type InventorySummary struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VehicleID     string    `gorm:"column:vehicle_id;not null;index:idx_inventory_summaries_dealer_vehicle,unique"`
	VehicleName   string    `gorm:"column:vehicle_name;not null"`
	DealerID      string    `gorm:"column:dealer_id;not null;index:idx_inventory_summaries_dealer_vehicle,unique"`
	DealerName    string    `gorm:"column:dealer_name;not null"`
	Region        string    `gorm:"column:region;not null"`
	StockCount    int       `gorm:"column:stock_count;not null;default:0"`
	LastUpdatedAt time.Time `gorm:"column:last_updated_at;autoUpdateTime"`
}

func (InventorySummary) TableName() string { return "inventory_summaries" }
