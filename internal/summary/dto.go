package summary

import (
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
)

// SalesFilters bounds sales-summary reads. Nil/empty fields are unfiltered.
type SalesFilters struct {
	From     *time.Time
	To       *time.Time
	DealerID string
}

// InventoryFilters bounds inventory-summary reads.
type InventoryFilters struct {
	DealerID  string
	VehicleID string
}

// SalesSummaryList is one cursor page of sales summaries.
type SalesSummaryList struct {
	Items      []models.SalesSummary
	NextCursor string
}

// InventorySummaryList is one cursor page of inventory summaries.
type InventorySummaryList struct {
	Items      []models.InventorySummary
	NextCursor string
}
