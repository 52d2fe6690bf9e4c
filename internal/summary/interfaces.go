package summary

import (
	"context"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the summary tables. Writes
// are wholesale replacements: each sync run clears a table and reinserts it.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ReplaceSalesSummaries(ctx context.Context, rows []models.SalesSummary) error
	ReplaceInventorySummaries(ctx context.Context, rows []models.InventorySummary) error
	ReplaceDebtSummaries(ctx context.Context, rows []models.DebtSummary) error

	SalesSummariesInRange(ctx context.Context, filters SalesFilters) ([]models.SalesSummary, error)
	DistinctDealerCount(ctx context.Context, from, to *time.Time) (int64, error)

	ListSalesSummaries(ctx context.Context, params pagination.Params, filters SalesFilters) (*SalesSummaryList, error)
	FindSalesSummaryByID(ctx context.Context, id uuid.UUID) (*models.SalesSummary, error)
	ListInventorySummaries(ctx context.Context, params pagination.Params, filters InventoryFilters) (*InventorySummaryList, error)
	FindInventorySummaryByID(ctx context.Context, id uuid.UUID) (*models.InventorySummary, error)

	DebtSummariesByType(ctx context.Context, debtType models.DebtType) ([]models.DebtSummary, error)
}
