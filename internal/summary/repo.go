package summary

import (
	"context"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a summary repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ReplaceSalesSummaries(ctx context.Context, rows []models.SalesSummary) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SalesSummary{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) ReplaceInventorySummaries(ctx context.Context, rows []models.InventorySummary) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.InventorySummary{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) ReplaceDebtSummaries(ctx context.Context, rows []models.DebtSummary) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.DebtSummary{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) SalesSummariesInRange(ctx context.Context, filters SalesFilters) ([]models.SalesSummary, error) {
	var rows []models.SalesSummary
	err := applySalesFilters(r.db.WithContext(ctx), filters).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) DistinctDealerCount(ctx context.Context, from, to *time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SalesSummary{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	err := query.Distinct("dealer_id").Count(&count).Error
	return count, err
}

func (r *repository) ListSalesSummaries(ctx context.Context, params pagination.Params, filters SalesFilters) (*SalesSummaryList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	query := applySalesFilters(r.db.WithContext(ctx), filters)
	if cursor != nil {
		query = query.Where(
			"(last_updated_at < ?) OR (last_updated_at = ? AND id < ?)",
			cursor.UpdatedAt, cursor.UpdatedAt, cursor.ID,
		)
	}

	var rows []models.SalesSummary
	err = query.
		Order("last_updated_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &SalesSummaryList{Items: rows}
	if len(rows) > limit {
		last := rows[limit-1]
		list.Items = rows[:limit]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			UpdatedAt: last.LastUpdatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) FindSalesSummaryByID(ctx context.Context, id uuid.UUID) (*models.SalesSummary, error) {
	var row models.SalesSummary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListInventorySummaries(ctx context.Context, params pagination.Params, filters InventoryFilters) (*InventorySummaryList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.InventorySummary{})
	if filters.DealerID != "" {
		query = query.Where("dealer_id = ?", filters.DealerID)
	}
	if filters.VehicleID != "" {
		query = query.Where("vehicle_id = ?", filters.VehicleID)
	}
	if cursor != nil {
		query = query.Where(
			"(last_updated_at < ?) OR (last_updated_at = ? AND id < ?)",
			cursor.UpdatedAt, cursor.UpdatedAt, cursor.ID,
		)
	}

	var rows []models.InventorySummary
	err = query.
		Order("last_updated_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &InventorySummaryList{Items: rows}
	if len(rows) > limit {
		last := rows[limit-1]
		list.Items = rows[:limit]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			UpdatedAt: last.LastUpdatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) FindInventorySummaryByID(ctx context.Context, id uuid.UUID) (*models.InventorySummary, error) {
	var row models.InventorySummary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) DebtSummariesByType(ctx context.Context, debtType models.DebtType) ([]models.DebtSummary, error) {
	var rows []models.DebtSummary
	err := r.db.WithContext(ctx).
		Where("debt_type = ?", debtType).
		Order("due_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func applySalesFilters(query *gorm.DB, filters SalesFilters) *gorm.DB {
	query = query.Model(&models.SalesSummary{})
	if filters.From != nil {
		query = query.Where("date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("date <= ?", *filters.To)
	}
	if filters.DealerID != "" {
		query = query.Where("dealer_id = ?", filters.DealerID)
	}
	return query
}
