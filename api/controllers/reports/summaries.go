package reports

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DangTDuy/ev-dealer-management-sub001/api/responses"
	"github.com/DangTDuy/ev-dealer-management-sub001/api/validators"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	pkgerrors "github.com/DangTDuy/ev-dealer-management-sub001/pkg/errors"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/pagination"
)

// SummaryRepository is the read surface for persisted summary rows.
type SummaryRepository interface {
	ListSalesSummaries(ctx context.Context, params pagination.Params, filters summary.SalesFilters) (*summary.SalesSummaryList, error)
	FindSalesSummaryByID(ctx context.Context, id uuid.UUID) (*models.SalesSummary, error)
	ListInventorySummaries(ctx context.Context, params pagination.Params, filters summary.InventoryFilters) (*summary.InventorySummaryList, error)
	FindInventorySummaryByID(ctx context.Context, id uuid.UUID) (*models.InventorySummary, error)
}

type listEnvelope struct {
	Items      any    `json:"items"`
	Count      int    `json:"count"`
	NextCursor string `json:"nextCursor,omitempty"`
}

func listParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}, nil
}

// ListSalesSummaries handles GET /api/reports/sales-summary.
func ListSalesSummaries(repo SummaryRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := repo.ListSalesSummaries(r.Context(), params, summary.SalesFilters{
			From:     from,
			To:       to,
			DealerID: r.URL.Query().Get("dealerId"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listEnvelope{Items: list.Items, Count: len(list.Items), NextCursor: list.NextCursor})
	}
}

// GetSalesSummary handles GET /api/reports/sales-summary/{id}.
func GetSalesSummary(repo SummaryRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := repo.FindSalesSummaryByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.New(pkgerrors.CodeNotFound, "sales summary not found")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// ListInventorySummaries handles GET /api/reports/inventory-summary.
func ListInventorySummaries(repo SummaryRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := repo.ListInventorySummaries(r.Context(), params, summary.InventoryFilters{
			DealerID:  r.URL.Query().Get("dealerId"),
			VehicleID: r.URL.Query().Get("vehicleId"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listEnvelope{Items: list.Items, Count: len(list.Items), NextCursor: list.NextCursor})
	}
}

// GetInventorySummary handles GET /api/reports/inventory-summary/{id}.
func GetInventorySummary(repo SummaryRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := repo.FindInventorySummaryByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = pkgerrors.New(pkgerrors.CodeNotFound, "inventory summary not found")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
