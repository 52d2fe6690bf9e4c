package reports

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DangTDuy/ev-dealer-management-sub001/api/responses"
	"github.com/DangTDuy/ev-dealer-management-sub001/api/validators"
	exportsvc "github.com/DangTDuy/ev-dealer-management-sub001/internal/export"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/forecast"
	reportsvc "github.com/DangTDuy/ev-dealer-management-sub001/internal/reports"
	pkgerrors "github.com/DangTDuy/ev-dealer-management-sub001/pkg/errors"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// ReportService is the report engine surface the handlers call.
type ReportService interface {
	GetDealerSalesReport(ctx context.Context, dealerID, period string, from, to *time.Time) (*reportsvc.DealerSalesReport, error)
	GetDealerDebtReport(ctx context.Context, dealerID string) (*reportsvc.DealerDebtReport, error)
	GetTotalSalesDashboard(ctx context.Context, from, to *time.Time) (*reportsvc.TotalSalesDashboard, error)
	GetInventoryAnalysis(ctx context.Context) (*reportsvc.InventoryAnalysis, error)
	GetStaffSalesReport(ctx context.Context, from, to *time.Time) (*reportsvc.StaffSalesReport, error)
	GetSummary(ctx context.Context, reportType string, from, to *time.Time) (*reportsvc.ReportSummary, error)
	GetSalesProportion(ctx context.Context, from, to *time.Time) ([]reportsvc.SalesByRegion, error)
	GetTopVehicles(ctx context.Context, limit int) ([]reportsvc.TopVehicleEntry, error)
}

// ForecastService generates demand forecasts.
type ForecastService interface {
	GenerateDemandForecast(ctx context.Context, from, to *time.Time, periods int) (*forecast.DemandForecast, error)
}

// ExportService renders report exports.
type ExportService interface {
	Generate(ctx context.Context, req exportsvc.Request) (*exportsvc.Result, error)
}

// SyncService triggers a full summary rebuild on demand.
type SyncService interface {
	SyncAll(ctx context.Context) error
}

func dateRange(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := validators.ParseQueryTime(r, "fromDate")
	if err != nil {
		return nil, nil, err
	}
	to, err := validators.ParseQueryTime(r, "toDate")
	if err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "toDate must not precede fromDate")
	}
	return from, to, nil
}

// Summary handles GET /api/reports/summary.
func Summary(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.GetSummary(r.Context(), r.URL.Query().Get("type"), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SalesProportion handles GET /api/reports/sales-proportion.
func SalesProportion(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		regions, err := svc.GetSalesProportion(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, regions)
	}
}

// TopVehicles handles GET /api/reports/top-vehicles.
func TopVehicles(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		top, err := svc.GetTopVehicles(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, top)
	}
}

// DealerSales handles GET /api/reports/dealer-sales/{dealerID}.
func DealerSales(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		period := r.URL.Query().Get("period")
		if period == "" {
			period = reportsvc.PeriodMonth
		}
		report, err := svc.GetDealerSalesReport(r.Context(), chi.URLParam(r, "dealerID"), period, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// DealerDebt handles GET /api/reports/dealer-debt/{dealerID}.
func DealerDebt(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.GetDealerDebtReport(r.Context(), chi.URLParam(r, "dealerID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// Dashboard handles GET /api/reports/dashboard.
func Dashboard(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dashboard, err := svc.GetTotalSalesDashboard(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}

// InventoryAnalysis handles GET /api/reports/inventory-analysis.
func InventoryAnalysis(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysis, err := svc.GetInventoryAnalysis(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, analysis)
	}
}

// StaffSales handles GET /api/reports/sales-by-staff.
func StaffSales(svc ReportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		report, err := svc.GetStaffSalesReport(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// DemandForecast handles GET /api/reports/demand-forecast.
func DemandForecast(svc ForecastService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to, err := dateRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		periods, err := validators.ParseQueryInt(r, "periods", 0, 0, 24)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.GenerateDemandForecast(r.Context(), from, to, periods)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TriggerSync handles POST /api/reports/sync.
func TriggerSync(svc SyncService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.SyncAll(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "synchronization failed"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "synchronized"})
	}
}

type exportRequest struct {
	Type     string `json:"type"`
	Format   string `json:"format" validate:"omitempty,oneof=csv xlsx"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	DealerID string `json:"dealerId,omitempty"`
}

// Export handles POST /api/reports/export and streams the rendered file.
func Export(svc ExportService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload exportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseDate(payload.From, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseDate(payload.To, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Generate(r.Context(), exportsvc.Request{
			Type:     payload.Type,
			Format:   payload.Format,
			FromDate: from,
			ToDate:   to,
			DealerID: payload.DealerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteBlob(w, result.ContentType, result.FileName, result.Content)
	}
}
