package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DangTDuy/ev-dealer-management-sub001/api/controllers"
	reportcontrollers "github.com/DangTDuy/ev-dealer-management-sub001/api/controllers/reports"
	"github.com/DangTDuy/ev-dealer-management-sub001/api/middleware"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// RouterParams collects everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Reports  reportcontrollers.ReportService
	Forecast reportcontrollers.ForecastService
	Export   reportcontrollers.ExportService
	Sync     reportcontrollers.SyncService
	Summary  reportcontrollers.SummaryRepository
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, p.Redis))
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/summary", reportcontrollers.Summary(p.Reports, p.Logger))
		r.Get("/sales-proportion", reportcontrollers.SalesProportion(p.Reports, p.Logger))
		r.Get("/top-vehicles", reportcontrollers.TopVehicles(p.Reports, p.Logger))
		r.Get("/dashboard", reportcontrollers.Dashboard(p.Reports, p.Logger))
		r.Get("/inventory-analysis", reportcontrollers.InventoryAnalysis(p.Reports, p.Logger))
		r.Get("/sales-by-staff", reportcontrollers.StaffSales(p.Reports, p.Logger))
		r.Get("/demand-forecast", reportcontrollers.DemandForecast(p.Forecast, p.Logger))

		r.Get("/dealer-sales/{dealerID}", reportcontrollers.DealerSales(p.Reports, p.Logger))
		r.Get("/dealer-debt/{dealerID}", reportcontrollers.DealerDebt(p.Reports, p.Logger))

		r.Get("/sales-summary", reportcontrollers.ListSalesSummaries(p.Summary, p.Logger))
		r.Get("/sales-summary/{id}", reportcontrollers.GetSalesSummary(p.Summary, p.Logger))
		r.Get("/inventory-summary", reportcontrollers.ListInventorySummaries(p.Summary, p.Logger))
		r.Get("/inventory-summary/{id}", reportcontrollers.GetInventorySummary(p.Summary, p.Logger))

		r.Post("/sync", reportcontrollers.TriggerSync(p.Sync, p.Logger))
		r.Post("/export", reportcontrollers.Export(p.Export, p.Logger))
	})

	return r
}
