package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
)

// Heat levels for the dealer revenue heatmap.
const (
	HeatHigh   = "high"
	HeatMedium = "medium"
	HeatLow    = "low"
)

// GetTotalSalesDashboard rolls the sales summaries up by region and builds a
// dealer-level heatmap. Reads only the local summary table; an in-flight sync
// can surface as an empty dashboard.
func (s *Service) GetTotalSalesDashboard(ctx context.Context, from, to *time.Time) (*TotalSalesDashboard, error) {
	rows, err := s.repo.SalesSummariesInRange(ctx, summary.SalesFilters{From: from, To: to})
	if err != nil {
		return nil, err
	}

	type regionAgg struct {
		vehicles int
		revenue  decimal.Decimal
		dealers  map[string]struct{}
	}
	type dealerAgg struct {
		region   string
		name     string
		vehicles int
		revenue  decimal.Decimal
	}

	regions := make(map[string]*regionAgg)
	dealers := make(map[string]*dealerAgg)
	totalRevenue := decimal.Zero
	for _, row := range rows {
		r, ok := regions[row.Region]
		if !ok {
			r = &regionAgg{revenue: decimal.Zero, dealers: make(map[string]struct{})}
			regions[row.Region] = r
		}
		r.vehicles += row.TotalOrders
		r.revenue = r.revenue.Add(row.TotalRevenue)
		r.dealers[row.DealerID] = struct{}{}

		d, ok := dealers[row.DealerID]
		if !ok {
			d = &dealerAgg{region: row.Region, name: row.DealerName, revenue: decimal.Zero}
			dealers[row.DealerID] = d
		}
		d.vehicles += row.TotalOrders
		d.revenue = d.revenue.Add(row.TotalRevenue)

		totalRevenue = totalRevenue.Add(row.TotalRevenue)
	}

	dashboard := &TotalSalesDashboard{
		ReportDate:   s.now().UTC(),
		FromDate:     from,
		ToDate:       to,
		TotalRevenue: totalRevenue,
	}
	totalF, _ := totalRevenue.Float64()
	for region, agg := range regions {
		dashboard.TotalVehiclesSold += agg.vehicles
		dashboard.SalesByRegion = append(dashboard.SalesByRegion, SalesByRegion{
			Region:            region,
			VehiclesSold:      agg.vehicles,
			Revenue:           agg.revenue,
			DealerCount:       len(agg.dealers),
			RevenuePercentage: revenueShare(agg.revenue, totalF),
		})
	}
	sort.Slice(dashboard.SalesByRegion, func(i, j int) bool {
		return dashboard.SalesByRegion[i].Revenue.GreaterThan(dashboard.SalesByRegion[j].Revenue)
	})

	for dealerID, agg := range dealers {
		dashboard.HeatmapData = append(dashboard.HeatmapData, HeatmapEntry{
			Region:       agg.region,
			DealerID:     dealerID,
			DealerName:   agg.name,
			VehiclesSold: agg.vehicles,
			Revenue:      agg.revenue,
			HeatLevel:    heatLevel(agg.revenue, totalF),
		})
	}
	sort.Slice(dashboard.HeatmapData, func(i, j int) bool {
		return dashboard.HeatmapData[i].Revenue.GreaterThan(dashboard.HeatmapData[j].Revenue)
	})

	return dashboard, nil
}

// GetSalesProportion returns just the regional share buckets of the dashboard.
func (s *Service) GetSalesProportion(ctx context.Context, from, to *time.Time) ([]SalesByRegion, error) {
	dashboard, err := s.GetTotalSalesDashboard(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if dashboard.SalesByRegion == nil {
		return []SalesByRegion{}, nil
	}
	return dashboard.SalesByRegion, nil
}

// GetSummary computes the dashboard headline card: summary-table totals plus
// a live quote-to-order conversion rate.
func (s *Service) GetSummary(ctx context.Context, reportType string, from, to *time.Time) (*ReportSummary, error) {
	if reportType == "" {
		reportType = "sales"
	}

	var (
		orders []remote.Order
		quotes []remote.Quote
	)
	summaries, err := s.repo.SalesSummariesInRange(ctx, summary.SalesFilters{From: from, To: to})
	if err != nil {
		return nil, err
	}
	activeDealers, err := s.repo.DistinctDealerCount(ctx, from, to)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders = s.sales.GetOrders(gctx, remote.SalesQuery{From: from, To: to})
		return nil
	})
	g.Go(func() error {
		quotes = s.sales.GetQuotes(gctx, remote.SalesQuery{From: from, To: to})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := SummaryMetrics{TotalRevenue: decimal.Zero, ActiveDealers: activeDealers}
	for _, row := range summaries {
		metrics.TotalSales += row.TotalOrders
		metrics.TotalRevenue = metrics.TotalRevenue.Add(row.TotalRevenue)
	}
	metrics.ConversionRate = conversionRate(len(quotes), len(orders))

	return &ReportSummary{Type: reportType, FromDate: from, ToDate: to, Metrics: metrics}, nil
}

// GetTopVehicles ranks models by revenue over the trailing 12 months.
func (s *Service) GetTopVehicles(ctx context.Context, limit int) ([]TopVehicleEntry, error) {
	now := s.now().UTC()
	from := now.AddDate(0, -12, 0)

	var (
		orders   []remote.Order
		vehicles []remote.VehicleInventory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders = s.sales.GetOrders(gctx, remote.SalesQuery{From: &from, To: &now})
		return nil
	})
	g.Go(func() error {
		vehicles = s.vehicles.GetVehicles(gctx, "")
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	models := make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		models[v.ID] = v.Model
	}

	byVehicle := make(map[string]*TopVehicleEntry)
	for _, o := range orders {
		entry, ok := byVehicle[o.VehicleID]
		if !ok {
			model, found := models[o.VehicleID]
			if !found || model == "" {
				model = fmt.Sprintf("Vehicle %s", o.VehicleID)
			}
			entry = &TopVehicleEntry{VehicleID: o.VehicleID, Model: model, Revenue: decimal.Zero}
			byVehicle[o.VehicleID] = entry
		}
		entry.Sales += o.Quantity
		entry.Revenue = entry.Revenue.Add(o.TotalPrice)
	}

	ranked := make([]TopVehicleEntry, 0, len(byVehicle))
	for _, entry := range byVehicle {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Revenue.GreaterThan(ranked[j].Revenue) })

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func revenueShare(revenue decimal.Decimal, totalRevenue float64) float64 {
	if totalRevenue == 0 {
		return 0
	}
	r, _ := revenue.Float64()
	return r / totalRevenue * 100
}

func heatLevel(revenue decimal.Decimal, totalRevenue float64) string {
	share := revenueShare(revenue, totalRevenue)
	switch {
	case share >= 20:
		return HeatHigh
	case share >= 10:
		return HeatMedium
	default:
		return HeatLow
	}
}

// conversionRate guards the zero-quote cases: deals without quotes count as
// fully converted, nothing at all counts as zero.
func conversionRate(quotes, deals int) float64 {
	if quotes == 0 {
		if deals > 0 {
			return 1.0
		}
		return 0
	}
	return float64(deals) / float64(quotes)
}
