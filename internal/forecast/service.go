package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

const (
	defaultPeriods  = 3
	defaultBoundPct = 0.15

	trendGrowth       = "Growth"
	trendDecline      = "Decline"
	trendStable       = "Stable"
	trendInsufficient = "Not enough data"
)

// SalesReader is the slice of the summary repository the forecaster needs.
type SalesReader interface {
	SalesSummariesInRange(ctx context.Context, filters summary.SalesFilters) ([]models.SalesSummary, error)
}

// ForecastPoint is one forecasted future month.
type ForecastPoint struct {
	Period               string  `json:"period"`
	ForecastedValue      float64 `json:"forecastedValue"`
	ConfidenceLowerBound float64 `json:"confidenceLowerBound"`
	ConfidenceUpperBound float64 `json:"confidenceUpperBound"`
}

// ForecastSummary condenses the fitted trend.
type ForecastSummary struct {
	NextPeriodForecast float64 `json:"nextPeriodForecast"`
	TrendDirection     string  `json:"trendDirection"`
	TrendStrength      float64 `json:"trendStrength"`
}

// DemandForecast is the full forecast response.
type DemandForecast struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	GeneratedAt  time.Time       `json:"generatedAt"`
	ForecastData []ForecastPoint `json:"forecastData"`
	Summary      ForecastSummary `json:"summary"`
}

// ServiceParams configure the forecaster.
type ServiceParams struct {
	Logger *logger.Logger
	Repo   SalesReader
	Config config.ReportsConfig
}

// Service projects future monthly demand by fitting an ordinary least squares
// line through the historical monthly order counts.
type Service struct {
	logg     *logger.Logger
	repo     SalesReader
	boundPct float64

	now func() time.Time
}

// NewService builds a forecaster.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	boundPct := params.Config.ForecastBoundPct
	if boundPct <= 0 {
		boundPct = defaultBoundPct
	}
	return &Service{
		logg:     params.Logger,
		repo:     params.Repo,
		boundPct: boundPct,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// GenerateDemandForecast forecasts order volume for the next periods months.
// With fewer than two historical months, or a degenerate regression, the
// forecast is empty and the summary flags the shortage.
func (s *Service) GenerateDemandForecast(ctx context.Context, from, to *time.Time, periods int) (*DemandForecast, error) {
	if periods <= 0 {
		periods = defaultPeriods
	}

	monthly, err := s.monthlyOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	forecast := &DemandForecast{
		Title:       "Dự báo nhu cầu bán hàng",
		Description: fmt.Sprintf("Dự báo cho %d tháng tới dựa trên dữ liệu bán hàng lịch sử.", periods),
		GeneratedAt: s.now(),
		Summary: ForecastSummary{
			TrendDirection: trendInsufficient,
		},
	}
	if len(monthly) < 2 {
		return forecast, nil
	}

	first := monthly[0].month
	xs := make([]float64, len(monthly))
	ys := make([]float64, len(monthly))
	for i, point := range monthly {
		xs[i] = float64(monthsBetween(first, point.month))
		ys[i] = point.orders
	}

	slope, intercept, ok := linearRegression(xs, ys)
	if !ok {
		return forecast, nil
	}

	last := monthly[len(monthly)-1].month
	points := make([]ForecastPoint, 0, periods)
	for i := 1; i <= periods; i++ {
		next := last.AddDate(0, i, 0)
		x := float64(monthsBetween(first, next))
		value := slope*x + intercept
		points = append(points, ForecastPoint{
			Period:               next.Format("2006-01"),
			ForecastedValue:      math.Max(0, math.Round(value)),
			ConfidenceLowerBound: math.Max(0, math.Round(value*(1-s.boundPct))),
			ConfidenceUpperBound: math.Round(value * (1 + s.boundPct)),
		})
	}

	forecast.ForecastData = points
	forecast.Summary = ForecastSummary{
		NextPeriodForecast: points[0].ForecastedValue,
		TrendDirection:     trendFromSlope(slope),
		TrendStrength:      math.Round(slope*100) / 100,
	}
	return forecast, nil
}

type monthlyPoint struct {
	month  time.Time
	orders float64
}

func (s *Service) monthlyOrders(ctx context.Context, from, to *time.Time) ([]monthlyPoint, error) {
	rows, err := s.repo.SalesSummariesInRange(ctx, summary.SalesFilters{From: from, To: to})
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Time]float64)
	for _, row := range rows {
		month := time.Date(row.Date.Year(), row.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += float64(row.TotalOrders)
	}

	points := make([]monthlyPoint, 0, len(totals))
	for month, orders := range totals {
		points = append(points, monthlyPoint{month: month, orders: orders})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].month.Before(points[j].month) })
	return points, nil
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

func trendFromSlope(slope float64) string {
	switch {
	case slope > 5:
		return trendGrowth
	case slope < -5:
		return trendDecline
	default:
		return trendStable
	}
}
