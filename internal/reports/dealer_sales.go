package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	pkgerrors "github.com/DangTDuy/ev-dealer-management-sub001/pkg/errors"
)

// Period granularities accepted by the dealer sales report.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// GetDealerSalesReport groups a dealer's orders into day/month/year buckets
// over the optional date range and returns the buckets plus ungrouped totals.
func (s *Service) GetDealerSalesReport(ctx context.Context, dealerID, period string, from, to *time.Time) (*DealerSalesReport, error) {
	period = strings.ToLower(period)
	switch period {
	case PeriodDay, PeriodMonth, PeriodYear:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "period must be day, month, or year")
	}

	orders := s.sales.GetOrders(ctx, remote.SalesQuery{From: from, To: to, DealerID: dealerID})

	report := &DealerSalesReport{
		DealerID:      dealerID,
		DealerName:    s.dealerName(ctx, dealerID),
		Period:        period,
		FromDate:      from,
		ToDate:        to,
		TotalRevenue:  decimal.Zero,
		SalesByPeriod: bucketOrders(orders, period),
	}
	for _, o := range orders {
		report.TotalVehiclesSold += o.Quantity
		report.TotalRevenue = report.TotalRevenue.Add(o.TotalPrice)
	}
	return report, nil
}

func bucketOrders(orders []remote.Order, period string) []SalesByPeriod {
	byStart := make(map[time.Time]*SalesByPeriod)
	for _, o := range orders {
		start, label := periodBucket(o.CreatedAt, period)
		bucket, ok := byStart[start]
		if !ok {
			bucket = &SalesByPeriod{PeriodLabel: label, PeriodDate: start, Revenue: decimal.Zero}
			byStart[start] = bucket
		}
		bucket.VehiclesSold += o.Quantity
		bucket.Revenue = bucket.Revenue.Add(o.TotalPrice)
	}

	buckets := make([]SalesByPeriod, 0, len(byStart))
	for _, b := range byStart {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].PeriodDate.Before(buckets[j].PeriodDate) })
	return buckets
}

// periodBucket truncates t to the start of its period in UTC.
func periodBucket(t time.Time, period string) (time.Time, string) {
	t = t.UTC()
	switch period {
	case PeriodMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.Format("2006-01")
	case PeriodYear:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.Format("2006")
	default:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return start, start.Format("2006-01-02")
	}
}
