package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
)

// GetStaffSalesReport joins quotes, orders, and contracts by salesperson and
// computes each salesperson's quote-to-deal conversion over the range.
func (s *Service) GetStaffSalesReport(ctx context.Context, from, to *time.Time) (*StaffSalesReport, error) {
	q := remote.SalesQuery{From: from, To: to}

	var (
		quotes    []remote.Quote
		orders    []remote.Order
		contracts []remote.Contract
		users     []remote.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		quotes = s.sales.GetQuotes(gctx, q)
		return nil
	})
	g.Go(func() error {
		orders = s.sales.GetOrders(gctx, q)
		return nil
	})
	g.Go(func() error {
		contracts = s.sales.GetContracts(gctx, q)
		return nil
	})
	g.Go(func() error {
		users = s.users.GetUsers(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	entries := make(map[string]*StaffPerformanceEntry)
	entryFor := func(salespersonID string) *StaffPerformanceEntry {
		entry, ok := entries[salespersonID]
		if !ok {
			name, found := names[salespersonID]
			if !found || name == "" {
				name = fmt.Sprintf("Nhân viên %s", salespersonID)
			}
			entry = &StaffPerformanceEntry{
				SalespersonID:   salespersonID,
				SalespersonName: name,
				TotalRevenue:    decimal.Zero,
			}
			entries[salespersonID] = entry
		}
		return entry
	}

	for _, quote := range quotes {
		entryFor(quote.SalespersonID).TotalQuotes++
	}
	for _, o := range orders {
		entry := entryFor(o.SalespersonID)
		entry.TotalOrders++
		entry.TotalRevenue = entry.TotalRevenue.Add(o.TotalPrice)
	}
	for _, c := range contracts {
		entryFor(c.SalespersonID).TotalContracts++
	}

	report := &StaffSalesReport{
		ReportDate: s.now().UTC(),
		FromDate:   from,
		ToDate:     to,
		Staff:      []StaffPerformanceEntry{},
	}
	for _, entry := range entries {
		entry.SuccessfulDeals = entry.TotalOrders
		entry.ConversionRate = conversionRate(entry.TotalQuotes, entry.SuccessfulDeals)
		report.Staff = append(report.Staff, *entry)
	}
	sort.Slice(report.Staff, func(i, j int) bool {
		return report.Staff[i].TotalRevenue.GreaterThan(report.Staff[j].TotalRevenue)
	})
	return report, nil
}
