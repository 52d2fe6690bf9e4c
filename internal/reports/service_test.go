package reports

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

type fakeSales struct {
	orders    []remote.Order
	quotes    []remote.Quote
	contracts []remote.Contract
	payments  []remote.Payment
}

func (f *fakeSales) GetOrders(context.Context, remote.SalesQuery) []remote.Order { return f.orders }
func (f *fakeSales) GetQuotes(context.Context, remote.SalesQuery) []remote.Quote { return f.quotes }
func (f *fakeSales) GetContracts(context.Context, remote.SalesQuery) []remote.Contract {
	return f.contracts
}
func (f *fakeSales) GetPayments(context.Context, remote.SalesQuery) []remote.Payment {
	return f.payments
}

type fakeVehicles struct {
	vehicles []remote.VehicleInventory
	dealers  []remote.Dealer
}

func (f *fakeVehicles) GetVehicles(context.Context, string) []remote.VehicleInventory {
	return f.vehicles
}
func (f *fakeVehicles) GetDealers(context.Context) []remote.Dealer { return f.dealers }

type fakeCustomers struct {
	customers []remote.Customer
}

func (f *fakeCustomers) GetCustomers(context.Context, string) []remote.Customer {
	return f.customers
}

type fakeUsers struct {
	users []remote.User
}

func (f *fakeUsers) GetUsers(context.Context) []remote.User { return f.users }

type fakeSummaryReader struct {
	rows    []models.SalesSummary
	dealers int64
	err     error
}

func (f *fakeSummaryReader) SalesSummariesInRange(context.Context, summary.SalesFilters) ([]models.SalesSummary, error) {
	return f.rows, f.err
}

func (f *fakeSummaryReader) DistinctDealerCount(context.Context, *time.Time, *time.Time) (int64, error) {
	return f.dealers, f.err
}

type serviceFixture struct {
	sales     *fakeSales
	vehicles  *fakeVehicles
	customers *fakeCustomers
	users     *fakeUsers
	repo      *fakeSummaryReader
	svc       *Service
}

func newReportService(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		sales:     &fakeSales{},
		vehicles:  &fakeVehicles{},
		customers: &fakeCustomers{},
		users:     &fakeUsers{},
		repo:      &fakeSummaryReader{},
	}
	svc, err := NewService(ServiceParams{
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Repo:      f.repo,
		Sales:     f.sales,
		Vehicles:  f.vehicles,
		Customers: f.customers,
		Users:     f.users,
		Config: config.ReportsConfig{
			InstallmentRatePct: 12,
			InstallmentMonths:  12,
		},
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func testOrder(id string, dealerID string, createdAt time.Time, quantity int, totalPrice string) remote.Order {
	return remote.Order{
		OrderID:     id,
		OrderNumber: "ORD-" + id,
		DealerID:    dealerID,
		VehicleID:   "v1",
		Quantity:    quantity,
		TotalPrice:  decimal.RequireFromString(totalPrice),
		Status:      "Confirmed",
		CreatedAt:   createdAt,
	}
}

func summaryRow(region, dealerID, dealerName string, orders int, revenue string) models.SalesSummary {
	return models.SalesSummary{
		ID:           uuid.New(),
		Date:         time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		DealerID:     dealerID,
		DealerName:   dealerName,
		Region:       region,
		TotalOrders:  orders,
		TotalRevenue: decimal.RequireFromString(revenue),
	}
}
