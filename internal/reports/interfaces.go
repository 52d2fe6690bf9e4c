package reports

import (
	"context"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
)

// SalesAPI is the slice of the sales client the report engine reads from.
type SalesAPI interface {
	GetOrders(ctx context.Context, q remote.SalesQuery) []remote.Order
	GetQuotes(ctx context.Context, q remote.SalesQuery) []remote.Quote
	GetContracts(ctx context.Context, q remote.SalesQuery) []remote.Contract
	GetPayments(ctx context.Context, q remote.SalesQuery) []remote.Payment
}

// VehicleAPI resolves vehicles and dealer metadata.
type VehicleAPI interface {
	GetVehicles(ctx context.Context, dealerID string) []remote.VehicleInventory
	GetDealers(ctx context.Context) []remote.Dealer
}

// CustomerAPI resolves customer names for debt ledgers.
type CustomerAPI interface {
	GetCustomers(ctx context.Context, customerID string) []remote.Customer
}

// UserAPI resolves salesperson names for staff reports.
type UserAPI interface {
	GetUsers(ctx context.Context) []remote.User
}

// SummaryReader is the slice of the summary repository the report engine
// needs. Reports never write summary tables.
type SummaryReader interface {
	SalesSummariesInRange(ctx context.Context, filters summary.SalesFilters) ([]models.SalesSummary, error)
	DistinctDealerCount(ctx context.Context, from, to *time.Time) (int64, error)
}
