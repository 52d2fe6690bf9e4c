package sync

import (
	"context"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"gorm.io/gorm"
)

// SalesAPI is the slice of the sales client the synchronizer needs.
type SalesAPI interface {
	GetOrders(ctx context.Context, q remote.SalesQuery) []remote.Order
	GetContracts(ctx context.Context, q remote.SalesQuery) []remote.Contract
	GetPayments(ctx context.Context, q remote.SalesQuery) []remote.Payment
}

// VehicleAPI is the slice of the vehicle client the synchronizer needs.
type VehicleAPI interface {
	GetVehicles(ctx context.Context, dealerID string) []remote.VehicleInventory
	GetDealers(ctx context.Context) []remote.Dealer
}

// CustomerAPI is the slice of the customer client the synchronizer needs.
type CustomerAPI interface {
	GetCustomers(ctx context.Context, customerID string) []remote.Customer
}

// TxRunner executes fn inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
