package sync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

const (
	TableSales     = "sales_summaries"
	TableInventory = "inventory_summaries"
	TableDebt      = "debt_summaries"
)

// ServiceParams configure the synchronizer.
type ServiceParams struct {
	Logger    *logger.Logger
	Repo      summary.Repository
	Tx        TxRunner
	Sales     SalesAPI
	Vehicles  VehicleAPI
	Customers CustomerAPI
	Locks     LockProvider
}

// Service rebuilds the three summary tables from the upstream services. Each
// rebuild truncates its table and reinserts the full aggregate inside one
// transaction; upstream fetch failures degrade to an empty table rather than
// aborting.
type Service struct {
	logg      *logger.Logger
	repo      summary.Repository
	tx        TxRunner
	sales     SalesAPI
	vehicles  VehicleAPI
	customers CustomerAPI
	locks     LockProvider

	now func() time.Time
}

// NewService builds a synchronizer.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Sales == nil || params.Vehicles == nil || params.Customers == nil {
		return nil, fmt.Errorf("all upstream clients required")
	}
	if params.Locks == nil {
		return nil, fmt.Errorf("lock provider required")
	}
	return &Service{
		logg:      params.Logger,
		repo:      params.Repo,
		tx:        params.Tx,
		sales:     params.Sales,
		vehicles:  params.Vehicles,
		customers: params.Customers,
		locks:     params.Locks,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// SyncSales rebuilds sales_summaries: one row per (order date, dealer) with
// summed order counts and revenue. Returns the number of rows written.
func (s *Service) SyncSales(ctx context.Context) (int, error) {
	return s.withTableLock(ctx, TableSales, func(ctx context.Context) (int, error) {
		var (
			orders  []remote.Order
			dealers []remote.Dealer
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			orders = s.sales.GetOrders(gctx, remote.SalesQuery{})
			return nil
		})
		g.Go(func() error {
			dealers = s.vehicles.GetDealers(gctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return 0, err
		}

		rows := buildSalesRows(orders, dealers, s.now())
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).ReplaceSalesSummaries(ctx, rows)
		})
		if err != nil {
			return 0, err
		}
		return len(rows), nil
	})
}

// SyncInventory rebuilds inventory_summaries: one row per (dealer, vehicle).
func (s *Service) SyncInventory(ctx context.Context) (int, error) {
	return s.withTableLock(ctx, TableInventory, func(ctx context.Context) (int, error) {
		var (
			vehicles []remote.VehicleInventory
			dealers  []remote.Dealer
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			vehicles = s.vehicles.GetVehicles(gctx, "")
			return nil
		})
		g.Go(func() error {
			dealers = s.vehicles.GetDealers(gctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return 0, err
		}

		rows := buildInventoryRows(vehicles, dealers, s.now())
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).ReplaceInventorySummaries(ctx, rows)
		})
		if err != nil {
			return 0, err
		}
		return len(rows), nil
	})
}

// SyncDebt rebuilds debt_summaries from unpaid contracts and open installment
// orders.
func (s *Service) SyncDebt(ctx context.Context) (int, error) {
	return s.withTableLock(ctx, TableDebt, func(ctx context.Context) (int, error) {
		var (
			contracts []remote.Contract
			orders    []remote.Order
			payments  []remote.Payment
			customers []remote.Customer
			dealers   []remote.Dealer
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			contracts = s.sales.GetContracts(gctx, remote.SalesQuery{})
			return nil
		})
		g.Go(func() error {
			orders = s.sales.GetOrders(gctx, remote.SalesQuery{})
			return nil
		})
		g.Go(func() error {
			payments = s.sales.GetPayments(gctx, remote.SalesQuery{})
			return nil
		})
		g.Go(func() error {
			customers = s.customers.GetCustomers(gctx, "")
			return nil
		})
		g.Go(func() error {
			dealers = s.vehicles.GetDealers(gctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return 0, err
		}

		rows := buildDebtRows(contracts, orders, payments, customers, dealers, s.now())
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.WithTx(tx).ReplaceDebtSummaries(ctx, rows)
		})
		if err != nil {
			return 0, err
		}
		return len(rows), nil
	})
}

// SyncAll runs the three rebuilds in sequence. A failed rebuild is reported
// but does not stop the others.
func (s *Service) SyncAll(ctx context.Context) error {
	var errs []error
	if _, err := s.SyncSales(ctx); err != nil {
		s.logg.Error(s.logg.WithJob(ctx, "sync-sales"), "sales synchronization failed", err)
		errs = append(errs, fmt.Errorf("sales: %w", err))
	}
	if _, err := s.SyncInventory(ctx); err != nil {
		s.logg.Error(s.logg.WithJob(ctx, "sync-inventory"), "inventory synchronization failed", err)
		errs = append(errs, fmt.Errorf("inventory: %w", err))
	}
	if _, err := s.SyncDebt(ctx); err != nil {
		s.logg.Error(s.logg.WithJob(ctx, "sync-debt"), "debt synchronization failed", err)
		errs = append(errs, fmt.Errorf("debt: %w", err))
	}
	return multierr.Combine(errs...)
}

func (s *Service) withTableLock(ctx context.Context, table string, rebuild func(ctx context.Context) (int, error)) (int, error) {
	lock := s.locks.LockFor(table)
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire %s lock: %w", table, err)
	}
	if !acquired {
		s.logg.Info(s.logg.WithField(ctx, "table", table), "another rebuild holds the table lock; skipping")
		return 0, nil
	}
	defer func() {
		if relErr := lock.Release(ctx); relErr != nil {
			s.logg.Error(ctx, "failed to release table lock", relErr)
		}
	}()

	return rebuild(ctx)
}

func buildSalesRows(orders []remote.Order, dealers []remote.Dealer, now time.Time) []models.SalesSummary {
	dealerNames := make(map[string]string, len(dealers))
	dealerRegions := make(map[string]string, len(dealers))
	for _, d := range dealers {
		dealerNames[d.ID] = d.Name
		region := d.Region
		if region == "" {
			region = "Unknown"
		}
		dealerRegions[d.ID] = region
	}

	type groupKey struct {
		date     time.Time
		dealerID string
	}
	groups := make(map[groupKey]*models.SalesSummary)
	var keys []groupKey

	for _, order := range orders {
		day := order.CreatedAt.UTC().Truncate(24 * time.Hour)
		key := groupKey{date: day, dealerID: order.DealerID}
		row, ok := groups[key]
		if !ok {
			row = &models.SalesSummary{
				ID:              uuid.New(),
				Date:            day,
				DealerID:        order.DealerID,
				DealerName:      nameOrFallback(dealerNames, order.DealerID, "Dealer"),
				Region:          regionOrUnknown(dealerRegions, order.DealerID),
				SalespersonID:   order.SalespersonID,
				SalespersonName: fmt.Sprintf("Salesperson %s", order.SalespersonID),
				LastUpdatedAt:   now,
			}
			groups[key] = row
			keys = append(keys, key)
		}
		row.TotalOrders += order.Quantity
		row.TotalRevenue = row.TotalRevenue.Add(order.TotalPrice)
	}

	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].dealerID < keys[j].dealerID
	})

	rows := make([]models.SalesSummary, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, *groups[key])
	}
	return rows
}

func buildInventoryRows(vehicles []remote.VehicleInventory, dealers []remote.Dealer, now time.Time) []models.InventorySummary {
	dealerRegions := make(map[string]string, len(dealers))
	for _, d := range dealers {
		region := d.Region
		if region == "" {
			region = "Unknown"
		}
		dealerRegions[d.ID] = region
	}

	seen := make(map[string]int)
	rows := make([]models.InventorySummary, 0, len(vehicles))
	for _, vehicle := range vehicles {
		key := vehicle.DealerID + "|" + vehicle.ID
		if idx, ok := seen[key]; ok {
			rows[idx].StockCount = vehicle.StockQuantity
			rows[idx].LastUpdatedAt = now
			continue
		}
		seen[key] = len(rows)
		rows = append(rows, models.InventorySummary{
			ID:            uuid.New(),
			VehicleID:     vehicle.ID,
			VehicleName:   vehicle.Model,
			DealerID:      vehicle.DealerID,
			DealerName:    vehicle.DealerName,
			Region:        regionOrUnknown(dealerRegions, vehicle.DealerID),
			StockCount:    vehicle.StockQuantity,
			LastUpdatedAt: now,
		})
	}
	return rows
}

func buildDebtRows(
	contracts []remote.Contract,
	orders []remote.Order,
	payments []remote.Payment,
	customers []remote.Customer,
	dealers []remote.Dealer,
	now time.Time,
) []models.DebtSummary {
	dealerNames := make(map[string]string, len(dealers))
	for _, d := range dealers {
		dealerNames[d.ID] = d.Name
	}
	customerNames := make(map[string]string, len(customers))
	for _, c := range customers {
		customerNames[c.ID] = c.Name
	}
	paidByOrder := make(map[string]decimal.Decimal)
	for _, p := range payments {
		paidByOrder[p.OrderID] = paidByOrder[p.OrderID].Add(p.Amount)
	}

	var rows []models.DebtSummary

	for _, contract := range contracts {
		if contract.PaymentStatus == "Paid" {
			continue
		}
		if !contract.TotalAmount.IsPositive() {
			continue
		}
		dealerID := contract.DealerID
		rows = append(rows, models.DebtSummary{
			ID:                uuid.New(),
			DealerID:          &dealerID,
			DealerName:        nameOrFallback(dealerNames, contract.DealerID, "Dealer"),
			DebtType:          models.DebtDealerToManufacturer,
			ReferenceType:     "Contract",
			ReferenceID:       contract.ContractID,
			TotalAmount:       contract.TotalAmount,
			OutstandingAmount: contract.TotalAmount,
			Status:            contract.PaymentStatus,
			DueDate:           contract.SignedDate.AddDate(0, 1, 0),
			CreatedAt:         contract.CreatedAt,
			LastUpdatedAt:     now,
		})
	}

	for _, order := range orders {
		if !order.IsInstallment() {
			continue
		}
		outstanding := order.TotalPrice.Sub(paidByOrder[order.OrderID])
		if !outstanding.IsPositive() {
			continue
		}
		termMonths := 1
		if order.LoanTermMonths != nil && *order.LoanTermMonths > 0 {
			termMonths = *order.LoanTermMonths
		}
		dealerID := order.DealerID
		customerID := order.CustomerID
		rows = append(rows, models.DebtSummary{
			ID:                uuid.New(),
			DealerID:          &dealerID,
			DealerName:        nameOrFallback(dealerNames, order.DealerID, "Dealer"),
			CustomerID:        &customerID,
			CustomerName:      nameOrFallback(customerNames, order.CustomerID, "Customer"),
			DebtType:          models.DebtCustomerToDealer,
			ReferenceType:     "Order",
			ReferenceID:       order.OrderID,
			TotalAmount:       order.TotalPrice,
			OutstandingAmount: outstanding,
			Status:            "Outstanding",
			DueDate:           order.CreatedAt.AddDate(0, termMonths, 0),
			CreatedAt:         order.CreatedAt,
			LastUpdatedAt:     now,
		})
	}

	return rows
}

func nameOrFallback(names map[string]string, id, kind string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("%s %s", kind, id)
}

func regionOrUnknown(regions map[string]string, id string) string {
	if region, ok := regions[id]; ok && region != "" {
		return region
	}
	return "Unknown"
}
