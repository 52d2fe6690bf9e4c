package sync

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/internal/summary"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

type fakeSales struct {
	orders    []remote.Order
	contracts []remote.Contract
	payments  []remote.Payment
}

func (f *fakeSales) GetOrders(context.Context, remote.SalesQuery) []remote.Order {
	return f.orders
}

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

func (f *fakeVehicles) GetDealers(context.Context) []remote.Dealer {
	return f.dealers
}

type fakeCustomers struct {
	customers []remote.Customer
}

func (f *fakeCustomers) GetCustomers(context.Context, string) []remote.Customer {
	return f.customers
}

type fakeLock struct {
	acquired bool
	released int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) { return f.acquired, nil }

func (f *fakeLock) Release(context.Context) error {
	f.released++
	return nil
}

type fakeLockProvider struct {
	lock *fakeLock
}

func (f *fakeLockProvider) LockFor(string) Lock { return f.lock }

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func setupSyncTest(t *testing.T, sales *fakeSales, vehicles *fakeVehicles, customers *fakeCustomers) (*Service, summary.Repository, *fakeLock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sales_summaries (
  id TEXT PRIMARY KEY, date DATETIME NOT NULL, dealer_id TEXT NOT NULL,
  dealer_name TEXT NOT NULL, region TEXT NOT NULL, salesperson_id TEXT,
  salesperson_name TEXT, total_orders INTEGER NOT NULL DEFAULT 0,
  total_revenue TEXT NOT NULL DEFAULT '0', last_updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS inventory_summaries (
  id TEXT PRIMARY KEY, vehicle_id TEXT NOT NULL, vehicle_name TEXT NOT NULL,
  dealer_id TEXT NOT NULL, dealer_name TEXT NOT NULL, region TEXT NOT NULL,
  stock_count INTEGER NOT NULL DEFAULT 0, last_updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS debt_summaries (
  id TEXT PRIMARY KEY, dealer_id TEXT, dealer_name TEXT, customer_id TEXT,
  customer_name TEXT, debt_type TEXT NOT NULL, reference_type TEXT NOT NULL,
  reference_id TEXT NOT NULL, total_amount TEXT NOT NULL,
  outstanding_amount TEXT NOT NULL, status TEXT NOT NULL, due_date DATETIME,
  created_at DATETIME, last_updated_at DATETIME);`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	repo := summary.NewRepository(db)
	lock := &fakeLock{acquired: true}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(ServiceParams{
		Logger:    logg,
		Repo:      repo,
		Tx:        gormTxRunner{db: db},
		Sales:     sales,
		Vehicles:  vehicles,
		Customers: customers,
		Locks:     &fakeLockProvider{lock: lock},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, lock
}

func order(id, dealerID string, qty int, price string, createdAt time.Time) remote.Order {
	return remote.Order{
		OrderID:       id,
		DealerID:      dealerID,
		SalespersonID: "7",
		Quantity:      qty,
		TotalPrice:    decimal.RequireFromString(price),
		CreatedAt:     createdAt,
	}
}

func TestSyncSalesGroupsByDateAndDealer(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	day1Later := time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	sales := &fakeSales{orders: []remote.Order{
		order("1", "1", 2, "1000.00", day1),
		order("2", "1", 1, "500.00", day1Later),
		order("3", "2", 1, "700.00", day1),
		order("4", "1", 3, "1500.00", day2),
	}}
	vehicles := &fakeVehicles{dealers: []remote.Dealer{
		{ID: "1", Name: "Hanoi EV", Region: "North"},
	}}
	svc, repo, lock := setupSyncTest(t, sales, vehicles, &fakeCustomers{})

	rows, err := svc.SyncSales(context.Background())
	if err != nil {
		t.Fatalf("SyncSales: %v", err)
	}
	if rows != 3 {
		t.Fatalf("expected 3 summary rows, got %d", rows)
	}
	if lock.released != 1 {
		t.Fatalf("expected lock released once, got %d", lock.released)
	}

	stored, err := repo.SalesSummariesInRange(context.Background(), summary.SalesFilters{DealerID: "1"})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 rows for dealer 1, got %d", len(stored))
	}
	first := stored[0]
	if first.TotalOrders != 3 {
		t.Fatalf("expected quantities summed to 3, got %d", first.TotalOrders)
	}
	if first.TotalRevenue.StringFixed(2) != "1500.00" {
		t.Fatalf("expected revenue 1500.00, got %s", first.TotalRevenue.StringFixed(2))
	}
	if first.DealerName != "Hanoi EV" || first.Region != "North" {
		t.Fatalf("dealer metadata not resolved: %+v", first)
	}
	if first.SalespersonName != "Salesperson 7" {
		t.Fatalf("unexpected salesperson name %q", first.SalespersonName)
	}
}

func TestSyncSalesDealerFallbacks(t *testing.T) {
	sales := &fakeSales{orders: []remote.Order{
		order("1", "42", 1, "100.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc, repo, _ := setupSyncTest(t, sales, &fakeVehicles{}, &fakeCustomers{})

	if _, err := svc.SyncSales(context.Background()); err != nil {
		t.Fatalf("SyncSales: %v", err)
	}
	stored, err := repo.SalesSummariesInRange(context.Background(), summary.SalesFilters{})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored[0].DealerName != "Dealer 42" {
		t.Fatalf("expected fallback dealer name, got %q", stored[0].DealerName)
	}
	if stored[0].Region != "Unknown" {
		t.Fatalf("expected Unknown region, got %q", stored[0].Region)
	}
}

func TestSyncSalesIdempotentRebuild(t *testing.T) {
	sales := &fakeSales{orders: []remote.Order{
		order("1", "1", 2, "1000.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		order("2", "1", 1, "500.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc, repo, _ := setupSyncTest(t, sales, &fakeVehicles{}, &fakeCustomers{})

	for i := 0; i < 2; i++ {
		if _, err := svc.SyncSales(context.Background()); err != nil {
			t.Fatalf("SyncSales run %d: %v", i, err)
		}
	}

	stored, err := repo.SalesSummariesInRange(context.Background(), summary.SalesFilters{})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("rebuild must not accumulate rows, got %d", len(stored))
	}
	if stored[0].TotalOrders != 3 || stored[0].TotalRevenue.StringFixed(2) != "1500.00" {
		t.Fatalf("unexpected totals after rebuild: %+v", stored[0])
	}
}

func TestSyncSalesEmptyUpstreamLeavesTableEmpty(t *testing.T) {
	sales := &fakeSales{orders: []remote.Order{
		order("1", "1", 2, "1000.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc, repo, _ := setupSyncTest(t, sales, &fakeVehicles{}, &fakeCustomers{})

	if _, err := svc.SyncSales(context.Background()); err != nil {
		t.Fatalf("first sync: %v", err)
	}

	// The upstream fetch now degrades to an empty list, as it does on outage.
	sales.orders = nil
	rows, err := svc.SyncSales(context.Background())
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows, got %d", rows)
	}

	stored, err := repo.SalesSummariesInRange(context.Background(), summary.SalesFilters{})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("table should be empty after degraded sync, got %d rows", len(stored))
	}
}

func TestSyncSkipsWhenLockHeld(t *testing.T) {
	sales := &fakeSales{orders: []remote.Order{
		order("1", "1", 2, "1000.00", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}}
	svc, repo, lock := setupSyncTest(t, sales, &fakeVehicles{}, &fakeCustomers{})
	lock.acquired = false

	rows, err := svc.SyncSales(context.Background())
	if err != nil {
		t.Fatalf("SyncSales: %v", err)
	}
	if rows != 0 {
		t.Fatalf("skipped sync should write nothing, got %d", rows)
	}
	if lock.released != 0 {
		t.Fatalf("skipped sync must not release a lock it never held")
	}

	stored, err := repo.SalesSummariesInRange(context.Background(), summary.SalesFilters{})
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected untouched table, got %d rows", len(stored))
	}
}

func TestSyncInventory(t *testing.T) {
	vehicles := &fakeVehicles{
		vehicles: []remote.VehicleInventory{
			{ID: "v1", Model: "VF8", DealerID: "1", DealerName: "Hanoi EV", StockQuantity: 12},
			{ID: "v2", Model: "VF9", DealerID: "2", DealerName: "Saigon EV", StockQuantity: 5},
		},
		dealers: []remote.Dealer{
			{ID: "1", Name: "Hanoi EV", Region: "North"},
		},
	}
	svc, repo, _ := setupSyncTest(t, &fakeSales{}, vehicles, &fakeCustomers{})

	rows, err := svc.SyncInventory(context.Background())
	if err != nil {
		t.Fatalf("SyncInventory: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected 2 rows, got %d", rows)
	}

	stored, err := repo.DebtSummariesByType(context.Background(), models.DebtDealerToManufacturer)
	if err != nil {
		t.Fatalf("debt read: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("inventory sync must not touch debt table")
	}
}

func TestSyncDebtRows(t *testing.T) {
	term := 12
	signed := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	orderDate := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	sales := &fakeSales{
		contracts: []remote.Contract{
			{ContractID: "c1", DealerID: "1", TotalAmount: decimal.RequireFromString("90000"), PaymentStatus: "Pending", SignedDate: signed},
			{ContractID: "c2", DealerID: "1", TotalAmount: decimal.RequireFromString("40000"), PaymentStatus: "Paid", SignedDate: signed},
		},
		orders: []remote.Order{
			{OrderID: "o1", DealerID: "1", CustomerID: "9", PaymentMethod: remote.PaymentMethodInstallment, TotalPrice: decimal.RequireFromString("1000.00"), LoanTermMonths: &term, CreatedAt: orderDate},
			{OrderID: "o2", DealerID: "1", CustomerID: "9", PaymentMethod: remote.PaymentMethodInstallment, TotalPrice: decimal.RequireFromString("500.00"), CreatedAt: orderDate},
			{OrderID: "o3", DealerID: "1", CustomerID: "9", PaymentMethod: "Cash", TotalPrice: decimal.RequireFromString("800.00"), CreatedAt: orderDate},
		},
		payments: []remote.Payment{
			{PaymentID: "p1", OrderID: "o1", Amount: decimal.RequireFromString("400.00")},
			{PaymentID: "p2", OrderID: "o2", Amount: decimal.RequireFromString("500.00")},
		},
	}
	vehicles := &fakeVehicles{dealers: []remote.Dealer{{ID: "1", Name: "Hanoi EV", Region: "North"}}}
	customers := &fakeCustomers{customers: []remote.Customer{{ID: "9", Name: "Nguyen Van A"}}}
	svc, repo, _ := setupSyncTest(t, sales, vehicles, customers)

	rows, err := svc.SyncDebt(context.Background())
	if err != nil {
		t.Fatalf("SyncDebt: %v", err)
	}
	// c1 unpaid, o1 partially paid; c2 is paid and o2 is fully paid.
	if rows != 2 {
		t.Fatalf("expected 2 debt rows, got %d", rows)
	}

	dealerDebts, err := repo.DebtSummariesByType(context.Background(), models.DebtDealerToManufacturer)
	if err != nil {
		t.Fatalf("read dealer debts: %v", err)
	}
	if len(dealerDebts) != 1 {
		t.Fatalf("expected 1 dealer debt, got %d", len(dealerDebts))
	}
	d := dealerDebts[0]
	if d.OutstandingAmount.StringFixed(2) != "90000.00" {
		t.Fatalf("dealer debt must carry the full contract amount, got %s", d.OutstandingAmount.StringFixed(2))
	}
	if !d.DueDate.Equal(signed.AddDate(0, 1, 0)) {
		t.Fatalf("unexpected contract due date %v", d.DueDate)
	}

	customerDebts, err := repo.DebtSummariesByType(context.Background(), models.DebtCustomerToDealer)
	if err != nil {
		t.Fatalf("read customer debts: %v", err)
	}
	if len(customerDebts) != 1 {
		t.Fatalf("expected 1 customer debt, got %d", len(customerDebts))
	}
	c := customerDebts[0]
	if c.OutstandingAmount.StringFixed(2) != "600.00" {
		t.Fatalf("expected outstanding 600.00, got %s", c.OutstandingAmount.StringFixed(2))
	}
	if c.OutstandingAmount.GreaterThan(c.TotalAmount) || !c.OutstandingAmount.IsPositive() {
		t.Fatalf("outstanding must satisfy 0 < outstanding <= total: %+v", c)
	}
	if c.CustomerName != "Nguyen Van A" {
		t.Fatalf("customer name not resolved: %q", c.CustomerName)
	}
	if !c.DueDate.Equal(orderDate.AddDate(0, term, 0)) {
		t.Fatalf("unexpected installment due date %v", c.DueDate)
	}
}

func TestSyncDebtSkipsNonPositiveContracts(t *testing.T) {
	signed := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	sales := &fakeSales{
		contracts: []remote.Contract{
			{ContractID: "c1", DealerID: "1", TotalAmount: decimal.Zero, PaymentStatus: "Pending", SignedDate: signed},
			{ContractID: "c2", DealerID: "1", TotalAmount: decimal.RequireFromString("-50.00"), PaymentStatus: "Pending", SignedDate: signed},
			{ContractID: "c3", DealerID: "1", TotalAmount: decimal.RequireFromString("100.00"), PaymentStatus: "Pending", SignedDate: signed},
		},
	}
	svc, repo, _ := setupSyncTest(t, sales, &fakeVehicles{}, &fakeCustomers{})

	rows, err := svc.SyncDebt(context.Background())
	if err != nil {
		t.Fatalf("SyncDebt: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected only the positive contract to produce a row, got %d", rows)
	}

	dealerDebts, err := repo.DebtSummariesByType(context.Background(), models.DebtDealerToManufacturer)
	if err != nil {
		t.Fatalf("read dealer debts: %v", err)
	}
	if len(dealerDebts) != 1 || dealerDebts[0].ReferenceID != "c3" {
		t.Fatalf("expected a single row for c3, got %+v", dealerDebts)
	}
	for _, d := range dealerDebts {
		if !d.OutstandingAmount.IsPositive() || d.OutstandingAmount.GreaterThan(d.TotalAmount) {
			t.Fatalf("outstanding must satisfy 0 < outstanding <= total: %+v", d)
		}
	}
}

func TestSyncAllAggregatesSilently(t *testing.T) {
	svc, _, _ := setupSyncTest(t, &fakeSales{}, &fakeVehicles{}, &fakeCustomers{})
	if err := svc.SyncAll(context.Background()); err != nil {
		t.Fatalf("SyncAll with empty upstreams should not fail: %v", err)
	}
}

type failingTxRunner struct{}

func (failingTxRunner) WithTx(context.Context, func(tx *gorm.DB) error) error {
	return fmt.Errorf("tx unavailable")
}

func TestSyncAllCombinesPerTableFailures(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:syncall_failures?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Repo:      summary.NewRepository(db),
		Tx:        failingTxRunner{},
		Sales:     &fakeSales{},
		Vehicles:  &fakeVehicles{},
		Customers: &fakeCustomers{},
		Locks:     &fakeLockProvider{lock: &fakeLock{acquired: true}},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	combined := svc.SyncAll(context.Background())
	if combined == nil {
		t.Fatal("expected SyncAll to report the failed rebuilds")
	}
	if got := len(multierr.Errors(combined)); got != 3 {
		t.Fatalf("expected all three table failures reported, got %d: %v", got, combined)
	}
	for _, want := range []string{"sales:", "inventory:", "debt:"} {
		if !strings.Contains(combined.Error(), want) {
			t.Fatalf("combined error missing %q: %v", want, combined)
		}
	}
}
