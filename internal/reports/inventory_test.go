package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
)

func TestInventoryAnalysisEmptyVehicles(t *testing.T) {
	f := newReportService(t)

	analysis, err := f.svc.GetInventoryAnalysis(context.Background())
	require.NoError(t, err)
	require.Empty(t, analysis.InventoryTurnover)
	require.Empty(t, analysis.SlowMovingInventory)
}

func TestInventoryAnalysisTurnover(t *testing.T) {
	f := newReportService(t)
	f.vehicles.dealers = []remote.Dealer{{ID: "7", Name: "Hanoi EV", Region: "Miền Bắc"}}
	f.vehicles.vehicles = []remote.VehicleInventory{
		{ID: "fast", Model: "VF 8", DealerID: "7", DealerName: "Hanoi EV", StockQuantity: 10},
		{ID: "idle", Model: "VF 9", DealerID: "99", DealerName: "Ghost EV", StockQuantity: 5},
	}
	fast := testOrder("1", "7", f.svc.now().AddDate(0, -2, 0), 120, "120000")
	fast.VehicleID = "fast"
	f.sales.orders = []remote.Order{fast}

	analysis, err := f.svc.GetInventoryAnalysis(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.InventoryTurnover, 2)

	// Slowest stock sorts first.
	idle := analysis.InventoryTurnover[0]
	require.Equal(t, "idle", idle.VehicleID)
	require.Equal(t, daysInStockNever, idle.DaysInStock)
	require.Equal(t, InventoryCritical, idle.Status)
	require.Equal(t, "Unknown", idle.Region)

	moving := analysis.InventoryTurnover[1]
	require.Equal(t, "fast", moving.VehicleID)
	require.Equal(t, 10, moving.AverageMonthlySales)
	require.InDelta(t, 12.0, moving.TurnoverRate, 1e-9)
	require.Equal(t, 30, moving.DaysInStock)
	require.Equal(t, InventoryHealthy, moving.Status)
	require.Equal(t, "Miền Bắc", moving.Region)

	// Only the never-selling vehicle ages past the slow-moving threshold.
	require.Len(t, analysis.SlowMovingInventory, 1)
	slow := analysis.SlowMovingInventory[0]
	require.Equal(t, "idle", slow.VehicleID)
	require.Equal(t, AlertCritical, slow.AlertLevel)
	require.Equal(t, "Ngưng sản xuất hoặc giảm giá xả hàng", slow.Recommendation)
	require.Nil(t, slow.FirstStockDate)
}

func TestInventoryAnalysisConfiguredSlowMovingAge(t *testing.T) {
	f := newReportService(t)
	f.vehicles.vehicles = []remote.VehicleInventory{
		{ID: "v1", Model: "VF 6", DealerID: "7", StockQuantity: 20},
	}
	// 10 units a month against 20 in stock: 60 days in stock.
	o := testOrder("1", "7", f.svc.now().AddDate(0, -1, 0), 120, "120000")
	f.sales.orders = []remote.Order{o}

	analysis, err := f.svc.GetInventoryAnalysis(context.Background())
	require.NoError(t, err)
	require.Empty(t, analysis.SlowMovingInventory, "60 days is under the default threshold")

	f.svc.cfg.SlowMovingAgeDays = 30
	analysis, err = f.svc.GetInventoryAnalysis(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.SlowMovingInventory, 1)
	require.Equal(t, AlertWarning, analysis.SlowMovingInventory[0].AlertLevel)
}

func TestInventoryAnalysisWarningBand(t *testing.T) {
	f := newReportService(t)
	f.vehicles.vehicles = []remote.VehicleInventory{
		{ID: "v1", Model: "VF 6", DealerID: "7", StockQuantity: 40},
	}
	// 10 units a month against 40 in stock: 120 days in stock, turnover 3.
	o := testOrder("1", "7", f.svc.now().AddDate(0, -1, 0), 120, "120000")
	f.sales.orders = []remote.Order{o}

	analysis, err := f.svc.GetInventoryAnalysis(context.Background())
	require.NoError(t, err)
	require.Len(t, analysis.InventoryTurnover, 1)
	require.Equal(t, 120, analysis.InventoryTurnover[0].DaysInStock)

	require.Len(t, analysis.SlowMovingInventory, 1)
	slow := analysis.SlowMovingInventory[0]
	require.Equal(t, AlertWarning, slow.AlertLevel)
	require.Equal(t, "Theo dõi và xem xét giảm giá", slow.Recommendation)
	require.NotNil(t, slow.FirstStockDate)
}

func TestInventoryStatusBands(t *testing.T) {
	require.Equal(t, InventoryHealthy, inventoryStatus(6.0, 500))
	require.Equal(t, InventoryHealthy, inventoryStatus(0, 60))
	require.Equal(t, InventoryWarning, inventoryStatus(3.0, 500))
	require.Equal(t, InventoryWarning, inventoryStatus(0, 120))
	require.Equal(t, InventoryCritical, inventoryStatus(2.9, 121))
}
