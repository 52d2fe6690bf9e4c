package reports

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
)

// Inventory health classifications.
const (
	InventoryHealthy  = "healthy"
	InventoryWarning  = "warning"
	InventoryCritical = "critical"
)

// Alert levels and recommendations for slow-moving stock.
const (
	AlertWarning  = "warning"
	AlertCritical = "critical"

	recommendationCritical = "Ngưng sản xuất hoặc giảm giá xả hàng"
	recommendationWarning  = "Theo dõi và xem xét giảm giá"
)

// daysInStockNever marks stock that has not sold at all in the trailing year.
const daysInStockNever = math.MaxInt32

// defaultSlowMovingAgeDays is the stock age past which a vehicle is slow-moving.
const defaultSlowMovingAgeDays = 90

// GetInventoryAnalysis computes per-vehicle turnover from the trailing
// 12 months of orders and flags stock aging past 90 days.
func (s *Service) GetInventoryAnalysis(ctx context.Context) (*InventoryAnalysis, error) {
	now := s.now().UTC()
	from := now.AddDate(0, -12, 0)

	var (
		vehicles []remote.VehicleInventory
		orders   []remote.Order
		dealers  []remote.Dealer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vehicles = s.vehicles.GetVehicles(gctx, "")
		return nil
	})
	g.Go(func() error {
		orders = s.sales.GetOrders(gctx, remote.SalesQuery{From: &from, To: &now})
		return nil
	})
	g.Go(func() error {
		dealers = s.vehicles.GetDealers(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	soldByVehicle := make(map[string]int)
	for _, o := range orders {
		soldByVehicle[o.VehicleID] += o.Quantity
	}
	regions := dealerRegions(dealers)

	analysis := &InventoryAnalysis{
		ReportDate:         now,
		InventoryTurnover:  []InventoryTurnoverEntry{},
		SlowMovingInventory: []SlowMovingEntry{},
	}
	for _, v := range vehicles {
		monthlySales := float64(soldByVehicle[v.ID]) / 12.0

		turnover := 0.0
		if v.StockQuantity > 0 {
			turnover = monthlySales * 12 / float64(v.StockQuantity)
		}
		daysInStock := daysInStockNever
		if monthlySales > 0 {
			daysInStock = int(float64(v.StockQuantity) / monthlySales * 30)
		}

		region, ok := regions[v.DealerID]
		if !ok || region == "" {
			region = "Unknown"
		}

		analysis.InventoryTurnover = append(analysis.InventoryTurnover, InventoryTurnoverEntry{
			VehicleID:           v.ID,
			VehicleName:         v.Model,
			DealerID:            v.DealerID,
			DealerName:          v.DealerName,
			Region:              region,
			CurrentStock:        v.StockQuantity,
			AverageMonthlySales: int(math.Round(monthlySales)),
			TurnoverRate:        math.Round(turnover*100) / 100,
			DaysInStock:         daysInStock,
			Status:              inventoryStatus(turnover, daysInStock),
		})
	}
	sort.Slice(analysis.InventoryTurnover, func(i, j int) bool {
		return analysis.InventoryTurnover[i].DaysInStock > analysis.InventoryTurnover[j].DaysInStock
	})

	slowAge := s.cfg.SlowMovingAgeDays
	if slowAge <= 0 {
		slowAge = defaultSlowMovingAgeDays
	}
	for _, entry := range analysis.InventoryTurnover {
		if entry.DaysInStock <= slowAge {
			continue
		}
		slow := SlowMovingEntry{
			VehicleID:      entry.VehicleID,
			VehicleName:    entry.VehicleName,
			DealerID:       entry.DealerID,
			DealerName:     entry.DealerName,
			Region:         entry.Region,
			StockCount:     entry.CurrentStock,
			DaysInStock:    entry.DaysInStock,
			AlertLevel:     AlertWarning,
			Recommendation: recommendationWarning,
		}
		if entry.DaysInStock > 180 {
			slow.AlertLevel = AlertCritical
			slow.Recommendation = recommendationCritical
		}
		// FirstStockDate is an approximation; the never-sold sentinel has
		// no meaningful start date.
		if entry.DaysInStock != daysInStockNever {
			first := now.AddDate(0, 0, -entry.DaysInStock)
			slow.FirstStockDate = &first
		}
		analysis.SlowMovingInventory = append(analysis.SlowMovingInventory, slow)
	}

	return analysis, nil
}

func inventoryStatus(turnoverRate float64, daysInStock int) string {
	if turnoverRate >= 6 || daysInStock <= 60 {
		return InventoryHealthy
	}
	if turnoverRate >= 3 || daysInStock <= 120 {
		return InventoryWarning
	}
	return InventoryCritical
}
