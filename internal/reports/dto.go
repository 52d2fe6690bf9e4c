package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesByPeriod is one bucket of a dealer sales report.
type SalesByPeriod struct {
	PeriodLabel  string          `json:"periodLabel"`
	PeriodDate   time.Time       `json:"periodDate"`
	VehiclesSold int             `json:"vehiclesSold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DealerSalesReport aggregates one dealer's orders by period granularity.
type DealerSalesReport struct {
	DealerID          string          `json:"dealerId"`
	DealerName        string          `json:"dealerName"`
	Period            string          `json:"period"`
	FromDate          *time.Time      `json:"fromDate,omitempty"`
	ToDate            *time.Time      `json:"toDate,omitempty"`
	TotalVehiclesSold int             `json:"totalVehiclesSold"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	SalesByPeriod     []SalesByPeriod `json:"salesByPeriod"`
}

// DebtToManufacturerEntry is one order's outstanding position toward the
// manufacturer.
type DebtToManufacturerEntry struct {
	OrderID       string          `json:"orderId"`
	OrderNumber   string          `json:"orderNumber"`
	OrderDate     time.Time       `json:"orderDate"`
	OrderAmount   decimal.Decimal `json:"orderAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	RemainingDebt decimal.Decimal `json:"remainingDebt"`
	Status        string          `json:"status"`
}

// DebtFromCustomerEntry is one installment order's outstanding customer balance.
type DebtFromCustomerEntry struct {
	OrderID        string          `json:"orderId"`
	OrderNumber    string          `json:"orderNumber"`
	CustomerID     string          `json:"customerId"`
	CustomerName   string          `json:"customerName"`
	OrderDate      time.Time       `json:"orderDate"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	RemainingDebt  decimal.Decimal `json:"remainingDebt"`
	LoanTermMonths int             `json:"loanTermMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Status         string          `json:"status"`
}

// DealerDebtReport carries the two itemized debt ledgers plus the net total.
type DealerDebtReport struct {
	DealerID                 string                    `json:"dealerId"`
	DealerName               string                    `json:"dealerName"`
	ReportDate               time.Time                 `json:"reportDate"`
	DebtToManufacturer       decimal.Decimal           `json:"debtToManufacturer"`
	DebtToManufacturerDetail []DebtToManufacturerEntry `json:"debtToManufacturerDetails"`
	DebtFromCustomers        decimal.Decimal           `json:"debtFromCustomers"`
	DebtFromCustomerDetail   []DebtFromCustomerEntry   `json:"debtFromCustomerDetails"`
	TotalDebt                decimal.Decimal           `json:"totalDebt"`
}

// SalesByRegion is one region's share of the dashboard roll-up.
type SalesByRegion struct {
	Region            string          `json:"region"`
	VehiclesSold      int             `json:"vehiclesSold"`
	Revenue           decimal.Decimal `json:"revenue"`
	DealerCount       int             `json:"dealerCount"`
	RevenuePercentage float64         `json:"revenuePercentage"`
}

// HeatmapEntry classifies one dealer's revenue contribution.
type HeatmapEntry struct {
	Region       string          `json:"region"`
	DealerID     string          `json:"dealerId"`
	DealerName   string          `json:"dealerName"`
	VehiclesSold int             `json:"vehiclesSold"`
	Revenue      decimal.Decimal `json:"revenue"`
	HeatLevel    string          `json:"heatLevel"`
}

// TotalSalesDashboard is the regional roll-up read by the dashboard client.
type TotalSalesDashboard struct {
	ReportDate        time.Time       `json:"reportDate"`
	FromDate          *time.Time      `json:"fromDate,omitempty"`
	ToDate            *time.Time      `json:"toDate,omitempty"`
	TotalVehiclesSold int             `json:"totalVehiclesSold"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	SalesByRegion     []SalesByRegion `json:"salesByRegion"`
	HeatmapData       []HeatmapEntry  `json:"heatmapData"`
}

// InventoryTurnoverEntry is one vehicle's stock velocity.
type InventoryTurnoverEntry struct {
	VehicleID           string  `json:"vehicleId"`
	VehicleName         string  `json:"vehicleName"`
	DealerID            string  `json:"dealerId"`
	DealerName          string  `json:"dealerName"`
	Region              string  `json:"region"`
	CurrentStock        int     `json:"currentStock"`
	AverageMonthlySales int     `json:"averageMonthlySales"`
	TurnoverRate        float64 `json:"turnoverRate"`
	DaysInStock         int     `json:"daysInStock"`
	Status              string  `json:"status"`
}

// SlowMovingEntry flags a vehicle whose stock is aging out.
type SlowMovingEntry struct {
	VehicleID      string     `json:"vehicleId"`
	VehicleName    string     `json:"vehicleName"`
	DealerID       string     `json:"dealerId"`
	DealerName     string     `json:"dealerName"`
	Region         string     `json:"region"`
	StockCount     int        `json:"stockCount"`
	DaysInStock    int        `json:"daysInStock"`
	FirstStockDate *time.Time `json:"firstStockDate,omitempty"`
	AlertLevel     string     `json:"alertLevel"`
	Recommendation string     `json:"recommendation"`
}

// InventoryAnalysis is the full inventory health report.
type InventoryAnalysis struct {
	ReportDate         time.Time                `json:"reportDate"`
	InventoryTurnover  []InventoryTurnoverEntry `json:"inventoryTurnover"`
	SlowMovingInventory []SlowMovingEntry        `json:"slowMovingInventory"`
}

// StaffPerformanceEntry is one salesperson's funnel over the requested range.
type StaffPerformanceEntry struct {
	SalespersonID   string          `json:"salespersonId"`
	SalespersonName string          `json:"salespersonName"`
	TotalQuotes     int             `json:"totalQuotes"`
	TotalOrders     int             `json:"totalOrders"`
	TotalContracts  int             `json:"totalContracts"`
	SuccessfulDeals int             `json:"successfulDeals"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	ConversionRate  float64         `json:"conversionRate"`
}

// StaffSalesReport groups the staff funnel entries.
type StaffSalesReport struct {
	ReportDate time.Time               `json:"reportDate"`
	FromDate   *time.Time              `json:"fromDate,omitempty"`
	ToDate     *time.Time              `json:"toDate,omitempty"`
	Staff      []StaffPerformanceEntry `json:"staff"`
}

// SummaryMetrics is the compact headline card for the dashboard.
type SummaryMetrics struct {
	TotalSales     int             `json:"totalSales"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	ActiveDealers  int64           `json:"activeDealers"`
	ConversionRate float64         `json:"conversionRate"`
}

// ReportSummary wraps the headline metrics with the requested window.
type ReportSummary struct {
	Type     string         `json:"type"`
	FromDate *time.Time     `json:"from,omitempty"`
	ToDate   *time.Time     `json:"to,omitempty"`
	Metrics  SummaryMetrics `json:"metrics"`
}

// TopVehicleEntry is one model's last-12-month sales position.
type TopVehicleEntry struct {
	VehicleID string          `json:"vehicleId"`
	Model     string          `json:"model"`
	Sales     int             `json:"sales"`
	Revenue   decimal.Decimal `json:"revenue"`
}
