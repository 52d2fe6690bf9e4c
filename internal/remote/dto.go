package remote

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a confirmed sale fetched from the sales service.
type Order struct {
	OrderID            string
	OrderNumber        string
	DealerID           string
	SalespersonID      string
	CustomerID         string
	VehicleID          string
	Quantity           int
	SubTotal           decimal.Decimal
	TotalDiscount      decimal.Decimal
	TotalPrice         decimal.Decimal
	PaymentMethod      string
	DepositAmount      *decimal.Decimal
	LoanTermMonths     *int
	InterestRateYearly *decimal.Decimal
	Status             string
	CreatedAt          time.Time
}

// IsInstallment reports whether the order was financed rather than paid upfront.
func (o Order) IsInstallment() bool {
	return o.PaymentMethod == PaymentMethodInstallment || (o.LoanTermMonths != nil && *o.LoanTermMonths > 0)
}

// PaymentMethodInstallment is the upstream marker for financed orders.
const PaymentMethodInstallment = "Trả góp"

// Payment is a recorded payment against an order.
type Payment struct {
	PaymentID     string
	OrderID       string
	Amount        decimal.Decimal
	PaymentMethod string
	Status        string
	PaymentDate   *time.Time
	CreatedAt     time.Time
}

// Contract is a signed purchase contract between dealer and manufacturer.
type Contract struct {
	ContractID     string
	OrderID        string
	CustomerID     string
	DealerID       string
	SalespersonID  string
	ContractNumber string
	SignedDate     time.Time
	TotalAmount    decimal.Decimal
	PaymentStatus  string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Quote is a pre-sale quotation.
type Quote struct {
	QuoteID        string
	DealerID       string
	SalespersonID  string
	CustomerID     string
	VehicleID      string
	Quantity       int
	TotalBasePrice decimal.Decimal
	Status         string
	CreatedAt      time.Time
}

// VehicleInventory is one vehicle's stock position at a dealer.
type VehicleInventory struct {
	ID            string
	Model         string
	DealerID      string
	DealerName    string
	StockQuantity int
	Price         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Dealer is a dealership record from the vehicle service.
type Dealer struct {
	ID      string
	Name    string
	Address string
	Region  string
}

// Customer is a buyer record from the customer service.
type Customer struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	DealerID string
}

// User is a staff record from the user service.
type User struct {
	ID       string
	FullName string
	Username string
	Email    string
	Role     string
	IsActive bool
	DealerID string
}
