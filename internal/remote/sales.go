package remote

import (
	"context"
	"net/url"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// SalesClient reads orders, quotes, contracts and payments from the sales
// service. Every fetch degrades to an empty result on failure.
type SalesClient struct {
	base baseClient
}

func NewSalesClient(cfg config.UpstreamsConfig, logg *logger.Logger) *SalesClient {
	return &SalesClient{base: newBaseClient(cfg.SalesURL, "sales", cfg.HTTPTimeout, logg)}
}

// SalesQuery bounds a sales-service list call. Zero values mean "no filter".
type SalesQuery struct {
	From     *time.Time
	To       *time.Time
	DealerID string
	OrderID  string
}

func (q SalesQuery) values() url.Values {
	v := url.Values{}
	if q.From != nil {
		v.Set("fromDate", q.From.Format(queryDateLayout))
	}
	if q.To != nil {
		v.Set("toDate", q.To.Format(queryDateLayout))
	}
	if q.DealerID != "" {
		v.Set("dealerId", q.DealerID)
	}
	if q.OrderID != "" {
		v.Set("orderId", q.OrderID)
	}
	return v
}

// GetOrders lists orders in the requested window.
func (c *SalesClient) GetOrders(ctx context.Context, q SalesQuery) []Order {
	const path = "/api/Orders"
	body, ok := c.base.getJSON(ctx, path, q.values())
	if !ok {
		return nil
	}
	items, err := unwrapList(body)
	if err != nil {
		c.base.warnDecode(ctx, path, err)
		return nil
	}

	orders := make([]Order, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		orders = append(orders, decodeOrder(obj))
	}
	return orders
}

// GetOrder looks up a single order, returning nil when unavailable.
func (c *SalesClient) GetOrder(ctx context.Context, orderID string) *Order {
	body, ok := c.base.getJSON(ctx, "/api/sales/orders/"+url.PathEscape(orderID), nil)
	if !ok {
		return nil
	}
	obj, err := unwrapEntity(body)
	if err != nil {
		c.base.warnDecode(ctx, "/api/sales/orders/{id}", err)
		return nil
	}
	order := decodeOrder(obj)
	return &order
}

// GetQuotes lists quotes. The sales service exposes no quote filters, so the
// window and dealer bounds are applied client-side.
func (c *SalesClient) GetQuotes(ctx context.Context, q SalesQuery) []Quote {
	const path = "/api/Quotes"
	body, ok := c.base.getJSON(ctx, path, nil)
	if !ok {
		return nil
	}
	items, err := unwrapList(body)
	if err != nil {
		c.base.warnDecode(ctx, path, err)
		return nil
	}

	quotes := make([]Quote, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		quote := decodeQuote(obj)
		if q.From != nil && quote.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && quote.CreatedAt.After(*q.To) {
			continue
		}
		if q.DealerID != "" && quote.DealerID != q.DealerID {
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}

// GetContracts lists contracts in the requested window.
func (c *SalesClient) GetContracts(ctx context.Context, q SalesQuery) []Contract {
	const path = "/api/Contracts"
	body, ok := c.base.getJSON(ctx, path, q.values())
	if !ok {
		return nil
	}
	items, err := unwrapList(body)
	if err != nil {
		c.base.warnDecode(ctx, path, err)
		return nil
	}

	contracts := make([]Contract, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		contracts = append(contracts, decodeContract(obj))
	}
	return contracts
}

// GetPayments lists payments in the requested window.
func (c *SalesClient) GetPayments(ctx context.Context, q SalesQuery) []Payment {
	const path = "/api/payments"
	body, ok := c.base.getJSON(ctx, path, q.values())
	if !ok {
		return nil
	}
	items, err := unwrapList(body)
	if err != nil {
		c.base.warnDecode(ctx, path, err)
		return nil
	}

	payments := make([]Payment, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		payments = append(payments, decodePayment(obj))
	}
	return payments
}

func decodeOrder(obj object) Order {
	return Order{
		OrderID:            fieldString(obj, "orderId"),
		OrderNumber:        fieldString(obj, "orderNumber"),
		DealerID:           fieldString(obj, "dealerId"),
		SalespersonID:      fieldString(obj, "salespersonId"),
		CustomerID:         fieldString(obj, "customerId"),
		VehicleID:          fieldString(obj, "vehicleId"),
		Quantity:           fieldInt(obj, "quantity"),
		SubTotal:           fieldDecimal(obj, "subTotal"),
		TotalDiscount:      fieldDecimal(obj, "totalDiscount"),
		TotalPrice:         fieldDecimal(obj, "totalPrice"),
		PaymentMethod:      fieldString(obj, "paymentMethod"),
		DepositAmount:      fieldDecimalPtr(obj, "depositAmount"),
		LoanTermMonths:     fieldIntPtr(obj, "loanTermMonths"),
		InterestRateYearly: fieldDecimalPtr(obj, "interestRateYearly"),
		Status:             fieldString(obj, "status"),
		CreatedAt:          fieldTime(obj, "createdAt", time.Now().UTC()),
	}
}

func decodeQuote(obj object) Quote {
	return Quote{
		QuoteID:        fieldString(obj, "id"),
		DealerID:       fieldString(obj, "dealerId"),
		SalespersonID:  fieldString(obj, "salespersonId"),
		CustomerID:     fieldString(obj, "customerId"),
		VehicleID:      fieldString(obj, "vehicleId"),
		Quantity:       fieldInt(obj, "quantity"),
		TotalBasePrice: fieldDecimal(obj, "totalBasePrice"),
		Status:         fieldString(obj, "status"),
		CreatedAt:      fieldTime(obj, "createdAt", time.Now().UTC()),
	}
}

func decodeContract(obj object) Contract {
	now := time.Now().UTC()
	return Contract{
		ContractID:     fieldString(obj, "contractId"),
		OrderID:        fieldString(obj, "orderId"),
		CustomerID:     fieldString(obj, "customerId"),
		DealerID:       fieldString(obj, "dealerId"),
		SalespersonID:  fieldString(obj, "salespersonId"),
		ContractNumber: fieldString(obj, "contractNumber"),
		SignedDate:     fieldTime(obj, "signedDate", time.Time{}),
		TotalAmount:    fieldDecimal(obj, "totalAmount"),
		PaymentStatus:  fieldString(obj, "paymentStatus"),
		Status:         fieldString(obj, "status"),
		CreatedAt:      fieldTime(obj, "createdAt", now),
		UpdatedAt:      fieldTime(obj, "updatedAt", now),
	}
}

func decodePayment(obj object) Payment {
	return Payment{
		PaymentID:     fieldString(obj, "id"),
		OrderID:       fieldString(obj, "orderId"),
		Amount:        fieldDecimal(obj, "amount"),
		PaymentMethod: fieldString(obj, "paymentMethod"),
		Status:        fieldString(obj, "status"),
		PaymentDate:   fieldTimePtr(obj, "paymentDate"),
		CreatedAt:     fieldTime(obj, "createdAt", time.Now().UTC()),
	}
}
