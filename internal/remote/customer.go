package remote

import (
	"context"
	"net/url"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// CustomerClient reads buyer records from the customer service.
type CustomerClient struct {
	base baseClient
}

func NewCustomerClient(cfg config.UpstreamsConfig, logg *logger.Logger) *CustomerClient {
	return &CustomerClient{base: newBaseClient(cfg.CustomerURL, "customer", cfg.HTTPTimeout, logg)}
}

// GetCustomers lists customers, optionally scoped to one customer id.
func (c *CustomerClient) GetCustomers(ctx context.Context, customerID string) []Customer {
	const path = "/api/customers"
	query := url.Values{}
	if customerID != "" {
		query.Set("customerId", customerID)
	}
	body, ok := c.base.getJSON(ctx, path, query)
	if !ok {
		return nil
	}
	items, err := unwrapList(body, "data")
	if err != nil {
		c.base.warnDecode(ctx, path, err)
		return nil
	}

	customers := make([]Customer, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		customers = append(customers, Customer{
			ID:       fieldString(obj, "id"),
			Name:     fieldString(obj, "name"),
			Email:    fieldString(obj, "email"),
			Phone:    fieldString(obj, "phone"),
			DealerID: fieldString(obj, "dealerId"),
		})
	}
	return customers
}
