package remote

import (
	"context"
	"net/url"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// VehicleClient reads vehicle stock and dealer records from the vehicle
// service.
type VehicleClient struct {
	base baseClient
}

func NewVehicleClient(cfg config.UpstreamsConfig, logg *logger.Logger) *VehicleClient {
	return &VehicleClient{base: newBaseClient(cfg.VehicleURL, "vehicle", cfg.HTTPTimeout, logg)}
}

// GetVehicles lists vehicle stock, optionally scoped to one dealer. The
// vehicle service paginates behind a `data` envelope.
func (c *VehicleClient) GetVehicles(ctx context.Context, dealerID string) []VehicleInventory {
	const path = "/api/vehicles"
	query := url.Values{}
	if dealerID != "" {
		query.Set("dealerId", dealerID)
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

	vehicles := make([]VehicleInventory, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		vehicles = append(vehicles, decodeVehicle(obj))
	}
	return vehicles
}

// GetVehicle looks up one vehicle, returning nil when unavailable.
func (c *VehicleClient) GetVehicle(ctx context.Context, vehicleID string) *VehicleInventory {
	body, ok := c.base.getJSON(ctx, "/api/vehicles/"+url.PathEscape(vehicleID), nil)
	if !ok {
		return nil
	}
	obj, err := unwrapEntity(body, "data")
	if err != nil {
		c.base.warnDecode(ctx, "/api/vehicles/{id}", err)
		return nil
	}
	vehicle := decodeVehicle(obj)
	return &vehicle
}

// GetDealers lists all dealerships.
func (c *VehicleClient) GetDealers(ctx context.Context) []Dealer {
	const path = "/api/dealers"
	body, ok := c.base.getJSON(ctx, path, nil)
	if !ok {
		return nil
	}
	items, err := unwrapList(body, "data")
	if err != nil {
		c.base.warnDecode(ctx, path, err)
		return nil
	}

	dealers := make([]Dealer, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		dealers = append(dealers, Dealer{
			ID:      fieldString(obj, "id"),
			Name:    fieldString(obj, "name"),
			Address: fieldString(obj, "address"),
			Region:  fieldString(obj, "region"),
		})
	}
	return dealers
}

func decodeVehicle(obj object) VehicleInventory {
	now := time.Now().UTC()
	return VehicleInventory{
		ID:            fieldString(obj, "id"),
		Model:         fieldString(obj, "model"),
		DealerID:      fieldString(obj, "dealerId"),
		DealerName:    fieldString(obj, "dealerName"),
		StockQuantity: fieldInt(obj, "stockQuantity"),
		Price:         fieldDecimal(obj, "price"),
		CreatedAt:     fieldTime(obj, "createdAt", now),
		UpdatedAt:     fieldTime(obj, "updatedAt", now),
	}
}
