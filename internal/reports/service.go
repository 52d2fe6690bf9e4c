package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// ServiceParams configure the report engine.
type ServiceParams struct {
	Logger    *logger.Logger
	Repo      SummaryReader
	Sales     SalesAPI
	Vehicles  VehicleAPI
	Customers CustomerAPI
	Users     UserAPI
	Config    config.ReportsConfig
}

// Service computes derived reports per request. It reads the summary tables
// and, for reports needing values that are not persisted, fetches from the
// upstream services directly. Upstream failures degrade to empty collections
// inside the clients, so every report stays available with partial data.
type Service struct {
	logg      *logger.Logger
	repo      SummaryReader
	sales     SalesAPI
	vehicles  VehicleAPI
	customers CustomerAPI
	users     UserAPI
	cfg       config.ReportsConfig

	now func() time.Time
}

// NewService builds a report engine.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("summary reader required")
	}
	if params.Sales == nil {
		return nil, fmt.Errorf("sales client required")
	}
	if params.Vehicles == nil {
		return nil, fmt.Errorf("vehicle client required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customer client required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user client required")
	}
	return &Service{
		logg:      params.Logger,
		repo:      params.Repo,
		sales:     params.Sales,
		vehicles:  params.Vehicles,
		customers: params.Customers,
		users:     params.Users,
		cfg:       params.Config,
		now:       time.Now,
	}, nil
}

func (s *Service) dealerName(ctx context.Context, dealerID string) string {
	for _, d := range s.vehicles.GetDealers(ctx) {
		if d.ID == dealerID {
			return d.Name
		}
	}
	return fmt.Sprintf("Dealer %s", dealerID)
}

func dealerRegions(dealers []remote.Dealer) map[string]string {
	regions := make(map[string]string, len(dealers))
	for _, d := range dealers {
		regions[d.ID] = d.Region
	}
	return regions
}
