package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
)

func upstreamConfig(url string) config.UpstreamsConfig {
	return config.UpstreamsConfig{
		SalesURL:    url,
		VehicleURL:  url,
		CustomerURL: url,
		UserURL:     url,
		HTTPTimeout: 5 * time.Second,
	}
}

func TestSalesClientGetOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Orders", r.URL.Path)
		require.Equal(t, "2025-01-01", r.URL.Query().Get("fromDate"))
		require.Equal(t, "9", r.URL.Query().Get("dealerId"))
		w.Write([]byte(`{"$values":[{"orderId":1,"dealerId":9,"quantity":2,"totalPrice":500.25}]}`))
	}))
	defer srv.Close()

	client := NewSalesClient(upstreamConfig(srv.URL), nil)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := client.GetOrders(context.Background(), SalesQuery{From: &from, DealerID: "9"})

	require.Len(t, orders, 1)
	require.Equal(t, "1", orders[0].OrderID)
	require.Equal(t, 2, orders[0].Quantity)
	require.Equal(t, "500.25", orders[0].TotalPrice.StringFixed(2))
}

func TestSalesClientDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewSalesClient(upstreamConfig(srv.URL), nil)
	require.Empty(t, client.GetOrders(context.Background(), SalesQuery{}))
	require.Empty(t, client.GetContracts(context.Background(), SalesQuery{}))
	require.Empty(t, client.GetPayments(context.Background(), SalesQuery{}))
	require.Nil(t, client.GetOrder(context.Background(), "1"))
}

func TestSalesClientDegradesOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	client := NewSalesClient(upstreamConfig(srv.URL), nil)
	require.Empty(t, client.GetOrders(context.Background(), SalesQuery{}))
}

func TestSalesClientEmptyBaseURL(t *testing.T) {
	client := NewSalesClient(config.UpstreamsConfig{}, nil)
	require.Empty(t, client.GetOrders(context.Background(), SalesQuery{}))
}

func TestSalesClientQuoteClientSideFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`[
			{"id":1,"dealerId":1,"createdAt":"2025-02-01T00:00:00Z"},
			{"id":2,"dealerId":2,"createdAt":"2025-02-01T00:00:00Z"},
			{"id":3,"dealerId":1,"createdAt":"2024-01-01T00:00:00Z"}
		]`))
	}))
	defer srv.Close()

	client := NewSalesClient(upstreamConfig(srv.URL), nil)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	quotes := client.GetQuotes(context.Background(), SalesQuery{From: &from, DealerID: "1"})

	require.Len(t, quotes, 1)
	require.Equal(t, "1", quotes[0].QuoteID)
}

func TestVehicleClientDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/vehicles":
			w.Write([]byte(`{"data":[{"id":3,"model":"VF8","dealerId":1,"stockQuantity":12,"price":42000}]}`))
		case "/api/dealers":
			w.Write([]byte(`[{"id":1,"name":"Hanoi EV","region":"North"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewVehicleClient(upstreamConfig(srv.URL), nil)

	vehicles := client.GetVehicles(context.Background(), "")
	require.Len(t, vehicles, 1)
	require.Equal(t, "VF8", vehicles[0].Model)
	require.Equal(t, 12, vehicles[0].StockQuantity)

	dealers := client.GetDealers(context.Background())
	require.Len(t, dealers, 1)
	require.Equal(t, "North", dealers[0].Region)
}

func TestUserClientInternalFallback(t *testing.T) {
	internalCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/internal/users":
			internalCalled = true
			w.WriteHeader(http.StatusNotFound)
		case "/api/users":
			w.Write([]byte(`{"Users":[{"id":5,"fullName":"Linh Tran","isActive":true}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewUserClient(upstreamConfig(srv.URL), nil)
	users := client.GetUsers(context.Background())

	require.True(t, internalCalled)
	require.Len(t, users, 1)
	require.Equal(t, "Linh Tran", users[0].FullName)
}

func TestUserClientGetByIDEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/5", r.URL.Path)
		w.Write([]byte(`{"user":{"fullName":"Linh Tran","role":"EVM Staff"}}`))
	}))
	defer srv.Close()

	client := NewUserClient(upstreamConfig(srv.URL), nil)
	user := client.GetUserByID(context.Background(), "5")

	require.NotNil(t, user)
	require.Equal(t, "5", user.ID)
	require.Equal(t, "EVM Staff", user.Role)
}

func TestCustomerClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.URL.Query().Get("customerId"))
		w.Write([]byte(`{"$values":[{"id":7,"name":"Nguyen Van A","dealerId":2}]}`))
	}))
	defer srv.Close()

	client := NewCustomerClient(upstreamConfig(srv.URL), nil)
	customers := client.GetCustomers(context.Background(), "7")

	require.Len(t, customers, 1)
	require.Equal(t, "Nguyen Van A", customers[0].Name)
}
