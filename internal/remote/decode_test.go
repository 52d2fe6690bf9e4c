package remote

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUnwrapListBareArray(t *testing.T) {
	items, err := unwrapList([]byte(`[{"a":1},{"a":2}]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestUnwrapListValuesEnvelope(t *testing.T) {
	items, err := unwrapList([]byte(`{"$id":"1","$values":[{"a":1}]}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUnwrapListNamedEnvelope(t *testing.T) {
	items, err := unwrapList([]byte(`{"data":[{"a":1},{"a":2},{"a":3}]}`), "data")
	require.NoError(t, err)
	require.Len(t, items, 3)

	items, err = unwrapList([]byte(`{"Users":[{"a":1}]}`), "users")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUnwrapListRejectsUnknownShape(t *testing.T) {
	_, err := unwrapList([]byte(`{"rows":[]}`), "data")
	require.Error(t, err)

	_, err = unwrapList([]byte(`{"$values":"nope"}`))
	require.Error(t, err)

	_, err = unwrapList([]byte(`   `))
	require.Error(t, err)
}

func TestFieldReadersCaseAliases(t *testing.T) {
	obj := mustObject(t, `{"DealerId":7,"totalPrice":"1250.50","Quantity":"3","isActive":true}`)

	require.Equal(t, "7", fieldString(obj, "dealerId"))
	require.Equal(t, 3, fieldInt(obj, "quantity"))
	require.True(t, fieldBool(obj, "isActive"))
	require.True(t, fieldDecimal(obj, "totalPrice").Equal(decimal.RequireFromString("1250.50")))
}

func TestFieldReadersDefaults(t *testing.T) {
	obj := mustObject(t, `{"loanTermMonths":null,"depositAmount":null}`)

	require.Equal(t, "", fieldString(obj, "orderNumber"))
	require.Equal(t, 0, fieldInt(obj, "quantity"))
	require.Nil(t, fieldIntPtr(obj, "loanTermMonths"))
	require.Nil(t, fieldDecimalPtr(obj, "depositAmount"))
	require.True(t, fieldDecimal(obj, "totalPrice").IsZero())
}

func TestFieldTimeLayouts(t *testing.T) {
	obj := mustObject(t, `{"signedDate":"2025-03-10","createdAt":"2025-03-10T08:30:00Z","bad":"yesterday"}`)

	signed := fieldTime(obj, "signedDate", time.Time{})
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), signed)

	created := fieldTime(obj, "createdAt", time.Time{})
	require.Equal(t, 8, created.Hour())

	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, fallback, fieldTime(obj, "bad", fallback))
	require.Nil(t, fieldTimePtr(obj, "bad"))
}

func TestDecodeOrderInstallmentFlag(t *testing.T) {
	obj := mustObject(t, `{"orderId":12,"paymentMethod":"Trả góp","totalPrice":900}`)
	order := decodeOrder(obj)
	require.True(t, order.IsInstallment())
	require.Equal(t, "12", order.OrderID)

	term := 24
	plain := Order{PaymentMethod: "Cash"}
	require.False(t, plain.IsInstallment())
	plain.LoanTermMonths = &term
	require.True(t, plain.IsInstallment())
}

func mustObject(t *testing.T, raw string) object {
	t.Helper()
	var obj object
	require.NoError(t, json.Unmarshal([]byte(raw), &obj))
	return obj
}
