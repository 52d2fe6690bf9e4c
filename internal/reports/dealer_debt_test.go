package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/DangTDuy/ev-dealer-management-sub001/internal/remote"
)

func TestMonthlyPaymentAnnuity(t *testing.T) {
	got := monthlyPayment(decimal.NewFromInt(7000), decimal.Zero, 12, 12)
	require.Equal(t, "621.94", got.String())
}

func TestMonthlyPaymentZeroRate(t *testing.T) {
	got := monthlyPayment(decimal.NewFromInt(1200), decimal.Zero, 12, 0)
	require.Equal(t, "100", got.String())
}

func TestMonthlyPaymentDegenerate(t *testing.T) {
	require.True(t, monthlyPayment(decimal.NewFromInt(7000), decimal.Zero, 0, 12).IsZero())
	require.True(t, monthlyPayment(decimal.NewFromInt(5000), decimal.NewFromInt(5000), 12, 12).IsZero())
	require.True(t, monthlyPayment(decimal.NewFromInt(5000), decimal.NewFromInt(6000), 12, 12).IsZero())
}

func TestSimulatedPaidRatioDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -10)
	old := now.AddDate(0, 0, -90)

	first := simulatedPaidRatio("order-1", "Confirmed", recent, now)
	second := simulatedPaidRatio("order-1", "Confirmed", recent, now)
	require.Equal(t, first, second)
	require.GreaterOrEqual(t, first, 0.0)
	require.Less(t, first, 0.30)

	completed := simulatedPaidRatio("order-2", "Completed", old, now)
	require.GreaterOrEqual(t, completed, 0.40)
	require.Less(t, completed, 0.60)

	// A completed order inside the 60-day window still reads as mostly unpaid.
	recentCompleted := simulatedPaidRatio("order-3", "Completed", recent, now)
	require.Less(t, recentCompleted, 0.30)
}

func TestDealerDebtLedgers(t *testing.T) {
	f := newReportService(t)
	f.vehicles.dealers = []remote.Dealer{{ID: "7", Name: "Hanoi EV", Region: "Miền Bắc"}}
	f.customers.customers = []remote.Customer{{ID: "c1", Name: "Nguyễn Văn A"}}

	term := 12
	deposit := decimal.NewFromInt(3000)
	installment := testOrder("10", "7", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 1, "10000")
	installment.CustomerID = "c1"
	installment.PaymentMethod = remote.PaymentMethodInstallment
	installment.LoanTermMonths = &term
	installment.DepositAmount = &deposit

	cash := testOrder("11", "7", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 1, "5000")
	f.sales.orders = []remote.Order{installment, cash}
	f.sales.payments = []remote.Payment{
		{PaymentID: "p1", OrderID: "10", Amount: decimal.NewFromInt(4000)},
	}

	report, err := f.svc.GetDealerDebtReport(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, "Hanoi EV", report.DealerName)

	// Ledger rows always satisfy 0 < remaining <= total.
	for _, d := range report.DebtToManufacturerDetail {
		require.True(t, d.RemainingDebt.Sign() > 0)
		require.True(t, d.RemainingDebt.LessThanOrEqual(d.OrderAmount))
	}
	for _, d := range report.DebtFromCustomerDetail {
		require.True(t, d.RemainingDebt.Sign() > 0)
		require.True(t, d.RemainingDebt.LessThanOrEqual(d.TotalAmount))
	}

	require.Len(t, report.DebtFromCustomerDetail, 1)
	cust := report.DebtFromCustomerDetail[0]
	require.Equal(t, "Nguyễn Văn A", cust.CustomerName)
	require.Equal(t, "4000", cust.PaidAmount.String())
	require.Equal(t, "6000", cust.RemainingDebt.String())
	require.Equal(t, 12, cust.LoanTermMonths)
	require.False(t, cust.MonthlyPayment.IsZero())

	require.Equal(t, report.DebtToManufacturer.Sub(report.DebtFromCustomers).String(), report.TotalDebt.String())
}

func TestDealerDebtSimulatedFallback(t *testing.T) {
	f := newReportService(t)
	order := testOrder("20", "7", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 1, "1000")
	f.sales.orders = []remote.Order{order}

	report, err := f.svc.GetDealerDebtReport(context.Background(), "7")
	require.NoError(t, err)

	require.Len(t, report.DebtToManufacturerDetail, 1)
	entry := report.DebtToManufacturerDetail[0]
	require.True(t, entry.PaidAmount.Sign() >= 0)
	require.True(t, entry.PaidAmount.LessThanOrEqual(decimal.NewFromInt(300)))
	require.Equal(t, entry.OrderAmount.Sub(entry.PaidAmount).String(), entry.RemainingDebt.String())

	// Same order id on a second run yields the same simulated split.
	again, err := f.svc.GetDealerDebtReport(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, entry.PaidAmount.String(), again.DebtToManufacturerDetail[0].PaidAmount.String())
}

func TestInstallmentFallbackTakesOldestOrders(t *testing.T) {
	orders := []remote.Order{
		testOrder("3", "7", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 1, "100"),
		testOrder("1", "7", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 1, "100"),
		testOrder("2", "7", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 1, "100"),
	}

	fallback := installmentOrders(orders)
	require.Len(t, fallback, 1)
	require.Equal(t, "1", fallback[0].OrderID)

	term := 6
	orders[0].LoanTermMonths = &term
	real := installmentOrders(orders)
	require.Len(t, real, 1)
	require.Equal(t, "3", real[0].OrderID)

	require.Empty(t, installmentOrders(nil))
}

func TestCustomerDebtAccruesMonthlyPayments(t *testing.T) {
	f := newReportService(t)
	f.sales.orders = []remote.Order{func() remote.Order {
		term := 12
		o := testOrder("30", "7", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 1, "12000")
		o.PaymentMethod = remote.PaymentMethodInstallment
		o.LoanTermMonths = &term
		return o
	}()}

	report, err := f.svc.GetDealerDebtReport(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, report.DebtFromCustomerDetail, 1)

	entry := report.DebtFromCustomerDetail[0]
	// 30% deposit stand-in plus three elapsed monthly payments (Mar 10 to Jun 15).
	monthly := monthlyPayment(decimal.NewFromInt(12000), decimal.Zero, 12, 12)
	expected := decimal.NewFromInt(3600).Add(monthly.Mul(decimal.NewFromInt(3)))
	require.Equal(t, expected.String(), entry.PaidAmount.String())
	require.Equal(t, "Customer ", entry.CustomerName[:9])
}
