package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

// fakeReportStorage хранит строки заказов и абоносов в памяти
// и воспроизводит полуинтервальные выборки хранилища.
type fakeReportStorage struct {
	orders       []database.OrderDB
	installments []database.InstallmentDB
}

func (f *fakeReportStorage) FindOrder(_ context.Context, orderID int64) (*database.OrderDB, error) {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			return &f.orders[i], nil
		}
	}
	return nil, database.ErrOrderNotFound
}

func (f *fakeReportStorage) FindOrdersInRange(_ context.Context, from, to time.Time) ([]database.OrderDB, error) {
	var result []database.OrderDB
	for _, order := range f.orders {
		if !order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (f *fakeReportStorage) FindConfirmedInstallments(_ context.Context, orderID int64) ([]database.InstallmentDB, error) {
	var result []database.InstallmentDB
	for _, item := range f.installments {
		if item.OrderID == orderID && item.Status == string(models.InstallmentStatusConfirmed) {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeReportStorage) FindConfirmedInstallmentsInRange(_ context.Context, from, to time.Time) ([]database.InstallmentDB, error) {
	var result []database.InstallmentDB
	for _, item := range f.installments {
		if item.Status != string(models.InstallmentStatusConfirmed) {
			continue
		}
		if !item.PaidAt.Before(from) && item.PaidAt.Before(to) {
			result = append(result, item)
		}
	}
	return result, nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func calDay(value string) utils.CalendarDate {
	d, err := utils.ParseCalendarDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func withinCent(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Sub(dec(expected)).Abs().LessThanOrEqual(dec("0.01")), "got %s, want %s", actual, expected)
}

func TestReportFor(t *testing.T) {
	zelle := "Zelle"
	kind := "simple"

	// Заказ периода, оплаченный смешанным платежом целиком.
	mixedOrder := database.OrderDB{
		ID:          1,
		CustomerID:  "maria",
		TotalUSD:    dec("100"),
		RateAtOrder: dec("36"),
		Status:      string(models.OrderStatusActive),
		CreatedAt:   day("2024-03-10"),
		IsMixed:     true,
		MixedUSD:    decimal.NewNullDecimal(dec("50")),
		MixedVES:    decimal.NewNullDecimal(dec("1800")),
	}

	// Заказ периода с legacy-дублем: встроенный абонос 30 повторен
	// строкой журнала, 30+30 > 50 и слагаемые масштабируются к итогу 50.
	duplicatedOrder := database.OrderDB{
		ID:                2,
		CustomerID:        "maria",
		TotalUSD:          dec("50"),
		RateAtOrder:       dec("36"),
		Status:            string(models.OrderStatusActive),
		CreatedAt:         day("2024-03-10"),
		IsInstallment:     true,
		InstallmentKind:   &kind,
		InstallmentAmount: decimal.NewNullDecimal(dec("30")),
		InstallmentMethod: &zelle,
	}

	// Заказ прошлого периода: в отчет попадает только его абонос,
	// записанный внутри периода.
	pastOrder := database.OrderDB{
		ID:                3,
		CustomerID:        "jose",
		TotalUSD:          dec("100"),
		RateAtOrder:       dec("36"),
		Status:            string(models.OrderStatusActive),
		CreatedAt:         day("2024-02-01"),
		IsInstallment:     true,
		InstallmentKind:   &kind,
		InstallmentAmount: decimal.NewNullDecimal(dec("30")),
		InstallmentMethod: &zelle,
	}

	storage := &fakeReportStorage{
		orders: []database.OrderDB{mixedOrder, duplicatedOrder, pastOrder},
		installments: []database.InstallmentDB{
			{ID: 1, OrderID: 2, AmountUSD: dec("30"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-03-11")},
			{ID: 2, OrderID: 3, AmountUSD: dec("20"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-03-12")},
			// Аннулированные строки и строки вне периода не участвуют.
			{ID: 3, OrderID: 3, AmountUSD: dec("500"), Status: string(models.InstallmentStatusVoided), PaidAt: day("2024-03-12")},
			{ID: 4, OrderID: 3, AmountUSD: dec("10"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-04-01")},
		},
	}
	service := NewReportService(storage)

	report, err := service.ReportFor(context.Background(), calDay("2024-03-10"), calDay("2024-03-15"))

	require.NoError(t, err)
	assert.Equal(t, 2, report.Orders)
	assert.True(t, report.TotalSalesUSD.Equal(dec("150")), "sales %s", report.TotalSalesUSD)
	assert.Empty(t, report.Excluded)

	// Итог полученного равен сумме разложения.
	assert.True(t, report.TotalReceivedUSD.Equal(report.Breakdown.TotalUSD()))

	withinCent(t, "50", report.Breakdown.USDMixed)
	withinCent(t, "50", report.Breakdown.VESMixedUSD)
	// Заказ 2: 30+30 масштабируются к 50; заказ 3 добавляет 20 абоносом.
	withinCent(t, "70", report.Breakdown.USDInstallments)
	withinCent(t, "170", report.TotalReceivedUSD)
	assert.True(t, report.Breakdown.USDCash.IsZero())
	assert.True(t, report.Breakdown.VESInstallmentsUSD.IsZero())
}

func TestReportForExcludesBrokenOrders(t *testing.T) {
	broken := database.OrderDB{
		ID:            7,
		CustomerID:    "ana",
		TotalUSD:      dec("70"),
		RateAtOrder:   dec("36"),
		Status:        string(models.OrderStatusActive),
		CreatedAt:     day("2024-03-10"),
		IsMixed:       true,
		IsInstallment: true,
	}
	healthy := database.OrderDB{
		ID:          8,
		CustomerID:  "ana",
		TotalUSD:    dec("40"),
		RateAtOrder: dec("36"),
		Status:      string(models.OrderStatusActive),
		CreatedAt:   day("2024-03-11"),
	}

	storage := &fakeReportStorage{
		orders: []database.OrderDB{broken, healthy},
		// Абоносы сломанного заказа не добавляют повторных исключений.
		installments: []database.InstallmentDB{
			{ID: 1, OrderID: 7, AmountUSD: dec("10"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-03-11")},
			{ID: 2, OrderID: 7, AmountUSD: dec("10"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-03-12")},
		},
	}
	service := NewReportService(storage)

	report, err := service.ReportFor(context.Background(), calDay("2024-03-10"), calDay("2024-03-15"))

	require.NoError(t, err)
	assert.Equal(t, 1, report.Orders)
	assert.True(t, report.TotalSalesUSD.Equal(dec("40")))
	assert.True(t, report.TotalReceivedUSD.Equal(dec("40")))
	require.Len(t, report.Excluded, 1)
	assert.Equal(t, int64(7), report.Excluded[0].OrderID)
}

func TestReportForSkipsLaterInstallments(t *testing.T) {
	order := database.OrderDB{
		ID:          11,
		CustomerID:  "jose",
		TotalUSD:    dec("100"),
		RateAtOrder: dec("36"),
		Status:      string(models.OrderStatusActive),
		CreatedAt:   day("2024-03-10"),
		IsMixed:     true,
		MixedUSD:    decimal.NewNullDecimal(dec("25")),
		MixedVES:    decimal.NewNullDecimal(dec("900")),
	}

	storage := &fakeReportStorage{
		orders: []database.OrderDB{order},
		// Абонос записан после периода - он попадет в отчет своего периода.
		installments: []database.InstallmentDB{
			{ID: 1, OrderID: 11, AmountUSD: dec("30"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-04-01")},
		},
	}
	service := NewReportService(storage)

	report, err := service.ReportFor(context.Background(), calDay("2024-03-10"), calDay("2024-03-15"))

	require.NoError(t, err)
	assert.True(t, report.TotalSalesUSD.Equal(dec("100")))
	withinCent(t, "25", report.Breakdown.USDMixed)
	withinCent(t, "25", report.Breakdown.VESMixedUSD)
	assert.True(t, report.Breakdown.USDInstallments.IsZero())
	withinCent(t, "50", report.TotalReceivedUSD)
}

func TestReportForWholeHistory(t *testing.T) {
	zelle := "Zelle"
	kind := "simple"

	orders := []database.OrderDB{
		{
			ID:          1,
			CustomerID:  "maria",
			TotalUSD:    dec("100"),
			RateAtOrder: dec("36"),
			Status:      string(models.OrderStatusActive),
			CreatedAt:   day("2024-03-10"),
			IsMixed:     true,
			MixedUSD:    decimal.NewNullDecimal(dec("50")),
			MixedVES:    decimal.NewNullDecimal(dec("1800")),
		},
		{
			ID:                2,
			CustomerID:        "maria",
			TotalUSD:          dec("50"),
			RateAtOrder:       dec("36"),
			Status:            string(models.OrderStatusActive),
			CreatedAt:         day("2024-03-10"),
			IsInstallment:     true,
			InstallmentKind:   &kind,
			InstallmentAmount: decimal.NewNullDecimal(dec("30")),
			InstallmentMethod: &zelle,
		},
		{
			ID:                3,
			CustomerID:        "jose",
			TotalUSD:          dec("100"),
			RateAtOrder:       dec("36"),
			Status:            string(models.OrderStatusActive),
			CreatedAt:         day("2024-02-01"),
			IsInstallment:     true,
			InstallmentKind:   &kind,
			InstallmentAmount: decimal.NewNullDecimal(dec("30")),
			InstallmentMethod: &zelle,
		},
	}

	storage := &fakeReportStorage{
		orders: orders,
		installments: []database.InstallmentDB{
			{ID: 1, OrderID: 2, AmountUSD: dec("30"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-03-11")},
			{ID: 2, OrderID: 3, AmountUSD: dec("20"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-03-12")},
			{ID: 3, OrderID: 3, AmountUSD: dec("10"), Status: string(models.InstallmentStatusConfirmed), PaidAt: day("2024-04-01")},
		},
	}
	service := NewReportService(storage)

	// Период накрывает всю историю: каждый платеж учтен в нем ровно
	// один раз, поэтому полученное не превышает продажи.
	report, err := service.ReportFor(context.Background(), calDay("2024-01-01"), calDay("2024-12-31"))

	require.NoError(t, err)
	assert.Equal(t, 3, report.Orders)
	assert.True(t, report.TotalSalesUSD.Equal(dec("250")))
	// Заказ 1: 100; заказ 2: 30+30 масштабированы к 50; заказ 3: 30+20+10.
	withinCent(t, "210", report.TotalReceivedUSD)
	assert.True(t, report.TotalReceivedUSD.LessThanOrEqual(report.TotalSalesUSD),
		"received %s, sales %s", report.TotalReceivedUSD, report.TotalSalesUSD)
}

func TestReportForIgnoresClosedOrders(t *testing.T) {
	voided := database.OrderDB{
		ID:          9,
		CustomerID:  "ana",
		TotalUSD:    dec("500"),
		RateAtOrder: dec("36"),
		Status:      string(models.OrderStatusVoided),
		CreatedAt:   day("2024-03-10"),
	}

	service := NewReportService(&fakeReportStorage{orders: []database.OrderDB{voided}})

	report, err := service.ReportFor(context.Background(), calDay("2024-03-10"), calDay("2024-03-15"))

	require.NoError(t, err)
	assert.Equal(t, 0, report.Orders)
	assert.True(t, report.TotalSalesUSD.IsZero())
	assert.True(t, report.TotalReceivedUSD.IsZero())
}
