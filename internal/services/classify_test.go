package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventafacil/ledger/internal/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestClassifyPayment(t *testing.T) {
	testCases := []struct {
		testName         string
		order            models.Order
		expectedKind     models.PaymentKind
		expectedReceived string
		expectedErr      error
	}{
		{
			testName: "Should treat full cash as fully received",
			order: models.Order{
				TotalUSD:    dec("175.96"),
				RateAtOrder: dec("36"),
				Payment:     models.FullCash{},
			},
			expectedKind:     models.PaymentFullCash,
			expectedReceived: "175.96",
		},
		{
			testName: "Should sum both currencies of a mixed single payment",
			order: models.Order{
				TotalUSD:    dec("100"),
				RateAtOrder: dec("36"),
				Payment:     models.MixedSingle{AmountUSD: dec("50"), AmountVES: dec("1800")},
			},
			expectedKind:     models.PaymentMixedSingle,
			expectedReceived: "100",
		},
		{
			testName: "Should take a simple USD installment at face value",
			order: models.Order{
				TotalUSD:    dec("50"),
				RateAtOrder: dec("36"),
				Payment:     models.InstallmentSimple{Amount: dec("30"), Method: "Zelle"},
			},
			expectedKind:     models.PaymentInstallmentSimple,
			expectedReceived: "30",
		},
		{
			testName: "Should convert a simple VES installment at the order rate",
			order: models.Order{
				TotalUSD:    dec("100"),
				RateAtOrder: dec("36"),
				Payment:     models.InstallmentSimple{Amount: dec("1800"), Method: "Pago Móvil"},
			},
			expectedKind:     models.PaymentInstallmentSimple,
			expectedReceived: "50",
		},
		{
			testName: "Should sum both currencies of a mixed installment",
			order: models.Order{
				TotalUSD:    dec("100"),
				RateAtOrder: dec("36"),
				Payment:     models.InstallmentMixed{AmountUSD: dec("10"), AmountVES: dec("720")},
			},
			expectedKind:     models.PaymentInstallmentMixed,
			expectedReceived: "30",
		},
		{
			testName: "Should treat other payment methods as fully received",
			order: models.Order{
				TotalUSD:    dec("64.20"),
				RateAtOrder: dec("36"),
				Payment:     models.OtherPayment{Method: "Punto de Venta"},
			},
			expectedKind:     models.PaymentOther,
			expectedReceived: "64.20",
		},
		{
			testName: "Should cap received at the order total",
			order: models.Order{
				TotalUSD:    dec("100"),
				RateAtOrder: dec("36"),
				Payment:     models.MixedSingle{AmountUSD: dec("80"), AmountVES: dec("1800")},
			},
			expectedKind:     models.PaymentMixedSingle,
			expectedReceived: "100",
		},
		{
			testName: "Should fail when a VES part has no applicable rate",
			order: models.Order{
				TotalUSD: dec("100"),
				Payment:  models.MixedSingle{AmountUSD: dec("50"), AmountVES: dec("1800")},
			},
			expectedErr: ErrMissingRate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			result, err := ClassifyPayment(tc.order)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedKind, result.Kind)
			assert.True(t, result.ReceivedUSD.Equal(dec(tc.expectedReceived)), "got %s", result.ReceivedUSD)
		})
	}
}

func TestInstallmentsTotalUSD(t *testing.T) {
	orderRate := dec("36")

	installments := []models.InstallmentPayment{
		{AmountUSD: dec("10"), Status: models.InstallmentStatusConfirmed},
		// Собственный курс строки важнее курса заказа.
		{AmountVES: dec("1699.80"), RateAtPayment: dec("169.98"), Status: models.InstallmentStatusConfirmed},
		// Legacy-строка без курса конвертируется по курсу заказа.
		{AmountVES: dec("360"), Status: models.InstallmentStatusConfirmed},
		// Аннулированные строки не участвуют.
		{AmountUSD: dec("500"), Status: models.InstallmentStatusVoided},
	}

	total, err := InstallmentsTotalUSD(installments, orderRate)

	require.NoError(t, err)
	assert.True(t, total.Equal(dec("30")), "got %s", total)
}

func TestInstallmentsTotalUSDIsNotCapped(t *testing.T) {
	// Переплата по журналу сохраняется: ограничение суммой заказа
	// накладывается один раз при сведении итога.
	installments := []models.InstallmentPayment{
		{AmountUSD: dec("70"), Status: models.InstallmentStatusConfirmed},
		{AmountUSD: dec("70"), Status: models.InstallmentStatusConfirmed},
	}

	total, err := InstallmentsTotalUSD(installments, dec("36"))

	require.NoError(t, err)
	assert.True(t, total.Equal(dec("140")), "got %s", total)
}
