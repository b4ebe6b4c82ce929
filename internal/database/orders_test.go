package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventafacil/ledger/internal/models"
)

func TestOrderDBPaymentDetails(t *testing.T) {
	zelle := "Zelle"
	kind := "simple"

	testCases := []struct {
		name         string
		row          OrderDB
		expectedKind models.PaymentKind
		expectedErr  error
	}{
		{
			name:         "Пустые колонки оплаты дают полную оплату наличными",
			row:          OrderDB{},
			expectedKind: models.PaymentFullCash,
		},
		{
			name: "Смешанная оплата",
			row: OrderDB{
				IsMixed:  true,
				MixedUSD: decimal.NewNullDecimal(decimal.NewFromInt(50)),
				MixedVES: decimal.NewNullDecimal(decimal.NewFromInt(1800)),
			},
			expectedKind: models.PaymentMixedSingle,
		},
		{
			name: "Простой абонос",
			row: OrderDB{
				IsInstallment:     true,
				InstallmentKind:   &kind,
				InstallmentAmount: decimal.NewNullDecimal(decimal.NewFromInt(30)),
				InstallmentMethod: &zelle,
			},
			expectedKind: models.PaymentInstallmentSimple,
		},
		{
			name:         "Прочий способ оплаты",
			row:          OrderDB{OtherMethod: &zelle},
			expectedKind: models.PaymentOther,
		},
		{
			name:        "Флаги двух вариантов одновременно",
			row:         OrderDB{IsMixed: true, IsInstallment: true},
			expectedErr: ErrInconsistentPayment,
		},
		{
			name: "Прочий способ вместе с флагом смешанной оплаты",
			row: OrderDB{
				IsMixed:     true,
				MixedUSD:    decimal.NewNullDecimal(decimal.NewFromInt(50)),
				MixedVES:    decimal.NewNullDecimal(decimal.NewFromInt(1800)),
				OtherMethod: &zelle,
			},
			expectedErr: ErrInconsistentPayment,
		},
		{
			name: "Прочий способ вместе с флагом абоноса",
			row: OrderDB{
				IsInstallment:     true,
				InstallmentKind:   &kind,
				InstallmentAmount: decimal.NewNullDecimal(decimal.NewFromInt(30)),
				InstallmentMethod: &zelle,
				OtherMethod:       &zelle,
			},
			expectedErr: ErrInconsistentPayment,
		},
		{
			name:        "Смешанная оплата без сумм",
			row:         OrderDB{IsMixed: true},
			expectedErr: ErrInconsistentPayment,
		},
		{
			name:        "Абонос без вида",
			row:         OrderDB{IsInstallment: true},
			expectedErr: ErrInconsistentPayment,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payment, err := tc.row.paymentDetails()

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedKind, payment.Kind())
		})
	}
}
