package models

import (
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/utils"
)

type InstallmentStatus string

const (
	InstallmentStatusConfirmed InstallmentStatus = "confirmed"
	InstallmentStatusVoided    InstallmentStatus = "voided"
)

// InstallmentPayment ("абонос") - частичный платеж по заказу, записанный
// отдельной строкой после создания заказа. Строки никогда не удаляются,
// только мягко аннулируются переводом статуса в voided.
type InstallmentPayment struct {
	ID      int64 `json:"id"`
	OrderID int64 `json:"order_id"`
	// Обе суммы могут быть ненулевыми только для настоящего валютно-смешанного абоноса.
	AmountUSD decimal.Decimal `json:"amount_usd"`
	AmountVES decimal.Decimal `json:"amount_ves"`
	// RateAtPayment - курс на момент записи абоноса. Ноль означает legacy-строку
	// без курса: тогда для конвертации используется курс заказа.
	RateAtPayment decimal.Decimal   `json:"rate_at_payment"`
	Method        string            `json:"method"`
	Reference     string            `json:"reference"`
	Status        InstallmentStatus `json:"status"`
	PaidAt        utils.RFC3339Date `json:"paid_at"`
}

// Legacy сообщает, что строка записана без собственного курса.
func (p InstallmentPayment) Legacy() bool {
	return p.RateAtPayment.Sign() <= 0
}

// NewInstallment - входные данные для записи нового абоноса.
type NewInstallment struct {
	AmountUSD     decimal.Decimal `json:"amount_usd"`
	AmountVES     decimal.Decimal `json:"amount_ves"`
	RateAtPayment decimal.Decimal `json:"rate_at_payment"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference"`
}
