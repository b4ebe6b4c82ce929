package models

import (
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/utils"
)

// OrderSettlement - сведенный итог по одному заказу: сколько получено
// (без двойного счета и с однократным ограничением суммой заказа)
// и сколько остается к оплате.
type OrderSettlement struct {
	OrderID    int64           `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Kind       PaymentKind     `json:"payment_kind"`
	TotalUSD   decimal.Decimal `json:"total_usd"`
	// AtOrderUSD - долларовый эквивалент, полученный в момент создания заказа.
	AtOrderUSD decimal.Decimal `json:"at_order_usd"`
	// InstallmentsUSD - сумма подтвержденных абоносов из журнала (без ограничения).
	InstallmentsUSD decimal.Decimal `json:"installments_usd"`
	// ReceivedUSD = min(AtOrderUSD + InstallmentsUSD, TotalUSD).
	ReceivedUSD decimal.Decimal `json:"received_usd"`
	// OutstandingUSD = max(TotalUSD - ReceivedUSD, 0).
	OutstandingUSD decimal.Decimal `json:"outstanding_usd"`
	// Settled - остаток не превышает допуск 0.01 и заказ считается закрытым.
	Settled bool `json:"settled"`
}

// OrderDataError - ошибка данных конкретного заказа в пакетном результате.
// Один испорченный заказ не должен срывать отчет по остальным.
type OrderDataError struct {
	OrderID int64  `json:"order_id"`
	Reason  string `json:"reason"`
}

// CustomerDebt - задолженность клиента по всем его незакрытым заказам.
type CustomerDebt struct {
	CustomerID string          `json:"customer_id"`
	DebtUSD    decimal.Decimal `json:"debt_usd"`
	// Orders - заказы с остатком больше допуска.
	Orders   []OrderSettlement `json:"orders"`
	Excluded []OrderDataError  `json:"excluded,omitempty"`
}

// IncomeBreakdown - разложение полученного дохода по валютам и каналам.
// Все значения - долларовые эквиваленты; их сумма равна TotalReceivedUSD
// отчета в пределах допуска.
type IncomeBreakdown struct {
	USDCash            decimal.Decimal `json:"usd_cash"`
	USDMixed           decimal.Decimal `json:"usd_mixed"`
	USDInstallments    decimal.Decimal `json:"usd_installments"`
	VESMixedUSD        decimal.Decimal `json:"ves_mixed_usd"`
	VESInstallmentsUSD decimal.Decimal `json:"ves_installments_usd"`
}

// TotalUSD возвращает сумму всех составляющих разложения.
func (b IncomeBreakdown) TotalUSD() decimal.Decimal {
	return b.USDCash.
		Add(b.USDMixed).
		Add(b.USDInstallments).
		Add(b.VESMixedUSD).
		Add(b.VESInstallmentsUSD)
}

// IncomeReport - отчет о доходе за период.
type IncomeReport struct {
	From utils.CalendarDate `json:"from"`
	To   utils.CalendarDate `json:"to"`
	// TotalSalesUSD - номинальная стоимость проданного за период.
	TotalSalesUSD decimal.Decimal `json:"total_sales_usd"`
	// TotalReceivedUSD - реально полученный долларовый эквивалент.
	TotalReceivedUSD decimal.Decimal `json:"total_received_usd"`
	Breakdown        IncomeBreakdown `json:"breakdown"`
	Orders           int             `json:"orders"`
	// Excluded - заказы, исключенные из расчета из-за ошибок данных.
	Excluded []OrderDataError `json:"excluded,omitempty"`
}
