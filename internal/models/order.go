package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusVoided    OrderStatus = "voided"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order представляет заказ продажи. TotalUSD - авторитетная сумма долга по заказу,
// фиксируется при создании. RateAtOrder - снимок курса Bs/$ на момент создания,
// используется для всех конвертаций по этому заказу, если платеж явно не задает свой курс.
type Order struct {
	ID          int64
	CustomerID  string
	TotalUSD    decimal.Decimal
	RateAtOrder decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	Payment     PaymentDetails
}

// Closed сообщает, исключен ли заказ из расчетов долга и дохода.
func (o Order) Closed() bool {
	return o.Status == OrderStatusVoided || o.Status == OrderStatusCancelled
}

// TotalCorrection - входные данные операции корректировки суммы заказа.
type TotalCorrection struct {
	TotalUSD decimal.Decimal `json:"total_usd"`
}

type PaymentKind string

const (
	PaymentFullCash          PaymentKind = "full_cash"
	PaymentMixedSingle       PaymentKind = "mixed_single"
	PaymentInstallmentSimple PaymentKind = "installment_simple"
	PaymentInstallmentMixed  PaymentKind = "installment_mixed"
	PaymentOther             PaymentKind = "other"
)

// PaymentDetails - закрытое множество вариантов оплаты заказа.
// Ровно один вариант применим к заказу; вариант собирается один раз
// на границе доступа к данным из плоских legacy-колонок.
type PaymentDetails interface {
	Kind() PaymentKind
}

// FullCash - весь TotalUSD получен в долларах в момент продажи.
type FullCash struct{}

func (FullCash) Kind() PaymentKind { return PaymentFullCash }

// MixedSingle - одно платежное событие, разбитое на две валюты.
type MixedSingle struct {
	AmountUSD decimal.Decimal
	AmountVES decimal.Decimal
	MethodUSD string
	MethodVES string
}

func (MixedSingle) Kind() PaymentKind { return PaymentMixedSingle }

// InstallmentSimple - первый абонос, записанный прямо на заказе (legacy-форма),
// одной валютой: валюту определяет платежный способ.
type InstallmentSimple struct {
	Amount decimal.Decimal
	Method string
}

func (InstallmentSimple) Kind() PaymentKind { return PaymentInstallmentSimple }

// InstallmentMixed - первый абонос на заказе, разбитый на две валюты.
type InstallmentMixed struct {
	AmountUSD decimal.Decimal
	AmountVES decimal.Decimal
}

func (InstallmentMixed) Kind() PaymentKind { return PaymentInstallmentMixed }

// OtherPayment - боливарские рельсы (Pago Móvil, Punto de Venta и т.п.),
// по соглашению TotalUSD уже является сконвертированной полученной суммой.
type OtherPayment struct {
	Method string
}

func (OtherPayment) Kind() PaymentKind { return PaymentOther }
