package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/models"
)

// Определение пользовательских ошибок классификации
var (
	// ErrMissingRate - заказу нужна конвертация валюты, но применимого курса нет.
	// Ошибка данных конкретного заказа: в пакетных расчетах она прикрепляется
	// к заказу, а не срывает пакет.
	ErrMissingRate = errors.New("у заказа отсутствует применимый курс")
	// ErrUnknownPaymentVariant - вариант оплаты вне закрытого множества.
	ErrUnknownPaymentVariant = errors.New("неизвестный вариант оплаты")
)

// paymentChannel - канал поступления денег для разложения дохода.
type paymentChannel int

const (
	channelCash paymentChannel = iota
	channelMixed
	channelInstallment
)

// paymentLeg - одно слагаемое полученных денег: валюта, канал
// и долларовый эквивалент.
type paymentLeg struct {
	currency  models.Currency
	channel   paymentChannel
	amountUSD decimal.Decimal
}

// PaymentClassification - результат классификации оплаты заказа.
// ReceivedUSD - долларовый эквивалент, полученный в момент создания заказа
// (без учета последующих строк журнала абоносов), ограниченный суммой заказа.
type PaymentClassification struct {
	Kind        models.PaymentKind
	ReceivedUSD decimal.Decimal
}

// ClassifyPayment определяет вид оплаты заказа и полученную при создании сумму.
// Ограничение суммой заказа применяется всегда: ошибки ввода в исходных данных
// неоднократно записывали полученное больше суммы заказа, и отчет о доходе
// не должен превышать продажи.
func ClassifyPayment(order models.Order) (PaymentClassification, error) {
	legs, err := orderPaymentLegs(order)
	if err != nil {
		return PaymentClassification{}, err
	}

	received := sumLegsUSD(legs)
	if received.GreaterThan(order.TotalUSD) {
		received = order.TotalUSD
	}

	return PaymentClassification{
		Kind:        order.Payment.Kind(),
		ReceivedUSD: received,
	}, nil
}

// orderPaymentLegs раскладывает оплату, записанную на самом заказе,
// на слагаемые. Полное сопоставление по закрытому множеству вариантов.
func orderPaymentLegs(order models.Order) ([]paymentLeg, error) {
	switch p := order.Payment.(type) {
	case models.FullCash:
		return []paymentLeg{{models.CurrencyUSD, channelCash, order.TotalUSD}}, nil

	case models.MixedSingle:
		legs := []paymentLeg{{models.CurrencyUSD, channelMixed, p.AmountUSD}}
		if p.AmountVES.Sign() > 0 {
			converted, err := ToUSD(p.AmountVES, order.RateAtOrder)
			if err != nil {
				return nil, ErrMissingRate
			}
			legs = append(legs, paymentLeg{models.CurrencyVES, channelMixed, converted})
		}
		return legs, nil

	case models.InstallmentSimple:
		// Валюту первого абоноса определяет платежный способ.
		if models.MethodCurrency(p.Method) == models.CurrencyUSD {
			return []paymentLeg{{models.CurrencyUSD, channelInstallment, p.Amount}}, nil
		}
		converted, err := ToUSD(p.Amount, order.RateAtOrder)
		if err != nil {
			return nil, ErrMissingRate
		}
		return []paymentLeg{{models.CurrencyVES, channelInstallment, converted}}, nil

	case models.InstallmentMixed:
		legs := []paymentLeg{{models.CurrencyUSD, channelInstallment, p.AmountUSD}}
		if p.AmountVES.Sign() > 0 {
			converted, err := ToUSD(p.AmountVES, order.RateAtOrder)
			if err != nil {
				return nil, ErrMissingRate
			}
			legs = append(legs, paymentLeg{models.CurrencyVES, channelInstallment, converted})
		}
		return legs, nil

	case models.OtherPayment:
		// Боливарские рельсы: TotalUSD уже является полученной суммой.
		return []paymentLeg{{models.CurrencyUSD, channelCash, order.TotalUSD}}, nil

	default:
		return nil, ErrUnknownPaymentVariant
	}
}

// installmentLegs раскладывает строку журнала абоносов на слагаемые.
// Боливарская часть конвертируется по собственному курсу строки;
// откат на курс заказа допустим только для legacy-строк без курса.
func installmentLegs(payment models.InstallmentPayment, orderRate decimal.Decimal) ([]paymentLeg, error) {
	var legs []paymentLeg

	if payment.AmountUSD.Sign() > 0 {
		legs = append(legs, paymentLeg{models.CurrencyUSD, channelInstallment, payment.AmountUSD})
	}

	if payment.AmountVES.Sign() > 0 {
		rate := payment.RateAtPayment
		if payment.Legacy() {
			rate = orderRate
		}
		converted, err := ToUSD(payment.AmountVES, rate)
		if err != nil {
			return nil, ErrMissingRate
		}
		legs = append(legs, paymentLeg{models.CurrencyVES, channelInstallment, converted})
	}

	return legs, nil
}

// InstallmentsTotalUSD - долларовый эквивалент подтвержденных абоносов заказа.
// Ограничение суммой заказа здесь НЕ применяется: оно накладывается один раз
// при сведении итога по заказу, иначе законный сигнал переплаты, нужный
// для аудита сверки, подавлялся бы дважды.
func InstallmentsTotalUSD(payments []models.InstallmentPayment, orderRate decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Decimal{}

	for _, payment := range payments {
		if payment.Status != models.InstallmentStatusConfirmed {
			continue
		}
		legs, err := installmentLegs(payment, orderRate)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(sumLegsUSD(legs))
	}

	return total, nil
}

func sumLegsUSD(legs []paymentLeg) decimal.Decimal {
	sum := decimal.Decimal{}
	for _, leg := range legs {
		sum = sum.Add(leg.amountUSD)
	}
	return sum
}
