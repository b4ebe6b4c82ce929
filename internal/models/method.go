package models

import "strings"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyVES Currency = "VES"
)

// Платежные способы, встречающиеся в данных магазина.
const (
	MethodCashUSD      = "Efectivo (USD)"
	MethodZelle        = "Zelle"
	MethodCashVES      = "Efectivo (Bs)"
	MethodPagoMovil    = "Pago Móvil"
	MethodTransferVES  = "Transferencia"
	MethodPuntoDeVenta = "Punto de Venta"
)

// MethodCurrency возвращает валюту платежного способа.
// Долларовые рельсы - наличные доллары и Zelle; все остальное
// (Pago Móvil, переводы, POS-терминал, наличные боливары) считается
// деноминированным в боливарах.
func MethodCurrency(method string) Currency {
	m := strings.ToLower(method)

	if strings.Contains(m, "zelle") || strings.Contains(m, "usd") || strings.Contains(m, "$") {
		return CurrencyUSD
	}
	// "Efectivo" без явной пометки Bs означает наличные доллары.
	if strings.Contains(m, "efectivo") && !strings.Contains(m, "bs") {
		return CurrencyUSD
	}

	return CurrencyVES
}
