package services

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Определение пользовательских ошибок конвертации
var (
	ErrInvalidRate = errors.New("курс должен быть положительным")
)

// Внутренняя арифметика не округляет: округление допустимо только
// на границе представления. Точности деления decimal по умолчанию (16 знаков)
// достаточно для курсов с 8 дробными разрядами.

// ToUSD конвертирует сумму в боливарах в доллары по заданному курсу.
func ToUSD(amountVES, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.Sign() <= 0 {
		return decimal.Decimal{}, ErrInvalidRate
	}
	return amountVES.Div(rate), nil
}

// ToVES конвертирует сумму в долларах в боливары по заданному курсу.
func ToVES(amountUSD, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.Sign() <= 0 {
		return decimal.Decimal{}, ErrInvalidRate
	}
	return amountUSD.Mul(rate), nil
}
