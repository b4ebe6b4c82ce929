package models

import (
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/utils"
)

// RateObservation - датированное наблюдение официального курса Bs/$.
// Для одного дня допускается несколько наблюдений; авторитетным считается
// наблюдение с самым поздним ObservedAt.
type RateObservation struct {
	ID         int64              `json:"id"`
	Date       utils.CalendarDate `json:"date"`
	Value      decimal.Decimal    `json:"rate"`
	ObservedAt utils.RFC3339Date  `json:"observed_at"`
}

// NewRateObservation - входные данные для записи наблюдения курса.
type NewRateObservation struct {
	Value decimal.Decimal `json:"rate"`
}

// RateRecordResult - результат записи наблюдения курса.
// Inserted=false означает, что кандидат не отличался от действующего
// курса больше чем на допуск и история осталась без изменений.
type RateRecordResult struct {
	Inserted bool            `json:"inserted"`
	Rate     RateObservation `json:"rate"`
}
