package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/utils"
)

//go:generate mockgen -destination=mocks/mock_rates.go . RateService
type RateService interface {
	LatestRate(ctx context.Context, date utils.CalendarDate) (RateObservation, error)

	RecordObservation(ctx context.Context, candidate decimal.Decimal, now time.Time) (RateRecordResult, error)
}

//go:generate mockgen -destination=mocks/mock_installments.go . InstallmentService
type InstallmentService interface {
	Create(ctx context.Context, orderID int64, input NewInstallment) (InstallmentPayment, error)

	Void(ctx context.Context, installmentID int64) error

	ConfirmedFor(ctx context.Context, orderID int64) ([]InstallmentPayment, error)
}

//go:generate mockgen -destination=mocks/mock_orders.go . OrderService
type OrderService interface {
	CorrectTotal(ctx context.Context, orderID int64, newTotal decimal.Decimal) error
}

//go:generate mockgen -destination=mocks/mock_debt.go . DebtService
type DebtService interface {
	SettlementFor(ctx context.Context, orderID int64) (OrderSettlement, error)

	CustomerDebt(ctx context.Context, customerID string) (CustomerDebt, error)

	Debtors(ctx context.Context) ([]CustomerDebt, error)
}

//go:generate mockgen -destination=mocks/mock_report.go . ReportService
type ReportService interface {
	ReportFor(ctx context.Context, from, to utils.CalendarDate) (IncomeReport, error)
}
