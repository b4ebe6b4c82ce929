package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/logger"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

// ReportService строит отчет о доходе за период: номинальные продажи,
// реально полученный долларовый эквивалент и его разложение по
// валютам и каналам.
type ReportService struct {
	storage reportStorage
}

// reportStorage определяет интерфейс для работы с хранилищем данных отчета
type reportStorage interface {
	FindOrder(ctx context.Context, orderID int64) (*database.OrderDB, error)

	FindOrdersInRange(ctx context.Context, from, to time.Time) ([]database.OrderDB, error)

	FindConfirmedInstallments(ctx context.Context, orderID int64) ([]database.InstallmentDB, error)

	FindConfirmedInstallmentsInRange(ctx context.Context, from, to time.Time) ([]database.InstallmentDB, error)
}

// NewReportService создает новый экземпляр ReportService с заданным хранилищем
func NewReportService(storage reportStorage) *ReportService {
	return &ReportService{storage: storage}
}

// orderContext - кешированный контекст заказа при построении отчета:
// доменная модель и масштаб, приводящий сырые слагаемые к итогам
// после однократного ограничения суммой заказа.
type orderContext struct {
	order  models.Order
	factor decimal.Decimal
	err    error
}

// ReportFor строит отчет о доходе за календарный период [from, to]
// (обе границы включительно). В продажи попадают заказы, созданные
// в периоде; в полученное - их оплата при создании плюс абоносы,
// записанные в периоде, в том числе по заказам прошлых периодов.
// Абоносы, записанные после периода, в полученное не входят, даже если
// их заказ создан в периоде: каждый платеж учитывается в периоде своей
// даты и ровно один раз.
// Каждое слагаемое масштабируется коэффициентом своего заказа, поэтому
// разложение сходится с итогом и переплата не завышает доход.
func (s *ReportService) ReportFor(ctx context.Context, from, to utils.CalendarDate) (models.IncomeReport, error) {
	rangeFrom := from.Time
	rangeTo := to.Next().Time

	orderRows, err := s.storage.FindOrdersInRange(ctx, rangeFrom, rangeTo)
	if err != nil {
		return models.IncomeReport{}, fmt.Errorf("не удалось получить заказы периода: %w", err)
	}

	installmentRows, err := s.storage.FindConfirmedInstallmentsInRange(ctx, rangeFrom, rangeTo)
	if err != nil {
		return models.IncomeReport{}, fmt.Errorf("не удалось получить абоносы периода: %w", err)
	}

	report := models.IncomeReport{From: from, To: to}
	contexts := make(map[int64]orderContext)

	var dataErrs *multierror.Error
	excludedIDs := make(map[int64]bool)

	// Заказ исключается ровно один раз, сколько бы строк на него ни ссылалось.
	exclude := func(orderID int64, err error) {
		if excludedIDs[orderID] {
			return
		}
		excludedIDs[orderID] = true
		report.Excluded = append(report.Excluded, models.OrderDataError{OrderID: orderID, Reason: err.Error()})
		dataErrs = multierror.Append(dataErrs, fmt.Errorf("заказ %d: %w", orderID, err))
	}

	// Заказы периода: номинальные продажи и оплата при создании.
	for _, row := range orderRows {
		octx := s.orderContext(ctx, contexts, &row)
		if octx.err != nil {
			exclude(row.ID, octx.err)
			continue
		}
		if octx.order.Closed() {
			continue
		}

		report.TotalSalesUSD = report.TotalSalesUSD.Add(octx.order.TotalUSD)
		report.Orders++

		legs, err := orderPaymentLegs(octx.order)
		if err != nil {
			exclude(row.ID, err)
			continue
		}
		accumulateLegs(&report.Breakdown, legs, octx.factor)
	}

	// Абоносы периода: масштаб берется у родительского заказа,
	// даже если сам заказ создан вне периода.
	for _, row := range installmentRows {
		octx := s.parentContext(ctx, contexts, row.OrderID)
		if octx.err != nil {
			exclude(row.OrderID, octx.err)
			continue
		}
		if octx.order.Closed() {
			continue
		}

		legs, err := installmentLegs(row.ToModel(), octx.order.RateAtOrder)
		if err != nil {
			exclude(row.OrderID, err)
			continue
		}
		accumulateLegs(&report.Breakdown, legs, octx.factor)
	}

	// Итог полученного равен сумме разложения по построению.
	report.TotalReceivedUSD = report.Breakdown.TotalUSD()

	if dataErrs != nil {
		logger.Log.Warn("часть заказов исключена из отчета о доходе",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(dataErrs),
		)
	}

	return report, nil
}

// orderContext возвращает кешированный контекст заказа, при необходимости
// собирая модель и коэффициент из строки row.
func (s *ReportService) orderContext(ctx context.Context, cache map[int64]orderContext, row *database.OrderDB) orderContext {
	if cached, ok := cache[row.ID]; ok {
		return cached
	}

	octx := s.buildContext(ctx, row)
	cache[row.ID] = octx
	return octx
}

// parentContext поднимает контекст родительского заказа абоноса из базы.
func (s *ReportService) parentContext(ctx context.Context, cache map[int64]orderContext, orderID int64) orderContext {
	if cached, ok := cache[orderID]; ok {
		return cached
	}

	row, err := s.storage.FindOrder(ctx, orderID)
	if err != nil {
		octx := orderContext{err: err}
		cache[orderID] = octx
		return octx
	}

	octx := s.buildContext(ctx, row)
	cache[orderID] = octx
	return octx
}

func (s *ReportService) buildContext(ctx context.Context, row *database.OrderDB) orderContext {
	order, err := row.ToModel()
	if err != nil {
		return orderContext{err: err}
	}

	installmentRows, err := s.storage.FindConfirmedInstallments(ctx, order.ID)
	if err != nil {
		return orderContext{err: err}
	}

	installments := make([]models.InstallmentPayment, 0, len(installmentRows))
	for _, item := range installmentRows {
		installments = append(installments, item.ToModel())
	}

	settlement, err := ResolveOrder(order, installments)
	if err != nil {
		return orderContext{err: err}
	}

	return orderContext{order: order, factor: capFactor(settlement)}
}

// capFactor - масштаб, приводящий сырые слагаемые заказа к его итогу
// после однократного ограничения. Без переплаты равен единице.
func capFactor(settlement models.OrderSettlement) decimal.Decimal {
	raw := settlement.AtOrderUSD.Add(settlement.InstallmentsUSD)
	if raw.LessThanOrEqual(settlement.ReceivedUSD) || raw.Sign() == 0 {
		return decimal.NewFromInt(1)
	}
	return settlement.ReceivedUSD.Div(raw)
}

func accumulateLegs(breakdown *models.IncomeBreakdown, legs []paymentLeg, factor decimal.Decimal) {
	for _, leg := range legs {
		amount := leg.amountUSD.Mul(factor)

		switch {
		case leg.currency == models.CurrencyUSD && leg.channel == channelCash:
			breakdown.USDCash = breakdown.USDCash.Add(amount)
		case leg.currency == models.CurrencyUSD && leg.channel == channelMixed:
			breakdown.USDMixed = breakdown.USDMixed.Add(amount)
		case leg.currency == models.CurrencyUSD && leg.channel == channelInstallment:
			breakdown.USDInstallments = breakdown.USDInstallments.Add(amount)
		case leg.currency == models.CurrencyVES && leg.channel == channelMixed:
			breakdown.VESMixedUSD = breakdown.VESMixedUSD.Add(amount)
		case leg.currency == models.CurrencyVES && leg.channel == channelInstallment:
			breakdown.VESInstallmentsUSD = breakdown.VESInstallmentsUSD.Add(amount)
		}
	}
}
