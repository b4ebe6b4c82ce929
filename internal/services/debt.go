package services

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/logger"
	"github.com/ventafacil/ledger/internal/models"
)

// settleTolerance - допуск, поглощающий шум округления: заказ с остатком
// не больше этого значения считается полностью оплаченным.
var settleTolerance = decimal.RequireFromString("0.01")

// DebtService сводит классификацию оплаты заказа и журнал абоносов
// в единый недублированный итог "получено/остаток" и агрегирует
// задолженность по клиентам.
type DebtService struct {
	storage debtStorage
}

// debtStorage определяет интерфейс для работы с хранилищем заказов и абоносов
type debtStorage interface {
	FindOrder(ctx context.Context, orderID int64) (*database.OrderDB, error)

	FindOrdersByCustomer(ctx context.Context, customerID string) ([]database.OrderDB, error)

	FindCustomersWithOrders(ctx context.Context) ([]string, error)

	FindConfirmedInstallments(ctx context.Context, orderID int64) ([]database.InstallmentDB, error)
}

// NewDebtService создает новый экземпляр DebtService с заданным хранилищем
func NewDebtService(storage debtStorage) *DebtService {
	return &DebtService{storage: storage}
}

// ResolveOrder вычисляет итог по заказу из его неизменного снимка:
// оплата при создании и строки журнала складываются (это два независимых
// журнала движений), а ограничение суммой заказа применяется ровно один раз,
// к объединенному итогу. Так legacy-дубль (встроенный абонос, повторенный
// строкой журнала) не завышает доход, а остаток не уходит в минус.
func ResolveOrder(order models.Order, installments []models.InstallmentPayment) (models.OrderSettlement, error) {
	classification, err := ClassifyPayment(order)
	if err != nil {
		return models.OrderSettlement{}, err
	}

	installmentsUSD, err := InstallmentsTotalUSD(installments, order.RateAtOrder)
	if err != nil {
		return models.OrderSettlement{}, err
	}

	received := classification.ReceivedUSD.Add(installmentsUSD)
	if received.GreaterThan(order.TotalUSD) {
		received = order.TotalUSD
	}

	outstanding := order.TotalUSD.Sub(received)
	if outstanding.Sign() < 0 {
		outstanding = decimal.Decimal{}
	}

	return models.OrderSettlement{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		Kind:            classification.Kind,
		TotalUSD:        order.TotalUSD,
		AtOrderUSD:      classification.ReceivedUSD,
		InstallmentsUSD: installmentsUSD,
		ReceivedUSD:     received,
		OutstandingUSD:  outstanding,
		Settled:         outstanding.LessThanOrEqual(settleTolerance),
	}, nil
}

// SettlementFor возвращает итог по одному заказу.
func (s *DebtService) SettlementFor(ctx context.Context, orderID int64) (models.OrderSettlement, error) {
	row, err := s.storage.FindOrder(ctx, orderID)
	if err != nil {
		return models.OrderSettlement{}, err
	}

	order, err := row.ToModel()
	if err != nil {
		return models.OrderSettlement{}, err
	}

	installments, err := s.confirmedInstallments(ctx, orderID)
	if err != nil {
		return models.OrderSettlement{}, err
	}

	return ResolveOrder(order, installments)
}

// CustomerDebt возвращает задолженность клиента по всем его незакрытым заказам.
// Ошибки данных отдельных заказов собираются в Excluded, не срывая расчет
// по остальным: один испорченный заказ не должен гасить весь отчет клиента.
func (s *DebtService) CustomerDebt(ctx context.Context, customerID string) (models.CustomerDebt, error) {
	rows, err := s.storage.FindOrdersByCustomer(ctx, customerID)
	if err != nil {
		return models.CustomerDebt{}, fmt.Errorf("не удалось получить заказы клиента: %w", err)
	}

	debt := models.CustomerDebt{CustomerID: customerID}

	var dataErrs *multierror.Error

	for _, row := range rows {
		order, err := row.ToModel()
		if err != nil {
			debt.Excluded = append(debt.Excluded, models.OrderDataError{OrderID: row.ID, Reason: err.Error()})
			dataErrs = multierror.Append(dataErrs, err)
			continue
		}

		if order.Closed() {
			continue
		}

		installments, err := s.confirmedInstallments(ctx, order.ID)
		if err != nil {
			return models.CustomerDebt{}, err
		}

		settlement, err := ResolveOrder(order, installments)
		if err != nil {
			debt.Excluded = append(debt.Excluded, models.OrderDataError{OrderID: order.ID, Reason: err.Error()})
			dataErrs = multierror.Append(dataErrs, fmt.Errorf("заказ %d: %w", order.ID, err))
			continue
		}

		// Заказы в пределах допуска считаются закрытыми и в список долга не попадают.
		if settlement.OutstandingUSD.GreaterThan(settleTolerance) {
			debt.DebtUSD = debt.DebtUSD.Add(settlement.OutstandingUSD)
			debt.Orders = append(debt.Orders, settlement)
		}
	}

	if dataErrs != nil {
		logger.Log.Warn("часть заказов клиента исключена из расчета долга",
			zap.String("customerID", customerID),
			zap.Error(dataErrs),
		)
	}

	return debt, nil
}

// Debtors возвращает задолженность по всем клиентам, у которых есть
// хотя бы один незакрытый заказ или заказ с ошибкой данных.
func (s *DebtService) Debtors(ctx context.Context) ([]models.CustomerDebt, error) {
	customers, err := s.storage.FindCustomersWithOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список клиентов: %w", err)
	}

	var result []models.CustomerDebt

	for _, customerID := range customers {
		debt, err := s.CustomerDebt(ctx, customerID)
		if err != nil {
			return nil, err
		}

		if debt.DebtUSD.Sign() > 0 || len(debt.Excluded) > 0 {
			result = append(result, debt)
		}
	}

	return result, nil
}

func (s *DebtService) confirmedInstallments(ctx context.Context, orderID int64) ([]models.InstallmentPayment, error) {
	rows, err := s.storage.FindConfirmedInstallments(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить абоносы заказа: %w", err)
	}

	result := make([]models.InstallmentPayment, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.ToModel())
	}

	return result, nil
}
