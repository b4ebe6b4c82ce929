package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/database"
)

var (
	ErrInvalidTotal = errors.New("сумма заказа должна быть положительной")
	ErrOrderClosed  = errors.New("заказ аннулирован или отменен")
)

// OrderService выполняет корректировку суммы заказа по результатам сверки.
type OrderService struct {
	storage orderStorage
}

// orderStorage определяет интерфейс для работы с хранилищем заказов
type orderStorage interface {
	FindOrder(ctx context.Context, orderID int64) (*database.OrderDB, error)

	UpdateOrderTotal(ctx context.Context, orderID int64, newTotal decimal.Decimal) error
}

// NewOrderService создает новый экземпляр OrderService с заданным хранилищем
func NewOrderService(storage orderStorage) *OrderService {
	return &OrderService{storage: storage}
}

// CorrectTotal заменяет сумму заказа на выверенную. Оплата заказа
// не меняется: итог и остаток пересчитываются от новой суммы при
// следующем чтении.
func (s *OrderService) CorrectTotal(ctx context.Context, orderID int64, newTotal decimal.Decimal) error {
	if newTotal.Sign() <= 0 {
		return ErrInvalidTotal
	}

	row, err := s.storage.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}

	order, err := row.ToModel()
	if err != nil {
		return err
	}
	if order.Closed() {
		return ErrOrderClosed
	}

	if err := s.storage.UpdateOrderTotal(ctx, orderID, newTotal); err != nil {
		return fmt.Errorf("не удалось скорректировать сумму заказа: %w", err)
	}

	return nil
}
