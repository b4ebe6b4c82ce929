package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

// Определение пользовательских ошибок журнала абоносов
var (
	ErrEmptyInstallment    = errors.New("в абоносе нет ни одной суммы")
	ErrNegativeInstallment = errors.New("суммы абоноса не могут быть отрицательными")
)

// InstallmentService управляет журналом частичных платежей ("абоносов") по заказам.
// Журнал ведется отдельно от встроенных полей первого абоноса на заказе:
// это два независимых append-only источника движений денег, их сведением
// занимается DebtService.
type InstallmentService struct {
	storage installmentStorage
	rates   installmentRateSource
}

// installmentStorage определяет интерфейс для работы с хранилищем абоносов
type installmentStorage interface {
	FindOrder(ctx context.Context, orderID int64) (*database.OrderDB, error)

	CreateInstallment(ctx context.Context, item database.InstallmentDB) (*database.InstallmentDB, error)

	VoidInstallment(ctx context.Context, installmentID int64) error

	FindConfirmedInstallments(ctx context.Context, orderID int64) ([]database.InstallmentDB, error)
}

// installmentRateSource поставляет действующий курс для новых абоносов.
type installmentRateSource interface {
	LatestRate(ctx context.Context, date utils.CalendarDate) (models.RateObservation, error)
}

// NewInstallmentService создает новый экземпляр InstallmentService.
func NewInstallmentService(storage installmentStorage, rates installmentRateSource) *InstallmentService {
	return &InstallmentService{storage: storage, rates: rates}
}

// Create записывает новый подтвержденный абонос по заказу.
// Если курс не передан, а у абоноса есть боливарская часть, берется
// действующий курс на дату записи; без доступного курса запись невозможна.
// Пустая ссылка платежа заменяется сгенерированной.
func (s *InstallmentService) Create(ctx context.Context, orderID int64, input models.NewInstallment) (models.InstallmentPayment, error) {
	if input.AmountUSD.Sign() < 0 || input.AmountVES.Sign() < 0 {
		return models.InstallmentPayment{}, ErrNegativeInstallment
	}
	if input.AmountUSD.Sign() == 0 && input.AmountVES.Sign() == 0 {
		return models.InstallmentPayment{}, ErrEmptyInstallment
	}

	// Заказ должен существовать.
	if _, err := s.storage.FindOrder(ctx, orderID); err != nil {
		return models.InstallmentPayment{}, err
	}

	rate := input.RateAtPayment
	if rate.Sign() <= 0 && input.AmountVES.Sign() > 0 {
		now := time.Now()
		observation, err := s.rates.LatestRate(ctx, utils.NewCalendarDate(now))
		if err != nil {
			return models.InstallmentPayment{}, fmt.Errorf("не удалось получить курс для абоноса: %w", err)
		}
		rate = observation.Value
	}

	reference := input.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	item := database.InstallmentDB{
		OrderID:   orderID,
		AmountUSD: input.AmountUSD,
		AmountVES: input.AmountVES,
		Method:    input.Method,
		Reference: reference,
	}
	if rate.Sign() > 0 {
		item.RateAtPayment = decimal.NewNullDecimal(rate)
	}

	created, err := s.storage.CreateInstallment(ctx, item)
	if err != nil {
		return models.InstallmentPayment{}, fmt.Errorf("не удалось записать абонос: %w", err)
	}

	return created.ToModel(), nil
}

// Void мягко аннулирует подтвержденный абонос. Строки журнала не удаляются.
func (s *InstallmentService) Void(ctx context.Context, installmentID int64) error {
	return s.storage.VoidInstallment(ctx, installmentID)
}

// ConfirmedFor возвращает подтвержденные абоносы заказа.
func (s *InstallmentService) ConfirmedFor(ctx context.Context, orderID int64) ([]models.InstallmentPayment, error) {
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
