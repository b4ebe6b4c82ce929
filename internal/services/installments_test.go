package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

// fakeInstallmentStorage хранит журнал абоносов в памяти.
type fakeInstallmentStorage struct {
	orders []database.OrderDB
	rows   []database.InstallmentDB
	nextID int64
}

func (f *fakeInstallmentStorage) FindOrder(_ context.Context, orderID int64) (*database.OrderDB, error) {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			return &f.orders[i], nil
		}
	}
	return nil, database.ErrOrderNotFound
}

func (f *fakeInstallmentStorage) CreateInstallment(_ context.Context, item database.InstallmentDB) (*database.InstallmentDB, error) {
	f.nextID++
	item.ID = f.nextID
	item.Status = string(models.InstallmentStatusConfirmed)
	item.PaidAt = time.Now()
	f.rows = append(f.rows, item)
	return &item, nil
}

func (f *fakeInstallmentStorage) VoidInstallment(_ context.Context, installmentID int64) error {
	for i := range f.rows {
		if f.rows[i].ID != installmentID {
			continue
		}
		if f.rows[i].Status == string(models.InstallmentStatusVoided) {
			return database.ErrInstallmentAlreadyVoided
		}
		f.rows[i].Status = string(models.InstallmentStatusVoided)
		return nil
	}
	return database.ErrInstallmentNotFound
}

func (f *fakeInstallmentStorage) FindConfirmedInstallments(_ context.Context, orderID int64) ([]database.InstallmentDB, error) {
	var result []database.InstallmentDB
	for _, item := range f.rows {
		if item.OrderID == orderID && item.Status == string(models.InstallmentStatusConfirmed) {
			result = append(result, item)
		}
	}
	return result, nil
}

// fakeRateSource отдает фиксированный курс либо ошибку пустой истории.
type fakeRateSource struct {
	rate decimal.Decimal
}

func (f *fakeRateSource) LatestRate(_ context.Context, _ utils.CalendarDate) (models.RateObservation, error) {
	if f.rate.Sign() <= 0 {
		return models.RateObservation{}, ErrNoRateAvailable
	}
	return models.RateObservation{Value: f.rate}, nil
}

func TestCreateInstallment(t *testing.T) {
	ctx := context.Background()
	storage := &fakeInstallmentStorage{orders: []database.OrderDB{cashOrderRow(1, "maria", "100")}}
	service := NewInstallmentService(storage, &fakeRateSource{rate: dec("169.98")})

	created, err := service.Create(ctx, 1, models.NewInstallment{
		AmountUSD: dec("20"),
		Method:    "Zelle",
		Reference: "ref-1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, models.InstallmentStatusConfirmed, created.Status)
	assert.Equal(t, "ref-1", created.Reference)
	// Долларовый абонос не требует курса.
	assert.True(t, created.Legacy())
}

func TestCreateInstallmentFillsRateForVES(t *testing.T) {
	ctx := context.Background()
	storage := &fakeInstallmentStorage{orders: []database.OrderDB{cashOrderRow(1, "maria", "100")}}
	service := NewInstallmentService(storage, &fakeRateSource{rate: dec("169.98")})

	created, err := service.Create(ctx, 1, models.NewInstallment{
		AmountVES: dec("1699.80"),
		Method:    "Pago Móvil",
	})

	require.NoError(t, err)
	assert.True(t, created.RateAtPayment.Equal(dec("169.98")), "rate %s", created.RateAtPayment)
	// Пустая ссылка платежа заменяется сгенерированной.
	assert.NotEmpty(t, created.Reference)
}

func TestCreateInstallmentValidation(t *testing.T) {
	ctx := context.Background()
	storage := &fakeInstallmentStorage{orders: []database.OrderDB{cashOrderRow(1, "maria", "100")}}
	service := NewInstallmentService(storage, &fakeRateSource{})

	_, err := service.Create(ctx, 1, models.NewInstallment{})
	assert.ErrorIs(t, err, ErrEmptyInstallment)

	_, err = service.Create(ctx, 1, models.NewInstallment{AmountUSD: dec("-5")})
	assert.ErrorIs(t, err, ErrNegativeInstallment)

	_, err = service.Create(ctx, 99, models.NewInstallment{AmountUSD: dec("5")})
	assert.ErrorIs(t, err, database.ErrOrderNotFound)

	// Боливарский абонос без курса и без истории курса записать нельзя.
	_, err = service.Create(ctx, 1, models.NewInstallment{AmountVES: dec("100")})
	assert.ErrorIs(t, err, ErrNoRateAvailable)
}

func TestVoidInstallment(t *testing.T) {
	ctx := context.Background()
	storage := &fakeInstallmentStorage{orders: []database.OrderDB{cashOrderRow(1, "maria", "100")}}
	service := NewInstallmentService(storage, &fakeRateSource{})

	created, err := service.Create(ctx, 1, models.NewInstallment{AmountUSD: dec("20")})
	require.NoError(t, err)

	require.NoError(t, service.Void(ctx, created.ID))
	assert.ErrorIs(t, service.Void(ctx, created.ID), database.ErrInstallmentAlreadyVoided)
	assert.ErrorIs(t, service.Void(ctx, 99), database.ErrInstallmentNotFound)

	confirmed, err := service.ConfirmedFor(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, confirmed)
}
