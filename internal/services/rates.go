package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/database"
	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

// Определение пользовательских ошибок истории курса
var (
	ErrNoRateAvailable = errors.New("история курса пуста на запрошенную дату")
)

// rateTolerance - минимальное отличие кандидата от действующего курса,
// при котором записывается новое наблюдение того же дня.
var rateTolerance = decimal.RequireFromString("0.01")

// RateService управляет историей наблюдений официального курса Bs/$.
type RateService struct {
	storage rateStorage
	// mu сериализует проверку-и-вставку за день: два конкурирующих опроса фида
	// не должны оба записать "новый" курс.
	mu sync.Mutex
}

// rateStorage определяет интерфейс для работы с хранилищем наблюдений курса
type rateStorage interface {
	CreateRateObservation(ctx context.Context, item database.RateObservationDB) (*database.RateObservationDB, error)

	FindLatestRateForDate(ctx context.Context, date time.Time) (*database.RateObservationDB, error)

	FindLatestRateOnOrBefore(ctx context.Context, date time.Time) (*database.RateObservationDB, error)
}

// NewRateService создает новый экземпляр RateService с заданным хранилищем
func NewRateService(storage rateStorage) *RateService {
	return &RateService{storage: storage}
}

// LatestRate возвращает авторитетный курс на указанный день: самое позднее
// наблюдение этого дня, а при его отсутствии - самое свежее наблюдение
// не позже этого дня. Пустая история дает ErrNoRateAvailable: безопасного
// курса по умолчанию не существует.
func (r *RateService) LatestRate(ctx context.Context, date utils.CalendarDate) (models.RateObservation, error) {
	item, err := r.storage.FindLatestRateForDate(ctx, date.Time)
	if err != nil {
		if !errors.Is(err, database.ErrNoRateRows) {
			return models.RateObservation{}, fmt.Errorf("не удалось получить курс за день: %w", err)
		}

		item, err = r.storage.FindLatestRateOnOrBefore(ctx, date.Time)
		if err != nil {
			if errors.Is(err, database.ErrNoRateRows) {
				return models.RateObservation{}, ErrNoRateAvailable
			}
			return models.RateObservation{}, fmt.Errorf("не удалось получить последний курс: %w", err)
		}
	}

	return item.ToModel(), nil
}

// RecordObservation записывает наблюдение курса с дедупликацией за день:
// первое наблюдение дня записывается всегда; последующее - только если
// кандидат отличается от действующего курса больше чем на допуск.
// Повторная подача того же значения идемпотентна - история не растет
// на каждом опросе неизменившегося внешнего курса.
func (r *RateService) RecordObservation(ctx context.Context, candidate decimal.Decimal, now time.Time) (models.RateRecordResult, error) {
	if candidate.Sign() <= 0 {
		return models.RateRecordResult{}, ErrInvalidRate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	today := utils.NewCalendarDate(now)

	prior, err := r.storage.FindLatestRateForDate(ctx, today.Time)
	if err != nil && !errors.Is(err, database.ErrNoRateRows) {
		return models.RateRecordResult{}, fmt.Errorf("не удалось проверить курс за день: %w", err)
	}

	// За сегодня уже есть наблюдение и кандидат в пределах допуска -
	// история остается без изменений.
	if prior != nil && candidate.Sub(prior.Value).Abs().LessThanOrEqual(rateTolerance) {
		return models.RateRecordResult{Inserted: false, Rate: prior.ToModel()}, nil
	}

	created, err := r.storage.CreateRateObservation(ctx, database.RateObservationDB{
		Date:       today.Time,
		Value:      candidate,
		ObservedAt: now,
	})
	if err != nil {
		// Конкурент успел раньше: возвращаем его наблюдение как действующее.
		if errors.Is(err, database.ErrDuplicateObservation) {
			existing, findErr := r.storage.FindLatestRateForDate(ctx, today.Time)
			if findErr != nil {
				return models.RateRecordResult{}, fmt.Errorf("не удалось получить конкурентное наблюдение: %w", findErr)
			}
			return models.RateRecordResult{Inserted: false, Rate: existing.ToModel()}, nil
		}
		return models.RateRecordResult{}, fmt.Errorf("не удалось записать наблюдение курса: %w", err)
	}

	return models.RateRecordResult{Inserted: true, Rate: created.ToModel()}, nil
}
