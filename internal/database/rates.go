package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

var (
	ErrNoRateRows = errors.New("наблюдения курса отсутствуют")
	// ErrDuplicateObservation - конкурирующая запись уже вставила наблюдение
	// с той же датой и меткой времени; вызывающий трактует это как no-op.
	ErrDuplicateObservation = errors.New("наблюдение курса уже записано")
)

// SQL-запросы для работы с историей курса
const (
	InsertRateObservationQuery = `
		INSERT INTO
			exchange_rates (rate_date, rate_value, observed_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	SelectLatestRateForDateQuery = `
		SELECT
			id,
			rate_date,
			rate_value,
			observed_at
		FROM
		    exchange_rates
		WHERE
		    rate_date = $1
		ORDER BY
		    observed_at DESC
		LIMIT 1
	`
	SelectLatestRateOnOrBeforeQuery = `
		SELECT
			id,
			rate_date,
			rate_value,
			observed_at
		FROM
		    exchange_rates
		WHERE
		    rate_date <= $1
		ORDER BY
		    rate_date DESC, observed_at DESC
		LIMIT 1
	`
)

// RateObservationDB - строка наблюдения курса из базы данных.
type RateObservationDB struct {
	ID         int64
	Date       time.Time
	Value      decimal.Decimal
	ObservedAt time.Time
}

// ToModel собирает доменную модель наблюдения курса.
func (r RateObservationDB) ToModel() models.RateObservation {
	return models.RateObservation{
		ID:         r.ID,
		Date:       utils.NewCalendarDate(r.Date),
		Value:      r.Value,
		ObservedAt: utils.RFC3339Date{Time: r.ObservedAt},
	}
}

func scanRateObservation(row pgx.Row) (*RateObservationDB, error) {
	item := &RateObservationDB{}

	err := row.Scan(
		&item.ID,
		&item.Date,
		&item.Value,
		&item.ObservedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// CreateRateObservation добавляет наблюдение курса за календарный день.
func (d *Database) CreateRateObservation(ctx context.Context, item RateObservationDB) (*RateObservationDB, error) {
	err := d.db.QueryRow(ctx, InsertRateObservationQuery,
		item.Date,
		item.Value,
		item.ObservedAt,
	).Scan(&item.ID)
	if err != nil {
		var e *pgconn.PgError
		// Уникальный индекс (rate_date, observed_at) - подстраховка от
		// конкурирующих опросов фида; конфликт трактуется как no-op.
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateObservation
		}
		return nil, fmt.Errorf("не удалось записать наблюдение курса: %w", err)
	}

	return &item, nil
}

// FindLatestRateForDate возвращает авторитетное (самое позднее по observed_at)
// наблюдение за указанный день.
func (d *Database) FindLatestRateForDate(ctx context.Context, date time.Time) (*RateObservationDB, error) {
	item, err := scanRateObservation(d.db.QueryRow(ctx, SelectLatestRateForDateQuery, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRateRows
		}
		return nil, fmt.Errorf("ошибка поиска курса за день: %w", err)
	}

	return item, nil
}

// FindLatestRateOnOrBefore возвращает самое свежее наблюдение не позже указанного дня.
func (d *Database) FindLatestRateOnOrBefore(ctx context.Context, date time.Time) (*RateObservationDB, error) {
	item, err := scanRateObservation(d.db.QueryRow(ctx, SelectLatestRateOnOrBeforeQuery, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRateRows
		}
		return nil, fmt.Errorf("ошибка поиска последнего курса: %w", err)
	}

	return item, nil
}
