package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/models"
	"github.com/ventafacil/ledger/internal/utils"
)

var (
	ErrInstallmentNotFound      = errors.New("абонос не найден")
	ErrInstallmentAlreadyVoided = errors.New("абонос уже аннулирован")
)

// SQL-запросы для работы с абоносами
const (
	InsertInstallmentQuery = `
		INSERT INTO
			installment_payments (order_id, amount_usd, amount_ves, rate_at_payment, method, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, paid_at
	`
	SelectInstallmentQuery = `
		SELECT
			id,
			order_id,
			amount_usd,
			amount_ves,
			rate_at_payment,
			method,
			reference,
			status,
			paid_at
		FROM
		    installment_payments
		WHERE
		    id = $1
	`
	SelectConfirmedInstallmentsQuery = `
		SELECT
			id,
			order_id,
			amount_usd,
			amount_ves,
			rate_at_payment,
			method,
			reference,
			status,
			paid_at
		FROM
		    installment_payments
		WHERE
		    order_id = $1
			AND status = 'confirmed'
		ORDER BY
		    paid_at
	`
	SelectConfirmedInstallmentsInRangeQuery = `
		SELECT
			id,
			order_id,
			amount_usd,
			amount_ves,
			rate_at_payment,
			method,
			reference,
			status,
			paid_at
		FROM
		    installment_payments
		WHERE
		    paid_at >= $1 AND paid_at < $2
			AND status = 'confirmed'
		ORDER BY
		    paid_at
	`
	// Аннулирование - единственная разрешенная мутация строки абоноса.
	VoidInstallmentQuery = `
		UPDATE
			installment_payments
		SET
			status = 'voided'
		WHERE
		    id = $1
			AND status = 'confirmed'
	`
)

// InstallmentDB - строка частичного платежа из базы данных.
type InstallmentDB struct {
	ID            int64
	OrderID       int64
	AmountUSD     decimal.Decimal
	AmountVES     decimal.Decimal
	RateAtPayment decimal.NullDecimal
	Method        string
	Reference     string
	Status        string
	PaidAt        time.Time
}

// ToModel собирает доменную модель абоноса.
func (i InstallmentDB) ToModel() models.InstallmentPayment {
	payment := models.InstallmentPayment{
		ID:        i.ID,
		OrderID:   i.OrderID,
		AmountUSD: i.AmountUSD,
		AmountVES: i.AmountVES,
		Method:    i.Method,
		Reference: i.Reference,
		Status:    models.InstallmentStatus(i.Status),
		PaidAt:    utils.RFC3339Date{Time: i.PaidAt},
	}
	// NULL-курс означает legacy-строку; нулевое значение модели
	// сигнализирует о необходимости отката на курс заказа.
	if i.RateAtPayment.Valid {
		payment.RateAtPayment = i.RateAtPayment.Decimal
	}
	return payment
}

func scanInstallment(row pgx.Row) (*InstallmentDB, error) {
	item := &InstallmentDB{}

	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.AmountUSD,
		&item.AmountVES,
		&item.RateAtPayment,
		&item.Method,
		&item.Reference,
		&item.Status,
		&item.PaidAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// CreateInstallment добавляет новый подтвержденный абонос в журнал.
func (d *Database) CreateInstallment(ctx context.Context, item InstallmentDB) (*InstallmentDB, error) {
	row := d.db.QueryRow(ctx, InsertInstallmentQuery,
		item.OrderID,
		item.AmountUSD,
		item.AmountVES,
		item.RateAtPayment,
		item.Method,
		item.Reference,
	)

	if err := row.Scan(&item.ID, &item.PaidAt); err != nil {
		return nil, fmt.Errorf("не удалось создать абонос: %w", err)
	}
	item.Status = string(models.InstallmentStatusConfirmed)

	return &item, nil
}

// FindInstallment ищет абонос по его ID.
func (d *Database) FindInstallment(ctx context.Context, installmentID int64) (*InstallmentDB, error) {
	item, err := scanInstallment(d.db.QueryRow(ctx, SelectInstallmentQuery, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInstallmentNotFound
		}
		return nil, fmt.Errorf("ошибка поиска абоноса: %w", err)
	}

	return item, nil
}

// VoidInstallment мягко аннулирует подтвержденный абонос.
func (d *Database) VoidInstallment(ctx context.Context, installmentID int64) error {
	tag, err := d.db.Exec(ctx, VoidInstallmentQuery, installmentID)
	if err != nil {
		return fmt.Errorf("ошибка аннулирования абоноса: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Либо строки нет, либо она уже аннулирована - различаем.
		if _, err := d.FindInstallment(ctx, installmentID); err != nil {
			return err
		}
		return ErrInstallmentAlreadyVoided
	}

	return nil
}

// FindConfirmedInstallments возвращает подтвержденные абоносы заказа.
func (d *Database) FindConfirmedInstallments(ctx context.Context, orderID int64) ([]InstallmentDB, error) {
	return d.queryInstallments(ctx, SelectConfirmedInstallmentsQuery, orderID)
}

// FindConfirmedInstallmentsInRange возвращает подтвержденные абоносы,
// записанные в полуинтервале [from, to), независимо от даты их заказа.
func (d *Database) FindConfirmedInstallmentsInRange(ctx context.Context, from, to time.Time) ([]InstallmentDB, error) {
	return d.queryInstallments(ctx, SelectConfirmedInstallmentsInRangeQuery, from, to)
}

func (d *Database) queryInstallments(ctx context.Context, query string, args ...interface{}) ([]InstallmentDB, error) {
	var result []InstallmentDB

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска абоносов: %w", err)
	}
	defer rows.Close()

	// Обрабатываем каждую строку результата
	for rows.Next() {
		item, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с абоносом: %w", err)
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}
