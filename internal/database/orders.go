package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ventafacil/ledger/internal/models"
)

// Определение пользовательских ошибок
var (
	ErrOrderNotFound = errors.New("заказ не найден")
	// ErrInconsistentPayment - плоская строка заказа не сводится ровно к одному
	// варианту оплаты (например, одновременно заполнены поля двух вариантов).
	ErrInconsistentPayment = errors.New("противоречивые данные об оплате заказа")
)

// SQL-запросы для работы с заказами
const (
	orderColumns = `
		id,
		customer_id,
		total_usd,
		rate_at_order,
		status,
		created_at,
		is_mixed,
		is_installment,
		installment_kind,
		mixed_usd,
		mixed_ves,
		mixed_usd_method,
		mixed_ves_method,
		installment_amount,
		installment_method,
		installment_usd,
		installment_ves,
		other_method
	`

	SelectOrderQuery = `
		SELECT ` + orderColumns + `
		FROM
		    orders
		WHERE
		    id = $1
	`
	SelectOrdersByCustomerQuery = `
		SELECT ` + orderColumns + `
		FROM
		    orders
		WHERE
		    customer_id = $1
		ORDER BY
		    created_at
	`
	SelectOrdersInRangeQuery = `
		SELECT ` + orderColumns + `
		FROM
		    orders
		WHERE
		    created_at >= $1 AND created_at < $2
		ORDER BY
		    created_at
	`
	SelectCustomersWithOrdersQuery = `
		SELECT DISTINCT
			customer_id
		FROM
		    orders
		WHERE
		    status = 'active'
	`
	UpdateOrderTotalQuery = `
		UPDATE
			orders
		SET
			total_usd = $2
		WHERE
		    id = $1
	`
)

// OrderDB - плоская строка заказа, как она хранится в базе: вариант оплаты
// размазан по независимо-обнуляемым колонкам (legacy-схема исходной системы).
type OrderDB struct {
	ID          int64
	CustomerID  string
	TotalUSD    decimal.Decimal
	RateAtOrder decimal.Decimal
	Status      string
	CreatedAt   time.Time

	IsMixed           bool
	IsInstallment     bool
	InstallmentKind   *string
	MixedUSD          decimal.NullDecimal
	MixedVES          decimal.NullDecimal
	MixedUSDMethod    *string
	MixedVESMethod    *string
	InstallmentAmount decimal.NullDecimal
	InstallmentMethod *string
	InstallmentUSD    decimal.NullDecimal
	InstallmentVES    decimal.NullDecimal
	OtherMethod       *string
}

// ToModel собирает доменную модель заказа, сворачивая плоские колонки
// в один вариант оплаты. Противоречивая комбинация колонок дает
// ErrInconsistentPayment - такая строка исключается из пакетных расчетов
// по одному заказу, не срывая пакет целиком.
func (o OrderDB) ToModel() (models.Order, error) {
	order := models.Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		TotalUSD:    o.TotalUSD,
		RateAtOrder: o.RateAtOrder,
		Status:      models.OrderStatus(o.Status),
		CreatedAt:   o.CreatedAt,
	}

	payment, err := o.paymentDetails()
	if err != nil {
		return models.Order{}, fmt.Errorf("заказ %d: %w", o.ID, err)
	}
	order.Payment = payment

	return order, nil
}

func (o OrderDB) paymentDetails() (models.PaymentDetails, error) {
	// Флаги двух вариантов одновременно - противоречие.
	if o.IsMixed && o.IsInstallment {
		return nil, ErrInconsistentPayment
	}
	// Способ оплаты "прочее" несовместим с флагами других вариантов.
	if stringValue(o.OtherMethod) != "" && (o.IsMixed || o.IsInstallment) {
		return nil, ErrInconsistentPayment
	}

	if o.IsMixed {
		if !o.MixedUSD.Valid || !o.MixedVES.Valid {
			return nil, ErrInconsistentPayment
		}
		return models.MixedSingle{
			AmountUSD: o.MixedUSD.Decimal,
			AmountVES: o.MixedVES.Decimal,
			MethodUSD: stringValue(o.MixedUSDMethod),
			MethodVES: stringValue(o.MixedVESMethod),
		}, nil
	}

	if o.IsInstallment {
		switch stringValue(o.InstallmentKind) {
		case "simple":
			if !o.InstallmentAmount.Valid || stringValue(o.InstallmentMethod) == "" {
				return nil, ErrInconsistentPayment
			}
			return models.InstallmentSimple{
				Amount: o.InstallmentAmount.Decimal,
				Method: stringValue(o.InstallmentMethod),
			}, nil
		case "mixed":
			if !o.InstallmentUSD.Valid || !o.InstallmentVES.Valid {
				return nil, ErrInconsistentPayment
			}
			return models.InstallmentMixed{
				AmountUSD: o.InstallmentUSD.Decimal,
				AmountVES: o.InstallmentVES.Decimal,
			}, nil
		default:
			return nil, ErrInconsistentPayment
		}
	}

	if method := stringValue(o.OtherMethod); method != "" {
		return models.OtherPayment{Method: method}, nil
	}

	return models.FullCash{}, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	order := &OrderDB{}

	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalUSD,
		&order.RateAtOrder,
		&order.Status,
		&order.CreatedAt,
		&order.IsMixed,
		&order.IsInstallment,
		&order.InstallmentKind,
		&order.MixedUSD,
		&order.MixedVES,
		&order.MixedUSDMethod,
		&order.MixedVESMethod,
		&order.InstallmentAmount,
		&order.InstallmentMethod,
		&order.InstallmentUSD,
		&order.InstallmentVES,
		&order.OtherMethod,
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// FindOrder ищет заказ по его ID. Если заказ не найден, возвращает ErrOrderNotFound.
func (d *Database) FindOrder(ctx context.Context, orderID int64) (*OrderDB, error) {
	order, err := scanOrder(d.db.QueryRow(ctx, SelectOrderQuery, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("ошибка поиска заказа: %w", err)
	}

	return order, nil
}

// FindOrdersByCustomer возвращает все заказы клиента.
func (d *Database) FindOrdersByCustomer(ctx context.Context, customerID string) ([]OrderDB, error) {
	return d.queryOrders(ctx, SelectOrdersByCustomerQuery, customerID)
}

// FindOrdersInRange возвращает заказы, созданные в полуинтервале [from, to).
func (d *Database) FindOrdersInRange(ctx context.Context, from, to time.Time) ([]OrderDB, error) {
	return d.queryOrders(ctx, SelectOrdersInRangeQuery, from, to)
}

func (d *Database) queryOrders(ctx context.Context, query string, args ...interface{}) ([]OrderDB, error) {
	var result []OrderDB

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска заказов: %w", err)
	}
	defer rows.Close()

	// Обрабатываем каждую строку результата
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с заказом: %w", err)
		}
		result = append(result, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// FindCustomersWithOrders возвращает идентификаторы клиентов, у которых есть активные заказы.
func (d *Database) FindCustomersWithOrders(ctx context.Context) ([]string, error) {
	var result []string

	rows, err := d.db.Query(ctx, SelectCustomersWithOrdersQuery)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска клиентов: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customerID string
		if err := rows.Scan(&customerID); err != nil {
			return nil, fmt.Errorf("ошибка обработки строки с клиентом: %w", err)
		}
		result = append(result, customerID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации по строкам: %w", err)
	}

	return result, nil
}

// UpdateOrderTotal корректирует сумму заказа. Применяется только явной
// операцией сверки, когда пересчет позиций выявил расхождение.
func (d *Database) UpdateOrderTotal(ctx context.Context, orderID int64, newTotal decimal.Decimal) error {
	tag, err := d.db.Exec(ctx, UpdateOrderTotalQuery, orderID, newTotal)
	if err != nil {
		return fmt.Errorf("ошибка корректировки суммы заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
