package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"unihop/internal/domain"
	"unihop/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a transaction.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

const orderColumns = `id, job_id, email, status, distance, price, tip, delivery_date, delivery_start_time, delivery_end_time, asap, pickup_address, pickup_name, dropoff_address, dropoff_name, delivery_style, option_id, billing_processed, created_at, updated_at`

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.JobID,
		order.Email,
		order.Status,
		order.Distance,
		order.Price,
		order.Tip,
		nullTime(order.DeliveryDate),
		nullString(order.DeliveryStartTime),
		nullString(order.DeliveryEndTime),
		order.Asap,
		order.PickupAddress,
		order.PickupName,
		order.DropoffAddress,
		order.DropoffName,
		order.DeliveryStyle,
		nullString(order.OptionID),
		order.BillingProcessed,
		order.CreatedAt,
		order.UpdatedAt,
	)

	return err
}

// GetByJobID retrieves an order by its upstream job ID.
func (r *OrderRepository) GetByJobID(ctx context.Context, jobID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE job_id = $1`

	order, err := scanOrder(r.q.QueryRowContext(ctx, query, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return order, nil
}

// Update updates an existing order.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET email = $1, status = $2, distance = $3, price = $4, tip = $5,
			delivery_date = $6, delivery_start_time = $7, delivery_end_time = $8,
			asap = $9, pickup_address = $10, pickup_name = $11,
			dropoff_address = $12, dropoff_name = $13, delivery_style = $14,
			option_id = $15, billing_processed = $16, updated_at = $17
		WHERE id = $18
	`

	result, err := r.q.ExecContext(ctx, query,
		order.Email,
		order.Status,
		order.Distance,
		order.Price,
		order.Tip,
		nullTime(order.DeliveryDate),
		nullString(order.DeliveryStartTime),
		nullString(order.DeliveryEndTime),
		order.Asap,
		order.PickupAddress,
		order.PickupName,
		order.DropoffAddress,
		order.DropoffName,
		order.DeliveryStyle,
		nullString(order.OptionID),
		order.BillingProcessed,
		time.Now(),
		order.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List retrieves a page of orders matching the filter, newest delivery
// date first, along with the total match count.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, int, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch filter.Time {
	case repository.TimeFilterToday:
		conditions = append(conditions, "delivery_date::date = CURRENT_DATE")
	case repository.TimeFilterPast:
		conditions = append(conditions, "delivery_date::date < CURRENT_DATE")
	case repository.TimeFilterFuture:
		conditions = append(conditions, "delivery_date::date > CURRENT_DATE")
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, "status = ANY("+arg(pq.Array(statuses))+")")
	}

	if filter.Email != "" {
		if strings.HasPrefix(filter.Email, "@") {
			conditions = append(conditions, "email LIKE "+arg("%"+filter.Email))
		} else {
			conditions = append(conditions, "email = "+arg(filter.Email))
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := "SELECT " + orderColumns + " FROM orders" + where +
		" ORDER BY delivery_date DESC" +
		" LIMIT " + arg(perPage) + " OFFSET " + arg((page-1)*perPage)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, rows.Err()
}

// ListUnbilled retrieves unbilled terminal orders created at or before the
// cutoff.
func (r *OrderRepository) ListUnbilled(ctx context.Context, cutoff time.Time, statuses []domain.Status) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE created_at <= $1 AND billing_processed = FALSE AND status = ANY($2)
		ORDER BY created_at
	`

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	rows, err := r.q.QueryContext(ctx, query, cutoff, pq.Array(values))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// MarkBillingProcessed flags an order as synced to the invoicing provider.
func (r *OrderRepository) MarkBillingProcessed(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE orders SET billing_processed = TRUE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var order domain.Order
	var deliveryDate sql.NullTime
	var startTime, endTime, optionID sql.NullString

	if err := s.Scan(
		&order.ID,
		&order.JobID,
		&order.Email,
		&order.Status,
		&order.Distance,
		&order.Price,
		&order.Tip,
		&deliveryDate,
		&startTime,
		&endTime,
		&order.Asap,
		&order.PickupAddress,
		&order.PickupName,
		&order.DropoffAddress,
		&order.DropoffName,
		&order.DeliveryStyle,
		&optionID,
		&order.BillingProcessed,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if deliveryDate.Valid {
		order.DeliveryDate = deliveryDate.Time
	}
	order.DeliveryStartTime = startTime.String
	order.DeliveryEndTime = endTime.String
	order.OptionID = optionID.String

	return &order, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
