package repository

import (
	"context"
	"time"

	"unihop/internal/domain"
)

// TimeFilter restricts a listing to orders relative to today.
type TimeFilter string

const (
	TimeFilterAll    TimeFilter = "all"
	TimeFilterToday  TimeFilter = "today"
	TimeFilterPast   TimeFilter = "past"
	TimeFilterFuture TimeFilter = "future"
)

// OrderFilter holds the listing filters for orders.
type OrderFilter struct {
	Email    string // exact match, or suffix match when it starts with "@"
	Statuses []domain.Status
	Time     TimeFilter
	Page     int
	PerPage  int
}

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByJobID retrieves an order by its upstream job ID.
	GetByJobID(ctx context.Context, jobID string) (*domain.Order, error)

	// Update updates an existing order.
	Update(ctx context.Context, order *domain.Order) error

	// List retrieves a page of orders matching the filter, newest delivery
	// date first, along with the total match count.
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int, error)

	// ListUnbilled retrieves orders in one of the given statuses that have
	// not been billed yet and were created at or before the cutoff.
	ListUnbilled(ctx context.Context, cutoff time.Time, statuses []domain.Status) ([]*domain.Order, error)

	// MarkBillingProcessed flags an order as synced to the invoicing
	// provider.
	MarkBillingProcessed(ctx context.Context, id string) error
}
