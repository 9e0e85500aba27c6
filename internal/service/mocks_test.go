package service

import (
	"context"
	"sync"
	"time"

	"unihop/internal/domain"
	"unihop/internal/nash"
	"unihop/internal/repository"
)

// mockOrderRepository is an in-memory OrderRepository keyed by job ID.
type mockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// Counters for verification
	CreateCallCount int
	UpdateCallCount int

	// Error injection
	CreateError        error
	UpdateError        error
	ListUnbilledError  error
	MarkProcessedError error

	// MarkProcessedFailFor injects MarkProcessedError only for this order ID.
	MarkProcessedFailFor string
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[string]*domain.Order)}
}

// AddOrder seeds an order into the mock repository.
func (m *mockOrderRepository) AddOrder(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.JobID] = order
}

// GetOrder returns the stored order for a job ID, or nil.
func (m *mockOrderRepository) GetOrder(jobID string) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[jobID]
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCallCount++
	if m.CreateError != nil {
		return m.CreateError
	}
	clone := *order
	m.orders[order.JobID] = &clone
	return nil
}

func (m *mockOrderRepository) GetByJobID(ctx context.Context, jobID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[jobID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (m *mockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCallCount++
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.orders[order.JobID]; !ok {
		return repository.ErrNotFound
	}
	clone := *order
	m.orders[order.JobID] = &clone
	return nil
}

func (m *mockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Order
	for _, order := range m.orders {
		clone := *order
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (m *mockOrderRepository) ListUnbilled(ctx context.Context, cutoff time.Time, statuses []domain.Status) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListUnbilledError != nil {
		return nil, m.ListUnbilledError
	}
	allowed := make(map[domain.Status]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []*domain.Order
	for _, order := range m.orders {
		if order.BillingProcessed || !allowed[order.Status] || order.CreatedAt.After(cutoff) {
			continue
		}
		clone := *order
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockOrderRepository) MarkBillingProcessed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkProcessedError != nil && (m.MarkProcessedFailFor == "" || m.MarkProcessedFailFor == id) {
		return m.MarkProcessedError
	}
	for _, order := range m.orders {
		if order.ID == id {
			order.BillingProcessed = true
			return nil
		}
	}
	return repository.ErrNotFound
}

// mockJobSource serves canned payloads per job ID.
type mockJobSource struct {
	payloads map[string]*nash.JobPayload

	FetchError error
}

func (m *mockJobSource) FetchJob(ctx context.Context, jobID string) (*nash.JobPayload, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	return m.payloads[jobID], nil
}

// mockInvoiceSyncer records synced orders and can fail selected job IDs.
type mockInvoiceSyncer struct {
	mu     sync.Mutex
	Synced []string

	SyncError   error
	FailForJobs map[string]bool
}

func (m *mockInvoiceSyncer) Sync(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SyncError != nil && (m.FailForJobs == nil || m.FailForJobs[order.JobID]) {
		return m.SyncError
	}
	m.Synced = append(m.Synced, order.JobID)
	return nil
}
