package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"unihop/internal/domain"
	"unihop/internal/repository"
)

// billingDelayDays is how long an order must have existed before the
// sweep bills it, leaving room for late status corrections.
const billingDelayDays = 8

// InvoiceSyncer pushes one order's billing state to the invoicing
// provider.
type InvoiceSyncer interface {
	Sync(ctx context.Context, order *domain.Order) error
}

// SweepResult summarizes one billing sweep run.
type SweepResult struct {
	Processed int
	Failed    int
}

// SweepService bills terminal orders that have not been synced to the
// invoicing provider yet. Orders are processed sequentially and failures
// are isolated: one order's sync error never aborts the sweep, and the
// order stays unbilled so the next run retries it.
type SweepService struct {
	orderRepo repository.OrderRepository
	syncer    InvoiceSyncer
	logger    *zap.Logger
	now       func() time.Time
}

// NewSweepService creates a new SweepService.
func NewSweepService(orderRepo repository.OrderRepository, syncer InvoiceSyncer, logger *zap.Logger) *SweepService {
	return &SweepService{
		orderRepo: orderRepo,
		syncer:    syncer,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one sweep over all eligible orders.
func (s *SweepService) Run(ctx context.Context) (SweepResult, error) {
	cutoff := s.now().AddDate(0, 0, -billingDelayDays)

	orders, err := s.orderRepo.ListUnbilled(ctx, cutoff, domain.TerminalStatuses)
	if err != nil {
		return SweepResult{}, err
	}

	s.logger.Info("billing sweep started", zap.Int("orders", len(orders)))

	var result SweepResult
	for _, order := range orders {
		if err := s.syncer.Sync(ctx, order); err != nil {
			s.logger.Error("invoice sync failed",
				zap.String("job_id", order.JobID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}

		if err := s.orderRepo.MarkBillingProcessed(ctx, order.ID); err != nil {
			// The line item is synced but the flag write failed; the next
			// sweep re-syncs idempotently.
			s.logger.Error("failed to mark order billed",
				zap.String("job_id", order.JobID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}

		result.Processed++
	}

	s.logger.Info("billing sweep finished",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}
