package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"unihop/internal/domain"
)

func newTestSweepService(repo *mockOrderRepository, syncer InvoiceSyncer, now time.Time) *SweepService {
	svc := NewSweepService(repo, syncer, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestSweep_BillsEligibleOrders(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -10)

	repo := newMockOrderRepository()
	repo.AddOrder(&domain.Order{ID: "ord_1", JobID: "job_1", Status: domain.StatusDelivered, CreatedAt: old})
	repo.AddOrder(&domain.Order{ID: "ord_2", JobID: "job_2", Status: domain.StatusCanceled, CreatedAt: old})
	// Too recent to bill.
	repo.AddOrder(&domain.Order{ID: "ord_3", JobID: "job_3", Status: domain.StatusDelivered, CreatedAt: now.AddDate(0, 0, -2)})
	// Not terminal yet.
	repo.AddOrder(&domain.Order{ID: "ord_4", JobID: "job_4", Status: domain.StatusDropoffEnroute, CreatedAt: old})
	// Already billed.
	repo.AddOrder(&domain.Order{ID: "ord_5", JobID: "job_5", Status: domain.StatusDelivered, CreatedAt: old, BillingProcessed: true})

	syncer := &mockInvoiceSyncer{}
	svc := newTestSweepService(repo, syncer, now)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Processed != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 processed, 0 failed", result)
	}
	if len(syncer.Synced) != 2 {
		t.Errorf("synced %d orders, want 2: %v", len(syncer.Synced), syncer.Synced)
	}
	if !repo.GetOrder("job_1").BillingProcessed || !repo.GetOrder("job_2").BillingProcessed {
		t.Error("billed orders not flagged as processed")
	}
	if repo.GetOrder("job_3").BillingProcessed || repo.GetOrder("job_4").BillingProcessed {
		t.Error("ineligible order flagged as processed")
	}
}

func TestSweep_SyncFailureIsIsolated(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -10)

	repo := newMockOrderRepository()
	repo.AddOrder(&domain.Order{ID: "ord_1", JobID: "job_1", Status: domain.StatusDelivered, CreatedAt: old})
	repo.AddOrder(&domain.Order{ID: "ord_2", JobID: "job_2", Status: domain.StatusDelivered, CreatedAt: old})

	syncer := &mockInvoiceSyncer{
		SyncError:   errors.New("stripe unavailable"),
		FailForJobs: map[string]bool{"job_1": true},
	}
	svc := newTestSweepService(repo, syncer, now)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Processed != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 1 processed, 1 failed", result)
	}
	if repo.GetOrder("job_1").BillingProcessed {
		t.Error("failed order must stay unbilled for the next run")
	}
	if !repo.GetOrder("job_2").BillingProcessed {
		t.Error("successful order not flagged as processed")
	}
}

func TestSweep_MarkFailureCountsAsFailed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	repo := newMockOrderRepository()
	repo.AddOrder(&domain.Order{ID: "ord_1", JobID: "job_1", Status: domain.StatusDelivered, CreatedAt: now.AddDate(0, 0, -10)})
	repo.MarkProcessedError = errors.New("connection reset")

	syncer := &mockInvoiceSyncer{}
	svc := newTestSweepService(repo, syncer, now)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Processed != 0 || result.Failed != 1 {
		t.Errorf("result = %+v, want 0 processed, 1 failed", result)
	}
}

func TestSweep_ListFailureAborts(t *testing.T) {
	t.Parallel()

	repo := newMockOrderRepository()
	repo.ListUnbilledError = errors.New("db down")

	svc := newTestSweepService(repo, &mockInvoiceSyncer{}, time.Now())

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when listing fails")
	}
}
