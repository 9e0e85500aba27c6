package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"unihop/internal/domain"
	"unihop/internal/nash"
	"unihop/internal/repository"
)

// JobSource fetches raw job payloads from the upstream logistics provider.
type JobSource interface {
	FetchJob(ctx context.Context, jobID string) (*nash.JobPayload, error)
}

// Ensure the Nash client implements JobSource.
var _ JobSource = (*nash.Client)(nil)

// penaltyTierOptions are the service options that carry the higher
// cancellation fee when a driver is already underway.
var penaltyTierOptions = map[string]bool{
	"dss_bN9XiB": true,
	"dsr_cv2WbL": true,
	"dss_d6tSpe": true,
	"dss_7jSMmA": true,
	"opn_836HQA": true,
	"dss_65ontq": true,
	"dss_PsCM3y": true,
}

// driverUnderwayStatuses are the states where a cancellation still costs a
// fee: a driver was assigned or already moving toward the pickup.
var driverUnderwayStatuses = map[domain.Status]bool{
	domain.StatusAssignedDriver: true,
	domain.StatusPickupEnroute:  true,
	domain.StatusPickupArrived:  true,
}

// effectivelyCompletedStatuses are the states where a late cancellation is
// recorded as Other instead: the delivery had effectively happened. The
// raw-vocabulary entries cover legacy rows written before statuses were
// normalized.
var effectivelyCompletedStatuses = map[domain.Status]bool{
	domain.StatusDropoffEnroute:         true,
	domain.StatusDropoffArrived:         true,
	domain.StatusOther:                  true,
	domain.Status("Pickup Complete"):    true,
	domain.Status("RETURN_IN_PROGRESS"): true,
	domain.Status("RETURNED"):           true,
}

// OrderService reconciles upstream job events against persisted orders.
type OrderService struct {
	orderRepo repository.OrderRepository
	jobs      JobSource
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repository.OrderRepository, jobs JobSource, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		jobs:      jobs,
		logger:    logger,
	}
}

// IngestJobEvent fetches the current payload for a job and reconciles it
// against the stored order. Called once per webhook delivery; deliveries
// are at-least-once, so the whole path must tolerate replays.
func (s *OrderService) IngestJobEvent(ctx context.Context, jobID string) (*domain.Order, error) {
	if jobID == "" {
		return nil, ErrInvalidJobID
	}

	payload, err := s.jobs.FetchJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	details, err := nash.ExtractJobDetails(jobID, payload)
	if err != nil {
		return nil, err
	}

	return s.ProcessJobEvent(ctx, details)
}

// ProcessJobEvent applies one normalized job event to the order store,
// creating the order on the first event for a job ID and reconciling
// status transitions on subsequent ones. Reapplying the same event to the
// state it produced is a no-op.
func (s *OrderService) ProcessJobEvent(ctx context.Context, details *domain.JobDetails) (*domain.Order, error) {
	existing, err := s.orderRepo.GetByJobID(ctx, details.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.createOrder(ctx, details)
		}
		return nil, err
	}

	return s.reconcile(ctx, existing, details)
}

func (s *OrderService) createOrder(ctx context.Context, details *domain.JobDetails) (*domain.Order, error) {
	price := details.Price
	if details.Status == domain.StatusCanceled {
		// Canceled before an order existed: nothing billable.
		price = "0.00"
	}

	now := time.Now()
	order := &domain.Order{
		ID:                uuid.New().String(),
		JobID:             details.JobID,
		Email:             details.Email,
		Status:            details.Status,
		Distance:          details.Distance,
		Price:             price,
		Tip:               details.Tip,
		DeliveryDate:      details.DeliveryDate,
		DeliveryStartTime: details.DeliveryStartTime,
		DeliveryEndTime:   details.DeliveryEndTime,
		Asap:              details.Asap,
		PickupAddress:     details.PickupAddress,
		PickupName:        details.PickupName,
		DropoffAddress:    details.DropoffAddress,
		DropoffName:       details.DropoffName,
		DeliveryStyle:     details.DeliveryStyle,
		OptionID:          details.OptionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("job_id", order.JobID),
		zap.String("status", string(order.Status)),
		zap.String("price", order.Price),
	)

	return order, nil
}

// reconcile decides how an incoming event lands on an existing order. Only
// status-transition overrides touch price; plain updates never overwrite
// price or tip.
func (s *OrderService) reconcile(ctx context.Context, existing *domain.Order, details *domain.JobDetails) (*domain.Order, error) {
	// A stale pre-cancellation event redelivered after the order was
	// canceled must not resurrect it.
	if details.Status == domain.StatusCreated && existing.Status == domain.StatusCanceledDriver {
		s.logger.Info("ignoring stale event for canceled order", zap.String("job_id", existing.JobID))
		return existing, nil
	}

	status := details.Status
	priceOverride := ""

	if details.Status == domain.StatusCanceled {
		switch {
		case existing.Status.IsCanceled():
			// Duplicate delivery of a cancellation already applied.
			return existing, nil
		case driverUnderwayStatuses[existing.Status]:
			if penaltyTierOptions[existing.OptionID] {
				priceOverride = "15.00"
			} else {
				priceOverride = "10.00"
			}
		case effectivelyCompletedStatuses[existing.Status]:
			// The delivery effectively happened; do not record a
			// cancellation or touch the price.
			status = domain.StatusOther
		default:
			priceOverride = "0.00"
		}
	}

	updated := *existing
	updated.Email = details.Email
	updated.Status = status
	updated.Distance = details.Distance
	updated.DeliveryDate = details.DeliveryDate
	updated.DeliveryStartTime = details.DeliveryStartTime
	updated.DeliveryEndTime = details.DeliveryEndTime
	updated.Asap = details.Asap
	updated.PickupAddress = details.PickupAddress
	updated.PickupName = details.PickupName
	updated.DropoffAddress = details.DropoffAddress
	updated.DropoffName = details.DropoffName
	if priceOverride != "" {
		updated.Price = priceOverride
	}

	if err := s.orderRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if priceOverride != "" {
		s.logger.Info("cancellation price override applied",
			zap.String("job_id", updated.JobID),
			zap.String("from", string(existing.Status)),
			zap.String("price", priceOverride),
		)
	}

	return &updated, nil
}

// UpdateOrderInput carries the PATCH-able order fields. Nil means leave
// unchanged.
type UpdateOrderInput struct {
	Email             *string
	Status            *string
	Distance          *float64
	Price             *string
	Tip               *float64
	DeliveryDate      *string // "2006-01-02"
	DeliveryStartTime *string
	DeliveryEndTime   *string
	Asap              *bool
	PickupAddress     *string
	PickupName        *string
	DropoffAddress    *string
	DropoffName       *string
	DeliveryStyle     *string
	BillingProcessed  *bool
}

// UpdateOrder applies a partial administrative update to an order.
func (s *OrderService) UpdateOrder(ctx context.Context, jobID string, in UpdateOrderInput) (*domain.Order, error) {
	if jobID == "" {
		return nil, ErrInvalidJobID
	}

	order, err := s.orderRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		status := domain.Status(*in.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		order.Status = status
	}
	if in.DeliveryStyle != nil {
		style := domain.DeliveryStyle(*in.DeliveryStyle)
		if !style.IsValid() {
			return nil, ErrInvalidDeliveryStyle
		}
		order.DeliveryStyle = style
	}
	if in.Distance != nil {
		if *in.Distance < 0 {
			return nil, ErrInvalidDistance
		}
		order.Distance = *in.Distance
	}
	if in.Price != nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(*in.Price), 64)
		if err != nil || value < 0 {
			return nil, ErrInvalidPrice
		}
		order.Price = *in.Price
	}
	if in.Tip != nil {
		if *in.Tip < 0 {
			return nil, ErrInvalidTip
		}
		order.Tip = *in.Tip
	}
	if in.DeliveryDate != nil {
		date, err := time.Parse("2006-01-02", *in.DeliveryDate)
		if err != nil {
			return nil, ErrInvalidDeliveryDate
		}
		order.DeliveryDate = date
	}
	if in.DeliveryStartTime != nil {
		if err := validateClockTime(*in.DeliveryStartTime); err != nil {
			return nil, err
		}
		order.DeliveryStartTime = *in.DeliveryStartTime
	}
	if in.DeliveryEndTime != nil {
		if err := validateClockTime(*in.DeliveryEndTime); err != nil {
			return nil, err
		}
		order.DeliveryEndTime = *in.DeliveryEndTime
	}
	if in.Email != nil {
		order.Email = *in.Email
	}
	if in.Asap != nil {
		order.Asap = *in.Asap
	}
	if in.PickupAddress != nil {
		order.PickupAddress = *in.PickupAddress
	}
	if in.PickupName != nil {
		order.PickupName = *in.PickupName
	}
	if in.DropoffAddress != nil {
		order.DropoffAddress = *in.DropoffAddress
	}
	if in.DropoffName != nil {
		order.DropoffName = *in.DropoffName
	}
	if in.BillingProcessed != nil {
		order.BillingProcessed = *in.BillingProcessed
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func validateClockTime(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("15:04:05", value); err != nil {
		return ErrInvalidDeliveryTime
	}
	return nil
}
