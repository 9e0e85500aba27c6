package billing

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"unihop/internal/domain"
)

// Invoicer keeps one draft invoice per customer per delivery month, with
// one line item per job inside it. Sync is self-healing: calling it again
// for the same job converges on the correct amount regardless of how many
// webhook deliveries or sweep runs preceded it.
type Invoicer struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewInvoicer creates a new Invoicer.
func NewInvoicer(gateway Gateway, logger *zap.Logger) *Invoicer {
	return &Invoicer{gateway: gateway, logger: logger}
}

// Sync reconciles the order's line item with the customer's monthly draft
// invoice, creating the draft and customer as needed.
func (inv *Invoicer) Sync(ctx context.Context, order *domain.Order) error {
	email := normalizeEmail(order.Email)
	month := order.DeliveryDate.Format("01")
	year := order.DeliveryDate.Format("2006")

	price, err := parsePrice(order.Price)
	if err != nil {
		return fmt.Errorf("parse price %q: %w", order.Price, err)
	}
	amountCents := int64(math.Round(price * 100))

	inv.logger.Info("syncing invoice line item",
		zap.String("job_id", order.JobID),
		zap.String("email", email),
		zap.String("month", month),
		zap.String("year", year),
		zap.Int64("amount_cents", amountCents),
	)

	drafts, err := inv.gateway.ListDraftInvoices(ctx)
	if err != nil {
		return err
	}

	// The first draft matching (email, month, year) is canonical. Order is
	// whatever the provider returned; no secondary sort is imposed.
	draftID := ""
	for _, draft := range drafts {
		if normalizeEmail(draft.CustomerEmail) == email &&
			draft.Metadata["month"] == month &&
			draft.Metadata["year"] == year {
			draftID = draft.ID
			break
		}
	}

	customerID, err := inv.getOrCreateCustomer(ctx, email, order.PickupName)
	if err != nil {
		return err
	}

	if draftID == "" {
		draftID, err = inv.gateway.CreateDraftInvoice(ctx, customerID, month, year)
		if err != nil {
			return err
		}
		inv.logger.Info("created draft invoice",
			zap.String("draft_id", draftID),
			zap.String("email", email),
		)
	}

	description := itemDescription(order)

	items, err := inv.gateway.ListLineItems(ctx, draftID)
	if err != nil {
		return err
	}

	itemID := ""
	for _, item := range items {
		if item.Metadata["job_id"] == order.JobID {
			itemID = item.ID
			break
		}
	}

	switch {
	case itemID != "" && amountCents == 0:
		return inv.gateway.DeleteLineItem(ctx, itemID)
	case itemID != "":
		return inv.gateway.UpdateLineItem(ctx, itemID, amountCents, description)
	case amountCents != 0:
		return inv.gateway.CreateLineItem(ctx, draftID, customerID, amountCents, description, order.JobID)
	default:
		inv.logger.Info("ignored zero price line item", zap.String("job_id", order.JobID))
		return nil
	}
}

// getOrCreateCustomer finds a customer by normalized email, creating one
// when absent.
func (inv *Invoicer) getOrCreateCustomer(ctx context.Context, email, name string) (string, error) {
	customerID, err := inv.gateway.FindCustomerByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if customerID != "" {
		return customerID, nil
	}

	inv.logger.Info("customer does not exist, creating", zap.String("email", email))
	return inv.gateway.CreateCustomer(ctx, email, name)
}

// itemDescription builds the line item description: "MM/DD - X.XX Miles",
// with a tip-add suffix for tipped jobs and a canceled marker instead for
// canceled ones.
func itemDescription(order *domain.Order) string {
	description := fmt.Sprintf("%s/%s - %.2f Miles",
		order.DeliveryDate.Format("01"),
		order.DeliveryDate.Format("02"),
		order.Distance,
	)

	if order.Status.IsCanceled() {
		return description + " - Canceled Driver"
	}

	if order.Tip > 0 {
		description += fmt.Sprintf(" - $%.2f Add.", order.Tip)
	}

	return description
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parsePrice(price string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(price, "$", ""))
	if cleaned == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cleaned, 64)
}
