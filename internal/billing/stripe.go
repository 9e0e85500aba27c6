package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	api *client.API
}

// Ensure the Stripe implementation satisfies the Gateway contract.
var _ Gateway = (*StripeGateway)(nil)

// NewStripeGateway creates a Stripe-backed invoicing gateway.
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// ListDraftInvoices returns all draft invoices. The iterator follows
// pagination until the provider reports no more pages.
func (g *StripeGateway) ListDraftInvoices(ctx context.Context) ([]DraftInvoice, error) {
	params := &stripe.InvoiceListParams{
		Status: stripe.String(string(stripe.InvoiceStatusDraft)),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var drafts []DraftInvoice
	iter := g.api.Invoices.List(params)
	for iter.Next() {
		inv := iter.Invoice()
		drafts = append(drafts, DraftInvoice{
			ID:            inv.ID,
			CustomerEmail: inv.CustomerEmail,
			Metadata:      inv.Metadata,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe: list draft invoices: %w", err)
	}

	return drafts, nil
}

// CreateDraftInvoice creates a draft invoice scoped to one calendar month.
func (g *StripeGateway) CreateDraftInvoice(ctx context.Context, customerID, month, year string) (string, error) {
	params := &stripe.InvoiceParams{
		Customer: stripe.String(customerID),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	params.AddMetadata("month", month)
	params.AddMetadata("year", year)

	inv, err := g.api.Invoices.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create draft invoice: %w", err)
	}

	return inv.ID, nil
}

// FindCustomerByEmail returns the first customer with the given email.
func (g *StripeGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	iter := g.api.Customers.List(params)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("stripe: list customers: %w", err)
	}

	return "", nil
}

// CreateCustomer creates a new customer.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email:       stripe.String(email),
		Name:        stripe.String(name),
		Description: stripe.String(name),
	}
	params.Context = ctx

	cus, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create customer: %w", err)
	}

	return cus.ID, nil
}

// ListLineItems returns the invoice's line items. A single page of 100 is
// fetched, matching the provider's page cap; invoices with more items than
// that will not have the overflow scanned.
func (g *StripeGateway) ListLineItems(ctx context.Context, invoiceID string) ([]LineItem, error) {
	params := &stripe.InvoiceItemListParams{
		Invoice: stripe.String(invoiceID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var items []LineItem
	iter := g.api.InvoiceItems.List(params)
	for iter.Next() {
		item := iter.InvoiceItem()
		items = append(items, LineItem{
			ID:          item.ID,
			AmountCents: item.Amount,
			Description: item.Description,
			Metadata:    item.Metadata,
		})
		if len(items) == 100 {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe: list invoice items: %w", err)
	}

	return items, nil
}

// CreateLineItem adds a line item tagged with the job ID.
func (g *StripeGateway) CreateLineItem(ctx context.Context, invoiceID, customerID string, amountCents int64, description, jobID string) error {
	params := &stripe.InvoiceItemParams{
		Customer:    stripe.String(customerID),
		Invoice:     stripe.String(invoiceID),
		Amount:      stripe.Int64(amountCents),
		Description: stripe.String(description),
	}
	params.Context = ctx
	params.AddMetadata("job_id", jobID)

	if _, err := g.api.InvoiceItems.New(params); err != nil {
		return fmt.Errorf("stripe: create invoice item: %w", err)
	}

	return nil
}

// UpdateLineItem replaces a line item's amount and description.
func (g *StripeGateway) UpdateLineItem(ctx context.Context, itemID string, amountCents int64, description string) error {
	params := &stripe.InvoiceItemParams{
		Amount:      stripe.Int64(amountCents),
		Description: stripe.String(description),
	}
	params.Context = ctx

	if _, err := g.api.InvoiceItems.Update(itemID, params); err != nil {
		return fmt.Errorf("stripe: update invoice item: %w", err)
	}

	return nil
}

// DeleteLineItem removes a line item.
func (g *StripeGateway) DeleteLineItem(ctx context.Context, itemID string) error {
	params := &stripe.InvoiceItemParams{}
	params.Context = ctx

	if _, err := g.api.InvoiceItems.Del(itemID, params); err != nil {
		return fmt.Errorf("stripe: delete invoice item: %w", err)
	}

	return nil
}
