// Package billing synchronizes billable delivery jobs with the payment
// processor's draft invoices.
package billing

import "context"

// DraftInvoice is an uncommitted invoice aggregate held by the payment
// processor. The processor is the source of truth for its state.
type DraftInvoice struct {
	ID            string
	CustomerEmail string
	Metadata      map[string]string
}

// LineItem is a single billable entry on a draft invoice, tagged with the
// job ID it represents.
type LineItem struct {
	ID          string
	AmountCents int64
	Description string
	Metadata    map[string]string
}

// Gateway is the invoicing aggregate boundary. Implementations are
// synchronous and blocking; retry policy belongs to the transport layer.
type Gateway interface {
	// ListDraftInvoices returns all draft invoices, traversing every page.
	ListDraftInvoices(ctx context.Context) ([]DraftInvoice, error)

	// CreateDraftInvoice creates a draft invoice for the customer, tagged
	// with month/year metadata, and returns its ID.
	CreateDraftInvoice(ctx context.Context, customerID, month, year string) (string, error)

	// FindCustomerByEmail returns the first customer ID matching the
	// email, or "" when none exists.
	FindCustomerByEmail(ctx context.Context, email string) (string, error)

	// CreateCustomer creates a customer and returns its ID.
	CreateCustomer(ctx context.Context, email, name string) (string, error)

	// ListLineItems returns the line items on an invoice. Bounded to the
	// provider's first page of 100; items beyond that are not seen.
	ListLineItems(ctx context.Context, invoiceID string) ([]LineItem, error)

	// CreateLineItem adds a line item tagged with the job ID.
	CreateLineItem(ctx context.Context, invoiceID, customerID string, amountCents int64, description, jobID string) error

	// UpdateLineItem replaces a line item's amount and description.
	UpdateLineItem(ctx context.Context, itemID string, amountCents int64, description string) error

	// DeleteLineItem removes a line item.
	DeleteLineItem(ctx context.Context, itemID string) error
}
