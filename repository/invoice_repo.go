package repository

import (
	"time"

	"jewelbill/models"
)

// InvoiceRepository stores invoices with their embedded line items. Every
// operation that names an invoice id is also scoped by the owning user, so a
// foreign invoice behaves exactly like a missing one.
type InvoiceRepository interface {
	// CreateInvoice persists a new invoice and its items. Returns
	// ErrDuplicateInvoiceNumber when (user_id, invoice_number) collides.
	CreateInvoice(inv *models.Invoice) error

	// GetInvoices returns the user's invoices newest first, with firm and
	// invoice type expanded for display.
	GetInvoices(userID int64) ([]*models.Invoice, error)

	// GetInvoiceByID returns nil, nil when absent or owned by someone else.
	GetInvoiceByID(id, userID int64) (*models.Invoice, error)

	// UpdateInvoice rewrites the invoice row and replaces its items.
	// Returns ErrDuplicateInvoiceNumber on a renumber collision.
	UpdateInvoice(inv *models.Invoice) error

	// DeleteInvoice removes the invoice and returns the deleted record so the
	// caller can clean up its archived document. nil, nil when absent.
	DeleteInvoice(id, userID int64) (*models.Invoice, error)

	// LastInvoiceNumber reports the most recently created invoice's number for
	// the user, "" when the user has none. Advisory only.
	LastInvoiceNumber(userID int64) (string, error)

	// DailyStats groups the user's invoices by calendar day, newest day first,
	// capped to the given number of distinct days.
	DailyStats(userID int64, days int) ([]models.DailyStat, error)

	// UpdateDocumentLocator overwrites the archived-PDF locator. Idempotent;
	// returns ErrNotFound when the invoice is absent or not owned.
	UpdateDocumentLocator(id, userID int64, url, externalID string, t time.Time) error
}
