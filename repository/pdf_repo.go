package repository

import "jewelbill/models"

// PDFRepository provides the data needed to render one invoice document.
type PDFRepository struct {
	InvoiceRepo InvoiceRepository
}

func NewPDFRepository(invoiceRepo InvoiceRepository) *PDFRepository {
	return &PDFRepository{InvoiceRepo: invoiceRepo}
}

// GetInvoiceForPDF fetches an owner-scoped invoice with firm and type
// expanded. nil means absent or not owned.
func (r *PDFRepository) GetInvoiceForPDF(id, userID int64) (*models.Invoice, error) {
	return r.InvoiceRepo.GetInvoiceByID(id, userID)
}
