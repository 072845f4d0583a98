package repository

import "jewelbill/models"

type InvoiceTypeRepository interface {
	GetInvoiceTypes() ([]*models.InvoiceType, error)
}
