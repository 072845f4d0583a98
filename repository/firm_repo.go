package repository

import "jewelbill/models"

// FirmRepository stores firms. All reads are owner-scoped: a firm that exists
// but belongs to someone else is indistinguishable from one that does not.
type FirmRepository interface {
	CreateFirm(firm *models.Firm) error
	GetFirms(ownerID int64) ([]*models.Firm, error)
	GetFirmByID(id, ownerID int64) (*models.Firm, error)
}
