package repository

import (
	"database/sql"
	"time"

	"jewelbill/models"
)

type PostgresFirmRepo struct {
	DB *sql.DB
}

func NewPostgresFirmRepo(db *sql.DB) *PostgresFirmRepo {
	return &PostgresFirmRepo{DB: db}
}

func (r *PostgresFirmRepo) CreateFirm(firm *models.Firm) error {
	if firm.CreatedAt.IsZero() {
		firm.CreatedAt = time.Now().UTC()
	}
	return r.DB.QueryRow(`
		INSERT INTO firm (name, address, gst_number, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, firm.Name, firm.Address, firm.GSTNumber, firm.OwnerID, firm.CreatedAt).Scan(&firm.ID)
}

func (r *PostgresFirmRepo) GetFirms(ownerID int64) ([]*models.Firm, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, address, gst_number, owner_id, created_at
		FROM firm
		WHERE owner_id=$1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var firms []*models.Firm
	for rows.Next() {
		var f models.Firm
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.GSTNumber, &f.OwnerID, &f.CreatedAt); err != nil {
			return nil, err
		}
		firms = append(firms, &f)
	}
	return firms, rows.Err()
}

func (r *PostgresFirmRepo) GetFirmByID(id, ownerID int64) (*models.Firm, error) {
	f := &models.Firm{}
	err := r.DB.QueryRow(`
		SELECT id, name, address, gst_number, owner_id, created_at
		FROM firm
		WHERE id=$1 AND owner_id=$2
	`, id, ownerID).Scan(&f.ID, &f.Name, &f.Address, &f.GSTNumber, &f.OwnerID, &f.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}
