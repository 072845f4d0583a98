package repository

import (
	"database/sql"

	"jewelbill/models"
)

type PostgresInvoiceTypeRepo struct {
	DB *sql.DB
}

func NewPostgresInvoiceTypeRepo(db *sql.DB) *PostgresInvoiceTypeRepo {
	return &PostgresInvoiceTypeRepo{DB: db}
}

func (r *PostgresInvoiceTypeRepo) GetInvoiceTypes() ([]*models.InvoiceType, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, description, created_at
		FROM invoice_type
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.InvoiceType
	for rows.Next() {
		var t models.InvoiceType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}
