package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"jewelbill/models"

	"github.com/lib/pq"
)

type PostgresInvoiceRepo struct {
	DB *sql.DB
}

func NewPostgresInvoiceRepo(db *sql.DB) *PostgresInvoiceRepo {
	return &PostgresInvoiceRepo{DB: db}
}

// isUniqueViolation reports whether err is the unique-index rejection on
// (user_id, invoice_number).
func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505" && pqErr.Constraint == "invoice_user_number_uniq"
}

// ------------------------ Helper Functions ------------------------

func (r *PostgresInvoiceRepo) insertItems(tx *sql.Tx, invoiceID int64, items []models.LineItem) error {
	for i := range items {
		it := &items[i]
		_, err := tx.Exec(`
			INSERT INTO invoice_item(
				invoice_id,description,metal,huid,hsn_code,
				gross_weight,less_weight,net_weight,purity,
				rate,making_charges,hallmark_charges,gst_percent,line_total
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		`, invoiceID, it.Description, it.Metal, it.HUID, it.HSNCode,
			it.GrossWeight, it.LessWeight, it.NetWeight, it.Purity,
			it.Rate, it.MakingCharges, it.HallmarkCharges, it.GSTPercent, it.LineTotal)
		if err != nil {
			return err
		}
	}
	return nil
}

// ------------------------ Create Invoice ------------------------

func (r *PostgresInvoiceRepo) CreateInvoice(inv *models.Invoice) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}

	err = tx.QueryRow(`
		INSERT INTO invoice(
			invoice_number,user_id,firm_id,invoice_type_id,metal_type,
			customer_name,customer_phone,customer_address,customer_gstin,
			sub_total,cgst,sgst,grand_total,received,created_at
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`,
		inv.InvoiceNumber, inv.UserID, inv.FirmID, inv.InvoiceTypeID, inv.MetalType,
		inv.CustomerName, inv.CustomerPhone, inv.CustomerAddr, inv.CustomerGSTIN,
		inv.SubTotal, inv.CGST, inv.SGST, inv.GrandTotal, inv.Received, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateInvoiceNumber
		}
		return err
	}

	if err := r.insertItems(tx, inv.ID, inv.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// ------------------------ Queries ------------------------

const invoiceSelect = `
	SELECT
		i.id, i.invoice_number, i.user_id, i.firm_id, i.invoice_type_id, i.metal_type,
		i.customer_name, i.customer_phone, i.customer_address, i.customer_gstin,
		i.sub_total, i.cgst, i.sgst, i.grand_total, i.received,
		i.pdf_url, i.pdf_external_id, i.pdf_created_at,
		i.created_at, i.updated_at,

		f.id, f.name, f.address, f.gst_number, f.owner_id, f.created_at,
		t.id, t.name, t.description, t.created_at
	FROM invoice i
	JOIN firm f ON i.firm_id = f.id
	JOIN invoice_type t ON i.invoice_type_id = t.id
`

func (r *PostgresInvoiceRepo) scanInvoices(rows *sql.Rows) ([]*models.Invoice, error) {
	var result []*models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var firm models.Firm
		var typ models.InvoiceType

		err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.UserID, &inv.FirmID, &inv.InvoiceTypeID, &inv.MetalType,
			&inv.CustomerName, &inv.CustomerPhone, &inv.CustomerAddr, &inv.CustomerGSTIN,
			&inv.SubTotal, &inv.CGST, &inv.SGST, &inv.GrandTotal, &inv.Received,
			&inv.PdfURL, &inv.PdfExternalID, &inv.PdfCreatedAt,
			&inv.CreatedAt, &inv.UpdatedAt,

			&firm.ID, &firm.Name, &firm.Address, &firm.GSTNumber, &firm.OwnerID, &firm.CreatedAt,
			&typ.ID, &typ.Name, &typ.Description, &typ.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		inv.Firm = &firm
		inv.InvoiceType = &typ
		inv.Balance = inv.GrandTotal - inv.Received
		result = append(result, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load all items in one go (to avoid N+1)
	if len(result) > 0 {
		ids := make([]interface{}, len(result))
		idStrs := make([]string, len(result))
		for i, inv := range result {
			ids[i] = inv.ID
			idStrs[i] = fmt.Sprintf("$%d", i+1)
		}
		itemsQuery := fmt.Sprintf(`
			SELECT invoice_id, description, metal, huid, hsn_code,
			       gross_weight, less_weight, net_weight, purity,
			       rate, making_charges, hallmark_charges, gst_percent, line_total
			FROM invoice_item
			WHERE invoice_id IN (%s)
			ORDER BY id
		`, strings.Join(idStrs, ","))
		itemRows, err := r.DB.Query(itemsQuery, ids...)
		if err != nil {
			return nil, err
		}
		defer itemRows.Close()

		itemMap := make(map[int64][]models.LineItem)
		for itemRows.Next() {
			var invoiceID int64
			var it models.LineItem
			err := itemRows.Scan(&invoiceID, &it.Description, &it.Metal, &it.HUID, &it.HSNCode,
				&it.GrossWeight, &it.LessWeight, &it.NetWeight, &it.Purity,
				&it.Rate, &it.MakingCharges, &it.HallmarkCharges, &it.GSTPercent, &it.LineTotal)
			if err != nil {
				return nil, err
			}
			itemMap[invoiceID] = append(itemMap[invoiceID], it)
		}
		if err := itemRows.Err(); err != nil {
			return nil, err
		}

		for _, inv := range result {
			inv.Items = itemMap[inv.ID]
		}
	}

	return result, nil
}

func (r *PostgresInvoiceRepo) GetInvoices(userID int64) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(invoiceSelect+` WHERE i.user_id=$1 ORDER BY i.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanInvoices(rows)
}

func (r *PostgresInvoiceRepo) GetInvoiceByID(id, userID int64) (*models.Invoice, error) {
	rows, err := r.DB.Query(invoiceSelect+` WHERE i.id=$1 AND i.user_id=$2`, id, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result, err := r.scanInvoices(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// ------------------------ Update Invoice ------------------------

func (r *PostgresInvoiceRepo) UpdateInvoice(inv *models.Invoice) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.Exec(`
		UPDATE invoice SET
			invoice_number=$1,
			firm_id=$2,
			invoice_type_id=$3,
			metal_type=$4,
			customer_name=$5,
			customer_phone=$6,
			customer_address=$7,
			customer_gstin=$8,
			sub_total=$9,
			cgst=$10,
			sgst=$11,
			grand_total=$12,
			received=$13,
			updated_at=$14
		WHERE id=$15 AND user_id=$16
	`,
		inv.InvoiceNumber, inv.FirmID, inv.InvoiceTypeID, inv.MetalType,
		inv.CustomerName, inv.CustomerPhone, inv.CustomerAddr, inv.CustomerGSTIN,
		inv.SubTotal, inv.CGST, inv.SGST, inv.GrandTotal, inv.Received,
		now, inv.ID, inv.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateInvoiceNumber
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	inv.UpdatedAt = &now

	// Refresh items
	if _, err := tx.Exec(`DELETE FROM invoice_item WHERE invoice_id=$1`, inv.ID); err != nil {
		return err
	}
	if err := r.insertItems(tx, inv.ID, inv.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// ------------------------ Delete Invoice ------------------------

func (r *PostgresInvoiceRepo) DeleteInvoice(id, userID int64) (*models.Invoice, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	inv := &models.Invoice{ID: id, UserID: userID}
	err = tx.QueryRow(`
		SELECT invoice_number, pdf_url, pdf_external_id
		FROM invoice
		WHERE id=$1 AND user_id=$2
	`, id, userID).Scan(&inv.InvoiceNumber, &inv.PdfURL, &inv.PdfExternalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	// invoice_item rows go with the invoice (ON DELETE CASCADE)
	if _, err := tx.Exec(`DELETE FROM invoice WHERE id=$1 AND user_id=$2`, id, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}

// ------------------------ Numbering Helper ------------------------

func (r *PostgresInvoiceRepo) LastInvoiceNumber(userID int64) (string, error) {
	var number string
	err := r.DB.QueryRow(`
		SELECT invoice_number
		FROM invoice
		WHERE user_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID).Scan(&number)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return number, nil
}

// ------------------------ Daily Stats ------------------------

func (r *PostgresInvoiceRepo) DailyStats(userID int64, days int) ([]models.DailyStat, error) {
	rows, err := r.DB.Query(`
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS day,
		       COUNT(*),
		       COALESCE(SUM(grand_total), 0)
		FROM invoice
		WHERE user_id=$1
		GROUP BY created_at::date
		ORDER BY created_at::date DESC
		LIMIT $2
	`, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var s models.DailyStat
		if err := rows.Scan(&s.Date, &s.Count, &s.TotalAmount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ------------------------ Document Locator ------------------------

func (r *PostgresInvoiceRepo) UpdateDocumentLocator(id, userID int64, url, externalID string, t time.Time) error {
	res, err := r.DB.Exec(`
		UPDATE invoice
		SET pdf_url=$1, pdf_external_id=$2, pdf_created_at=$3
		WHERE id=$4 AND user_id=$5
	`, url, externalID, t, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
