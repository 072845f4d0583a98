package models

import "time"

// InvoiceType is shared, read-only reference data (cash bill, credit bill, ...).
type InvoiceType struct {
	ID          int64     `json:"id" bson:"_id,omitempty" db:"id"`
	Name        string    `json:"name" bson:"name" db:"name"`
	Description string    `json:"description,omitempty" bson:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
