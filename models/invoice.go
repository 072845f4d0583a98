package models

import "time"

// Metal types accepted on an invoice.
const (
	MetalGold   = "gold"
	MetalSilver = "silver"
	MetalBoth   = "both"
)

// LineItem is embedded in its invoice and has no independent identity.
// NetWeight and LineTotal are computed server side, never trusted from input.
type LineItem struct {
	Description     string  `json:"description" bson:"description" db:"description"`
	Metal           string  `json:"metal,omitempty" bson:"metal" db:"metal"`
	HUID            string  `json:"huid,omitempty" bson:"huid" db:"huid"`
	HSNCode         string  `json:"hsn_code,omitempty" bson:"hsn_code" db:"hsn_code"`
	GrossWeight     float64 `json:"gross_weight" bson:"gross_weight" db:"gross_weight"`
	LessWeight      float64 `json:"less_weight" bson:"less_weight" db:"less_weight"`
	NetWeight       float64 `json:"net_weight" bson:"net_weight" db:"net_weight"`
	Purity          string  `json:"purity,omitempty" bson:"purity" db:"purity"`
	Rate            float64 `json:"rate" bson:"rate" db:"rate"`
	MakingCharges   float64 `json:"making_charges" bson:"making_charges" db:"making_charges"`
	HallmarkCharges float64 `json:"hallmark_charges" bson:"hallmark_charges" db:"hallmark_charges"`
	GSTPercent      float64 `json:"gst_percent" bson:"gst_percent" db:"gst_percent"`
	LineTotal       float64 `json:"line_total" bson:"line_total" db:"line_total"`
}

type Invoice struct {
	ID            int64      `json:"id" bson:"_id,omitempty" db:"id"`
	InvoiceNumber string     `json:"invoice_number" bson:"invoice_number" db:"invoice_number"`
	UserID        int64      `json:"user_id" bson:"user_id" db:"user_id"`
	FirmID        int64      `json:"firm_id" bson:"firm_id" db:"firm_id"`
	InvoiceTypeID int64      `json:"invoice_type_id" bson:"invoice_type_id" db:"invoice_type_id"`
	MetalType     string     `json:"metal_type" bson:"metal_type" db:"metal_type"`
	CustomerName  string     `json:"customer_name" bson:"customer_name" db:"customer_name"`
	CustomerPhone string     `json:"customer_phone,omitempty" bson:"customer_phone" db:"customer_phone"`
	CustomerAddr  string     `json:"customer_address,omitempty" bson:"customer_address" db:"customer_address"`
	CustomerGSTIN string     `json:"customer_gstin,omitempty" bson:"customer_gstin" db:"customer_gstin"`
	Items         []LineItem `json:"items" bson:"items"`
	SubTotal      float64    `json:"sub_total" bson:"sub_total" db:"sub_total"`
	CGST          float64    `json:"cgst" bson:"cgst" db:"cgst"`
	SGST          float64    `json:"sgst" bson:"sgst" db:"sgst"`
	GrandTotal    float64    `json:"grand_total" bson:"grand_total" db:"grand_total"`
	Received      float64    `json:"received" bson:"received" db:"received"`
	Balance       float64    `json:"balance" bson:"-" db:"-"`
	PdfURL        *string    `json:"pdf_url,omitempty" bson:"pdf_url,omitempty" db:"pdf_url"`
	PdfExternalID *string    `json:"pdf_external_id,omitempty" bson:"pdf_external_id,omitempty" db:"pdf_external_id"`
	PdfCreatedAt  *time.Time `json:"pdf_created_at,omitempty" bson:"pdf_created_at,omitempty" db:"pdf_created_at"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" db:"updated_at"`

	// Nested objects for responses (denormalized)
	Firm        *Firm        `json:"firm,omitempty" bson:"-"`
	InvoiceType *InvoiceType `json:"invoice_type,omitempty" bson:"-"`
}

// DailyStat is one row of the per-day dashboard aggregate.
type DailyStat struct {
	Date        string  `json:"date" bson:"_id"`
	Count       int64   `json:"count" bson:"count"`
	TotalAmount float64 `json:"total_amount" bson:"total_amount"`
}
