package handlers

import "jewelbill/models"

// LineItemInput is one raw item row off the billing form. Numeric fields use
// the permissive coercion: strings, blanks and nulls all decode to a float.
type LineItemInput struct {
	Description     string         `json:"description"`
	Metal           string         `json:"metal"`
	HUID            string         `json:"huid"`
	HSNCode         string         `json:"hsn_code"`
	GrossWeight     models.Numeric `json:"gross_weight"`
	LessWeight      models.Numeric `json:"less_weight"`
	Purity          string         `json:"purity"`
	Rate            models.Numeric `json:"rate"`
	MakingCharges   models.Numeric `json:"making_charges"`
	HallmarkCharges models.Numeric `json:"hallmark_charges"`
	GSTPercent      models.Numeric `json:"gst_percent"`
}

func (in LineItemInput) toModel() models.LineItem {
	return models.LineItem{
		Description:     in.Description,
		Metal:           in.Metal,
		HUID:            in.HUID,
		HSNCode:         in.HSNCode,
		GrossWeight:     in.GrossWeight.Float64(),
		LessWeight:      in.LessWeight.Float64(),
		Purity:          in.Purity,
		Rate:            in.Rate.Float64(),
		MakingCharges:   in.MakingCharges.Float64(),
		HallmarkCharges: in.HallmarkCharges.Float64(),
		GSTPercent:      in.GSTPercent.Float64(),
	}
}

func toModelItems(in []LineItemInput) []models.LineItem {
	items := make([]models.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, it.toModel())
	}
	return items
}

// CreateInvoiceRequest is the create payload. Client-side totals are not part
// of the schema: the server computes them.
type CreateInvoiceRequest struct {
	FirmID        int64           `json:"firm_id"`
	InvoiceTypeID int64           `json:"invoice_type_id"`
	MetalType     string          `json:"metal_type"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerAddr  string          `json:"customer_address"`
	CustomerGSTIN string          `json:"customer_gstin"`
	Items         []LineItemInput `json:"items"`
	Received      models.Numeric  `json:"received"`
	InvoiceNumber string          `json:"invoice_number"`
}

// UpdateInvoiceRequest merges only the fields present in the payload onto the
// stored invoice; pointer fields distinguish "absent" from "zero".
type UpdateInvoiceRequest struct {
	FirmID        *int64           `json:"firm_id"`
	InvoiceTypeID *int64           `json:"invoice_type_id"`
	MetalType     *string          `json:"metal_type"`
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	CustomerAddr  *string          `json:"customer_address"`
	CustomerGSTIN *string          `json:"customer_gstin"`
	Items         *[]LineItemInput `json:"items"`
	Received      *models.Numeric  `json:"received"`
	InvoiceNumber *string          `json:"invoice_number"`
}

// CreateFirmRequest is the firm registration payload.
type CreateFirmRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
}

// AttachDocumentRequest carries the archived document locator.
type AttachDocumentRequest struct {
	URL        string `json:"url"`
	ExternalID string `json:"external_id"`
}
