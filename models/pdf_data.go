package models

type InvoicePDFData struct {
	Firm       *Firm    // issuing firm letterhead
	Invoice    *Invoice // invoice details
	TypeName   string   // invoice category for the header
	Date       string   // formatted invoice date
	GSTLabel   string   // e.g. "1.5%"
	TotalWords string
	ItemCount  int
}
