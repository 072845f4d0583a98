package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"jewelbill/billing"
	"jewelbill/models"
	"jewelbill/repository"
	"jewelbill/storage"
)

// Sentinel returned by the numbering helper before a user's first invoice.
const firstInvoiceNumberSeed = "IS/0"

type InvoiceHandler struct {
	Repo    repository.InvoiceRepository
	Firms   repository.FirmRepository
	Calc    *billing.Calculator
	Cleaner *storage.Cleaner
}

func validMetalType(mt string) bool {
	return mt == models.MetalGold || mt == models.MetalSilver || mt == models.MetalBoth
}

// internalError hides driver/store details from the caller; the message is
// only logged.
func internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// CreateInvoice handler
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFrom(r)

	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.InvoiceNumber == "" {
		http.Error(w, "invoiceNumber is required", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "at least one item is required", http.StatusBadRequest)
		return
	}
	if !validMetalType(req.MetalType) {
		http.Error(w, "metal type must be gold, silver or both", http.StatusBadRequest)
		return
	}

	// The firm must belong to the caller. A foreign firm id is an
	// authorization failure, deliberately not a 404.
	firm, err := h.Firms.GetFirmByID(req.FirmID, userID)
	if err != nil {
		internalError(w, "create invoice: firm lookup", err)
		return
	}
	if firm == nil {
		http.Error(w, "unauthorized firm access", http.StatusForbidden)
		return
	}

	inv := &models.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		UserID:        userID,
		FirmID:        req.FirmID,
		InvoiceTypeID: req.InvoiceTypeID,
		MetalType:     req.MetalType,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerAddr:  req.CustomerAddr,
		CustomerGSTIN: req.CustomerGSTIN,
		Items:         toModelItems(req.Items),
		Received:      req.Received.Float64(),
	}
	h.Calc.Apply(inv)

	if err := h.Repo.CreateInvoice(inv); err != nil {
		if errors.Is(err, repository.ErrDuplicateInvoiceNumber) {
			http.Error(w, "invoice number already used", http.StatusConflict)
			return
		}
		internalError(w, "create invoice", err)
		return
	}

	inv.Firm = firm

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(inv)
}

// GetInvoices handler
func (h *InvoiceHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetInvoices(UserIDFrom(r))
	if err != nil {
		internalError(w, "list invoices", err)
		return
	}
	if list == nil {
		list = []*models.Invoice{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetInvoiceByID handler. Foreign invoices come back 404: existence is not
// revealed across users.
func (h *InvoiceHandler) GetInvoiceByID(w http.ResponseWriter, r *http.Request, id string) {
	invoiceID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	inv, err := h.Repo.GetInvoiceByID(invoiceID, UserIDFrom(r))
	if err != nil {
		internalError(w, "get invoice", err)
		return
	}
	if inv == nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(inv)
}

// UpdateInvoice merges the fields present in the payload onto the stored
// record, then recomputes every total server side.
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request, id string) {
	userID := UserIDFrom(r)

	invoiceID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	var req UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.Repo.GetInvoiceByID(invoiceID, userID)
	if err != nil {
		internalError(w, "update invoice: fetch", err)
		return
	}
	if inv == nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}

	if req.FirmID != nil && *req.FirmID != inv.FirmID {
		firm, err := h.Firms.GetFirmByID(*req.FirmID, userID)
		if err != nil {
			internalError(w, "update invoice: firm lookup", err)
			return
		}
		if firm == nil {
			http.Error(w, "unauthorized firm access", http.StatusForbidden)
			return
		}
		inv.FirmID = *req.FirmID
		inv.Firm = firm
	}
	if req.InvoiceTypeID != nil {
		inv.InvoiceTypeID = *req.InvoiceTypeID
	}
	if req.MetalType != nil {
		if !validMetalType(*req.MetalType) {
			http.Error(w, "metal type must be gold, silver or both", http.StatusBadRequest)
			return
		}
		inv.MetalType = *req.MetalType
	}
	if req.CustomerName != nil {
		inv.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		inv.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerAddr != nil {
		inv.CustomerAddr = *req.CustomerAddr
	}
	if req.CustomerGSTIN != nil {
		inv.CustomerGSTIN = *req.CustomerGSTIN
	}
	if req.Items != nil {
		if len(*req.Items) == 0 {
			http.Error(w, "at least one item is required", http.StatusBadRequest)
			return
		}
		inv.Items = toModelItems(*req.Items)
	}
	if req.Received != nil {
		inv.Received = req.Received.Float64()
	}
	if req.InvoiceNumber != nil {
		if *req.InvoiceNumber == "" {
			http.Error(w, "invoiceNumber is required", http.StatusBadRequest)
			return
		}
		inv.InvoiceNumber = *req.InvoiceNumber
	}

	h.Calc.Apply(inv)

	if err := h.Repo.UpdateInvoice(inv); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateInvoiceNumber):
			http.Error(w, "invoice number already used", http.StatusConflict)
		case errors.Is(err, repository.ErrNotFound):
			http.Error(w, "invoice not found", http.StatusNotFound)
		default:
			internalError(w, "update invoice", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(inv)
}

// DeleteInvoice removes the record; the archived PDF is cleaned up off the
// request path and can never fail the delete.
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request, id string) {
	invoiceID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	inv, err := h.Repo.DeleteInvoice(invoiceID, UserIDFrom(r))
	if err != nil {
		internalError(w, "delete invoice", err)
		return
	}
	if inv == nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}

	if h.Cleaner != nil && inv.PdfURL != nil {
		h.Cleaner.Enqueue(*inv.PdfURL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"success":true,"message":"Invoice deleted successfully"}`))
}

// GetStats reports the caller's invoices grouped per day, most recent first.
func (h *InvoiceHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.DailyStats(UserIDFrom(r), 7)
	if err != nil {
		internalError(w, "invoice stats", err)
		return
	}
	if stats == nil {
		stats = []models.DailyStat{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

// GetLastNumber reports the most recently used invoice number so the form can
// propose the next one. Advisory only; create still races on the unique index.
func (h *InvoiceHandler) GetLastNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.Repo.LastInvoiceNumber(UserIDFrom(r))
	if err != nil {
		internalError(w, "last invoice number", err)
		return
	}
	if number == "" {
		number = firstInvoiceNumberSeed
	}

	writeJSON(w, http.StatusOK, map[string]string{"invoice_number": number})
}

// AttachDocument stores the archived-PDF locator on the invoice. A pure
// overwrite, safe to retry.
func (h *InvoiceHandler) AttachDocument(w http.ResponseWriter, r *http.Request, id string) {
	invoiceID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		http.Error(w, "invalid invoice ID", http.StatusBadRequest)
		return
	}

	var req AttachDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.ExternalID == "" {
		http.Error(w, "url and external_id are required", http.StatusBadRequest)
		return
	}

	err = h.Repo.UpdateDocumentLocator(invoiceID, UserIDFrom(r), req.URL, req.ExternalID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}
		internalError(w, "attach document", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true}`))
}
