package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"jewelbill/repository"
	"jewelbill/storage"
	"jewelbill/utils"
)

type PDFHandler struct {
	Repo             *repository.PDFRepository
	Docs             storage.DocumentStore
	GSTComponentRate float64
}

// InvoicePDF handles the API request to generate and archive an invoice PDF.
func (h *PDFHandler) InvoicePDF(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFrom(r)

	// Parse invoice ID
	invoiceIDStr := r.URL.Query().Get("id")
	if invoiceIDStr == "" {
		http.Error(w, "missing invoice id", http.StatusBadRequest)
		return
	}

	invoiceID, err := strconv.ParseInt(invoiceIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid invoice id", http.StatusBadRequest)
		return
	}

	// Generate PDF bytes
	pdfBytes, err := utils.GenerateInvoicePDF(h.Repo, invoiceID, userID, h.GSTComponentRate)
	if err != nil {
		internalError(w, "generate invoice PDF", err)
		return
	}
	if len(pdfBytes) == 0 {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}

	if h.Docs == nil {
		http.Error(w, "document storage not configured", http.StatusInternalServerError)
		return
	}

	// Key is random per generation so a regenerated PDF never overwrites the
	// copy an old link may still point at.
	key := fmt.Sprintf("invoice_%d_%s.pdf", invoiceID, uuid.New().String())

	url, err := h.Docs.Upload(pdfBytes, key)
	if err != nil {
		internalError(w, "upload invoice PDF", err)
		return
	}

	// Record the locator. A failure here orphans the uploaded object, which
	// only costs storage; a retry uploads under a fresh key.
	if err := h.Repo.InvoiceRepo.UpdateDocumentLocator(invoiceID, userID, url, key, time.Now().UTC()); err != nil {
		internalError(w, "record pdf locator", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url, "external_id": key})
}
