package handlers

import (
	"encoding/json"
	"net/http"

	"jewelbill/models"
	"jewelbill/repository"
)

type InvoiceTypeHandler struct {
	Repo repository.InvoiceTypeRepository
}

// GetInvoiceTypes returns the shared catalog
func (h *InvoiceTypeHandler) GetInvoiceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Repo.GetInvoiceTypes()
	if err != nil {
		internalError(w, "list invoice types", err)
		return
	}
	if types == nil {
		types = []*models.InvoiceType{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types)
}
