package handlers

import (
	"encoding/json"
	"net/http"

	"jewelbill/models"
	"jewelbill/repository"
)

type FirmHandler struct {
	Repo repository.FirmRepository
}

// CreateFirm handler. The owner comes off the token, never the payload.
func (h *FirmHandler) CreateFirm(w http.ResponseWriter, r *http.Request) {
	var req CreateFirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Address == "" {
		http.Error(w, "name and address are required", http.StatusBadRequest)
		return
	}

	firm := &models.Firm{
		Name:      req.Name,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
		OwnerID:   UserIDFrom(r),
	}

	if err := h.Repo.CreateFirm(firm); err != nil {
		internalError(w, "create firm", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(firm)
}

// GetFirms handler
func (h *FirmHandler) GetFirms(w http.ResponseWriter, r *http.Request) {
	firms, err := h.Repo.GetFirms(UserIDFrom(r))
	if err != nil {
		internalError(w, "list firms", err)
		return
	}
	if firms == nil {
		firms = []*models.Firm{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(firms)
}
