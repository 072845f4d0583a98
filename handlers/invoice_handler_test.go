package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jewelbill/billing"
	"jewelbill/models"
	"jewelbill/repository"
)

type fakeInvoiceRepo struct {
	nextID   int64
	invoices map[int64]*models.Invoice
	order    []int64
	stats    []models.DailyStat
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[int64]*models.Invoice{}}
}

func (r *fakeInvoiceRepo) CreateInvoice(inv *models.Invoice) error {
	for _, existing := range r.invoices {
		if existing.UserID == inv.UserID && existing.InvoiceNumber == inv.InvoiceNumber {
			return repository.ErrDuplicateInvoiceNumber
		}
	}
	r.nextID++
	inv.ID = r.nextID
	inv.CreatedAt = time.Now()
	stored := *inv
	r.invoices[inv.ID] = &stored
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *fakeInvoiceRepo) GetInvoices(userID int64) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for i := len(r.order) - 1; i >= 0; i-- {
		if inv := r.invoices[r.order[i]]; inv != nil && inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) GetInvoiceByID(id, userID int64) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) UpdateInvoice(inv *models.Invoice) error {
	existing, ok := r.invoices[inv.ID]
	if !ok || existing.UserID != inv.UserID {
		return repository.ErrNotFound
	}
	for id, other := range r.invoices {
		if id != inv.ID && other.UserID == inv.UserID && other.InvoiceNumber == inv.InvoiceNumber {
			return repository.ErrDuplicateInvoiceNumber
		}
	}
	stored := *inv
	r.invoices[inv.ID] = &stored
	return nil
}

func (r *fakeInvoiceRepo) DeleteInvoice(id, userID int64) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	delete(r.invoices, id)
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) LastInvoiceNumber(userID int64) (string, error) {
	for i := len(r.order) - 1; i >= 0; i-- {
		if inv := r.invoices[r.order[i]]; inv != nil && inv.UserID == userID {
			return inv.InvoiceNumber, nil
		}
	}
	return "", nil
}

// DailyStats mirrors the store contract: rows come pre-sorted newest day
// first and the result is capped at the requested number of distinct days.
func (r *fakeInvoiceRepo) DailyStats(userID int64, days int) ([]models.DailyStat, error) {
	if len(r.stats) > days {
		return r.stats[:days], nil
	}
	return r.stats, nil
}

func (r *fakeInvoiceRepo) UpdateDocumentLocator(id, userID int64, url, externalID string, t time.Time) error {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return repository.ErrNotFound
	}
	inv.PdfURL = &url
	inv.PdfExternalID = &externalID
	inv.PdfCreatedAt = &t
	return nil
}

type fakeFirmRepo struct {
	firms map[int64]*models.Firm
}

func (r *fakeFirmRepo) CreateFirm(firm *models.Firm) error {
	r.firms[firm.ID] = firm
	return nil
}

func (r *fakeFirmRepo) GetFirms(ownerID int64) ([]*models.Firm, error) {
	var out []*models.Firm
	for _, f := range r.firms {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFirmRepo) GetFirmByID(id, ownerID int64) (*models.Firm, error) {
	f, ok := r.firms[id]
	if !ok || f.OwnerID != ownerID {
		return nil, nil
	}
	return f, nil
}

func newTestHandler() (*InvoiceHandler, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo()
	firms := &fakeFirmRepo{firms: map[int64]*models.Firm{
		1: {ID: 1, Name: "Shree Jewellers", OwnerID: 10},
		2: {ID: 2, Name: "Other Firm", OwnerID: 99},
	}}
	return &InvoiceHandler{
		Repo:  repo,
		Firms: firms,
		Calc:  billing.NewCalculator(0.015),
	}, repo
}

func authRequest(method, target string, body string, userID int64) *http.Request {
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, rd)
	return req.WithContext(ContextWithUserID(req.Context(), userID))
}

const createBody = `{
	"invoice_number": "IS/1",
	"firm_id": 1,
	"invoice_type_id": 1,
	"metal_type": "gold",
	"customer_name": "Ramesh",
	"items": [
		{"description": "Gold Chain", "gross_weight": "10.500", "less_weight": "0.500", "rate": 5000, "making_charges": 200, "hallmark_charges": 0}
	],
	"received": 50000
}`

func TestCreateInvoiceComputesTotals(t *testing.T) {
	h, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if inv.ID == 0 {
		t.Error("expected assigned id")
	}
	if got := inv.Items[0].NetWeight; got != 10.0 {
		t.Errorf("net weight = %v, want 10", got)
	}
	if got := inv.Items[0].LineTotal; got != 50200.00 {
		t.Errorf("line total = %v, want 50200", got)
	}
	if inv.SubTotal != 50200.00 {
		t.Errorf("sub total = %v, want 50200", inv.SubTotal)
	}
	if inv.CGST != 753.00 || inv.SGST != 753.00 {
		t.Errorf("gst = %v / %v, want 753 each", inv.CGST, inv.SGST)
	}
	if inv.GrandTotal != 51706 {
		t.Errorf("grand total = %v, want 51706", inv.GrandTotal)
	}
	if inv.Balance != 1706 {
		t.Errorf("balance = %v, want 1706", inv.Balance)
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	h, _ := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"missing number", `{"firm_id":1,"metal_type":"gold","items":[{"description":"x"}]}`},
		{"no items", `{"invoice_number":"IS/1","firm_id":1,"metal_type":"gold","items":[]}`},
		{"bad metal", `{"invoice_number":"IS/1","firm_id":1,"metal_type":"platinum","items":[{"description":"x"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", tc.body, 10))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestCreateInvoiceForeignFirm(t *testing.T) {
	h, _ := newTestHandler()

	body := strings.Replace(createBody, `"firm_id": 1`, `"firm_id": 2`, 1)
	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", body, 10))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	h, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))
	if w.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409", w.Code)
	}
}

func TestGetInvoiceCrossUser(t *testing.T) {
	h, repo := newTestHandler()

	inv := &models.Invoice{InvoiceNumber: "IS/1", UserID: 10, FirmID: 1}
	if err := repo.CreateInvoice(inv); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.GetInvoiceByID(w, authRequest(http.MethodGet, "/api/invoices/1", "", 99), "1")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateInvoiceMergesAndRecomputes(t *testing.T) {
	h, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}

	// Only received changes; items and totals must survive the merge.
	w = httptest.NewRecorder()
	h.UpdateInvoice(w, authRequest(http.MethodPut, "/api/invoices/1", `{"received": 51706}`, 10), "1")
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}

	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatal(err)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(inv.Items))
	}
	if inv.GrandTotal != 51706 {
		t.Errorf("grand total = %v, want 51706", inv.GrandTotal)
	}
	if inv.Balance != 0 {
		t.Errorf("balance = %v, want 0", inv.Balance)
	}
}

func TestUpdateInvoiceIgnoresClientTotals(t *testing.T) {
	h, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}

	// Totals in the payload are not part of the update schema.
	w = httptest.NewRecorder()
	h.UpdateInvoice(w, authRequest(http.MethodPut, "/api/invoices/1", `{"grand_total": 1, "sub_total": 1}`, 10), "1")
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d", w.Code)
	}

	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatal(err)
	}
	if inv.GrandTotal != 51706 {
		t.Errorf("grand total = %v, want 51706", inv.GrandTotal)
	}
}

func TestDeleteInvoice(t *testing.T) {
	h, repo := newTestHandler()

	url := "https://cdn.example.com/invoice_1.pdf"
	inv := &models.Invoice{InvoiceNumber: "IS/1", UserID: 10, FirmID: 1, PdfURL: &url}
	if err := repo.CreateInvoice(inv); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	h.DeleteInvoice(w, authRequest(http.MethodDelete, "/api/invoices/1", "", 10), "1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if _, ok := repo.invoices[1]; ok {
		t.Error("invoice still present after delete")
	}

	// Same id again, and a foreign user's id, both read as absent.
	w = httptest.NewRecorder()
	h.DeleteInvoice(w, authRequest(http.MethodDelete, "/api/invoices/1", "", 10), "1")
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: status = %d, want 404", w.Code)
	}
}

func TestLastNumberSentinel(t *testing.T) {
	h, repo := newTestHandler()

	w := httptest.NewRecorder()
	h.GetLastNumber(w, authRequest(http.MethodGet, "/api/invoices/last-number", "", 10))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["invoice_number"] != "IS/0" {
		t.Errorf("invoice_number = %q, want IS/0", out["invoice_number"])
	}

	if err := repo.CreateInvoice(&models.Invoice{InvoiceNumber: "IS/7", UserID: 10, FirmID: 1}); err != nil {
		t.Fatal(err)
	}
	w = httptest.NewRecorder()
	h.GetLastNumber(w, authRequest(http.MethodGet, "/api/invoices/last-number", "", 10))
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["invoice_number"] != "IS/7" {
		t.Errorf("invoice_number = %q, want IS/7", out["invoice_number"])
	}
}

func TestAttachDocument(t *testing.T) {
	h, repo := newTestHandler()

	if err := repo.CreateInvoice(&models.Invoice{InvoiceNumber: "IS/1", UserID: 10, FirmID: 1}); err != nil {
		t.Fatal(err)
	}

	body := `{"url":"https://cdn.example.com/invoice_1_abc.pdf","external_id":"invoice_1_abc.pdf"}`

	w := httptest.NewRecorder()
	h.AttachDocument(w, authRequest(http.MethodPut, "/api/invoices/1/document", `{"url":""}`, 10), "1")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty locator: status = %d, want 400", w.Code)
	}

	// Attaching twice is a plain overwrite.
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		h.AttachDocument(w, authRequest(http.MethodPut, "/api/invoices/1/document", body, 10), "1")
		if w.Code != http.StatusOK {
			t.Fatalf("attach #%d: status = %d, body %s", i+1, w.Code, w.Body.String())
		}
	}
	if repo.invoices[1].PdfURL == nil || *repo.invoices[1].PdfURL != "https://cdn.example.com/invoice_1_abc.pdf" {
		t.Error("locator not stored")
	}

	w = httptest.NewRecorder()
	h.AttachDocument(w, authRequest(http.MethodPut, "/api/invoices/99/document", body, 10), "99")
	if w.Code != http.StatusNotFound {
		t.Fatalf("absent invoice: status = %d, want 404", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	h, repo := newTestHandler()

	// No invoices yet: an empty JSON array, never null.
	w := httptest.NewRecorder()
	h.GetStats(w, authRequest(http.MethodGet, "/api/invoices/stats", "", 10))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}

	// Nine distinct days in the store, newest first.
	newest := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		day := newest.AddDate(0, 0, -i)
		repo.stats = append(repo.stats, models.DailyStat{
			Date:        day.Format("2006-01-02"),
			Count:       int64(i + 1),
			TotalAmount: float64((i + 1) * 1000),
		})
	}

	w = httptest.NewRecorder()
	h.GetStats(w, authRequest(http.MethodGet, "/api/invoices/stats", "", 10))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var stats []models.DailyStat
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if len(stats) != 7 {
		t.Fatalf("days = %d, want 7", len(stats))
	}
	if stats[0].Date != "2026-08-30" {
		t.Errorf("first day = %s, want 2026-08-30", stats[0].Date)
	}
	if stats[6].Date != "2026-08-24" {
		t.Errorf("last day = %s, want 2026-08-24", stats[6].Date)
	}
	if stats[0].Count != 1 || stats[0].TotalAmount != 1000 {
		t.Errorf("first day = %+v, want count 1 total 1000", stats[0])
	}

	// Wire shape of a row.
	var raw []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"date", "count", "total_amount"} {
		if _, ok := raw[0][field]; !ok {
			t.Errorf("stats row missing %q field", field)
		}
	}
}

func TestUpdateInvoiceRenumberCollision(t *testing.T) {
	h, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("create IS/1: status = %d", w.Code)
	}

	second := strings.Replace(createBody, `"invoice_number": "IS/1"`, `"invoice_number": "IS/2"`, 1)
	w = httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", second, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("create IS/2: status = %d", w.Code)
	}

	// Renumbering the second invoice onto the first's number must collide.
	w = httptest.NewRecorder()
	h.UpdateInvoice(w, authRequest(http.MethodPut, "/api/invoices/2", `{"invoice_number":"IS/1"}`, 10), "2")
	if w.Code != http.StatusConflict {
		t.Fatalf("renumber: status = %d, want 409", w.Code)
	}

	// Keeping its own number is not a collision.
	w = httptest.NewRecorder()
	h.UpdateInvoice(w, authRequest(http.MethodPut, "/api/invoices/2", `{"invoice_number":"IS/2"}`, 10), "2")
	if w.Code != http.StatusOK {
		t.Fatalf("self renumber: status = %d, want 200", w.Code)
	}
}

func TestUpdateInvoiceKeepsExpandedFirm(t *testing.T) {
	h, _ := newTestHandler()
	h.Firms.(*fakeFirmRepo).firms[3] = &models.Firm{ID: 3, Name: "Branch Two", OwnerID: 10}

	w := httptest.NewRecorder()
	h.CreateInvoice(w, authRequest(http.MethodPost, "/api/invoices", createBody, 10))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.UpdateInvoice(w, authRequest(http.MethodPut, "/api/invoices/1", `{"firm_id":3}`, 10), "1")
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}

	var inv models.Invoice
	if err := json.Unmarshal(w.Body.Bytes(), &inv); err != nil {
		t.Fatal(err)
	}
	if inv.Firm == nil || inv.Firm.Name != "Branch Two" {
		t.Errorf("firm = %+v, want expanded Branch Two", inv.Firm)
	}
}

func TestGetInvoicesEmptyList(t *testing.T) {
	h, _ := newTestHandler()

	w := httptest.NewRecorder()
	h.GetInvoices(w, authRequest(http.MethodGet, "/api/invoices", "", 10))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}
