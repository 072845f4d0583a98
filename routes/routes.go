package routes

import (
	"net/http"
	"strings"

	"jewelbill/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func protected(h http.HandlerFunc) http.Handler {
	return withCORS(http.HandlerFunc(handlers.RecoverWrapper(handlers.RequireAuth(h))))
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	firmHandler *handlers.FirmHandler,
	invoiceTypeHandler *handlers.InvoiceTypeHandler,
	invoiceHandler *handlers.InvoiceHandler,
	pdfHandler *handlers.PDFHandler,
) {
	// Auth routes
	http.Handle("/api/auth/signup", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Signup))))
	http.Handle("/api/auth/login", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Login))))

	// Firm routes
	http.Handle("/api/firms", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			firmHandler.CreateFirm(w, r)
		case http.MethodGet:
			firmHandler.GetFirms(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Invoice type catalog
	http.Handle("/api/invoice-types", protected(invoiceTypeHandler.GetInvoiceTypes))

	// Invoice collection routes
	http.Handle("/api/invoices", protected(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			invoiceHandler.CreateInvoice(w, r)
		case http.MethodGet:
			invoiceHandler.GetInvoices(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Invoice subresources and by-ID routes
	http.Handle("/api/invoices/", protected(func(w http.ResponseWriter, r *http.Request) {
		rest := r.URL.Path[len("/api/invoices/"):]
		switch {
		case rest == "":
			w.WriteHeader(http.StatusNotFound)
		case rest == "stats":
			invoiceHandler.GetStats(w, r)
		case rest == "last-number":
			invoiceHandler.GetLastNumber(w, r)
		case rest == "pdf":
			pdfHandler.InvoicePDF(w, r)
		case strings.HasSuffix(rest, "/document"):
			if r.Method != http.MethodPut {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			invoiceHandler.AttachDocument(w, r, strings.TrimSuffix(rest, "/document"))
		default:
			switch r.Method {
			case http.MethodGet:
				invoiceHandler.GetInvoiceByID(w, r, rest)
			case http.MethodPut:
				invoiceHandler.UpdateInvoice(w, r, rest)
			case http.MethodDelete:
				invoiceHandler.DeleteInvoice(w, r, rest)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		}
	}))
}
