package main

import (
	"fmt"
	"log"
	"net/http"

	"jewelbill/billing"
	"jewelbill/config"
	"jewelbill/db"
	"jewelbill/db/mongo"
	"jewelbill/db/postgres"
	"jewelbill/handlers"
	"jewelbill/repository"
	"jewelbill/routes"
	"jewelbill/storage"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var invoiceRepo repository.InvoiceRepository
	var userRepo repository.UserRepository
	var firmRepo repository.FirmRepository
	var invoiceTypeRepo repository.InvoiceTypeRepository

	switch cfg.DBType {
	case "postgres":
		// Migrations only apply to the Postgres schema
		db.RunMigrations()

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		invoiceRepo = repository.NewPostgresInvoiceRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		firmRepo = repository.NewPostgresFirmRepo(pg.Conn)
		invoiceTypeRepo = repository.NewPostgresInvoiceTypeRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		invoiceRepo = repository.NewMongoInvoiceRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)
		firmRepo = repository.NewMongoFirmRepo(mg.Client)
		invoiceTypeRepo = repository.NewMongoInvoiceTypeRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	// Document storage is optional: without R2 credentials invoicing still
	// works, only PDF archival is off.
	var docs storage.DocumentStore
	var cleaner *storage.Cleaner
	if store, err := storage.NewR2StoreFromEnv(); err != nil {
		log.Printf("document storage disabled: %v", err)
	} else {
		docs = store
		cleaner = storage.NewCleaner(store)
		defer cleaner.Close()
	}

	calc := billing.NewCalculator(cfg.GSTComponentRate)

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo}
	firmHandler := &handlers.FirmHandler{Repo: firmRepo}
	invoiceTypeHandler := &handlers.InvoiceTypeHandler{Repo: invoiceTypeRepo}
	invoiceHandler := &handlers.InvoiceHandler{
		Repo:    invoiceRepo,
		Firms:   firmRepo,
		Calc:    calc,
		Cleaner: cleaner,
	}

	// PDF handler with combined repository
	pdfRepo := repository.NewPDFRepository(invoiceRepo)
	pdfHandler := &handlers.PDFHandler{
		Repo:             pdfRepo,
		Docs:             docs,
		GSTComponentRate: cfg.GSTComponentRate,
	}

	// Setup routes including PDF
	routes.SetupRoutes(userHandler, firmHandler, invoiceTypeHandler, invoiceHandler, pdfHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
