package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"jewelbill/models"
	"jewelbill/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateInvoicePDF renders the invoice through the HTML template and prints
// it with headless Chrome. Returns nil bytes when the invoice is absent or
// not owned by the user.
func GenerateInvoicePDF(repo *repository.PDFRepository, invoiceID, userID int64, gstComponentRate float64) ([]byte, error) {
	inv, err := repo.GetInvoiceForPDF(invoiceID, userID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}

	formattedDate := "-"
	if !inv.CreatedAt.IsZero() {
		formattedDate = inv.CreatedAt.Format("02-Jan-2006")
	}

	typeName := ""
	if inv.InvoiceType != nil {
		typeName = inv.InvoiceType.Name
	}

	// The template dereferences the firm unconditionally
	if inv.Firm == nil {
		inv.Firm = &models.Firm{}
	}

	tmpl, err := template.New("invoice_template.html").
		Funcs(template.FuncMap{"add1": func(i int) int { return i + 1 }}).
		ParseFiles("templates/invoice_template.html")
	if err != nil {
		return nil, err
	}

	data := models.InvoicePDFData{
		Firm:       inv.Firm,
		Invoice:    inv,
		TypeName:   typeName,
		Date:       formattedDate,
		GSTLabel:   fmt.Sprintf("%.2g%%", gstComponentRate*100),
		TotalWords: NumberToCurrencyWords(inv.GrandTotal),
		ItemCount:  len(inv.Items),
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.invoice-sheet {
			page-break-inside: avoid;
			border: none;
		}
		</style>
		</head>
		<body><div class='invoice-sheet'>` + body.String() + `</div></body></html>`

	// Render from a temp file so Chrome resolves it like a normal page
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "invoice_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
