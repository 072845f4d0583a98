package repository

import "errors"

var (
	// ErrDuplicateInvoiceNumber is returned when the store's unique index on
	// (user_id, invoice_number) rejects a write. The index is the only
	// uniqueness guarantee; repositories never pre-check before inserting.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already used")

	// ErrNotFound is returned by scoped updates that matched no row for the
	// given id and owner.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when a signup reuses a registered email.
	ErrEmailTaken = errors.New("email already exists")
)
