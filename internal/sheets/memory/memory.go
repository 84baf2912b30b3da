// Package memory is an in-memory InvoiceWriter used in tests and as a
// stand-in when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"

	"fattura/internal/core"
	ports "fattura/internal/sheets"
)

type Export struct {
	Window  core.Window
	Invoice core.Invoice
}

type Store struct {
	Exports []Export
	Err     error // returned by AppendInvoice when set
}

var _ ports.InvoiceWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AppendInvoice(ctx context.Context, win core.Window, inv core.Invoice) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Exports = append(s.Exports, Export{Window: win, Invoice: inv})
	return fmt.Sprintf("memory:%d", len(s.Exports)), nil
}
