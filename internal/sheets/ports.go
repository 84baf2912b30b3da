package sheets

import (
	"context"

	"fattura/internal/core"
)

// Ports for outbound adapters.
type (
	// InvoiceWriter persists a committed invoice summary to an external
	// destination. Export runs after the billed-set commit; a failure
	// here never un-commits anything.
	InvoiceWriter interface {
		AppendInvoice(ctx context.Context, win core.Window, inv core.Invoice) (ref string, err error)
	}
)
