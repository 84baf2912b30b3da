// Package report renders the ranked invoice summary. It only formats what
// the billing rounder produced; no arithmetic happens here.
package report

import (
	"fmt"
	"io"
	"time"

	"fattura/internal/core"
)

type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render prints the billing window, one ranked line per description and
// the totals with the audit deviation. All amounts show two decimals.
func (r *Renderer) Render(win core.Window, inv core.Invoice) error {
	if _, err := fmt.Fprintf(r.w, "From %s to %s\n\n",
		win.Start.Format(time.RFC3339), win.End.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, line := range inv.Lines {
		_, err := fmt.Fprintf(r.w, "%3d. %-40s %8s h %12s\n",
			i+1, line.Description, line.RoundedHours.StringFixed(2), line.Price.StringFixed(2))
		if err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.w, "\n%-45s %8s h %12s\n",
		"Total", inv.TotalHours.StringFixed(2), inv.TotalPrice.StringFixed(2)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.w, "Rounding deviation (not billed): %s\n", inv.DeviationString())
	return err
}
