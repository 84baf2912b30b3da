// Package google exports committed invoice summaries to a Google
// spreadsheet. Authentication is service-account only; there is no
// interactive OAuth flow.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fattura/internal/core"
	ports "fattura/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var _ ports.InvoiceWriter = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet. Credentials come
// from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS, falling back to application default
// credentials.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	scope := goption.WithScopes(gsheet.SpreadsheetsScope)
	switch {
	case serviceAccountJSON != "":
		return gsheet.NewService(ctx, scope, goption.WithCredentialsJSON([]byte(serviceAccountJSON)))
	case serviceAccountFile != "":
		return gsheet.NewService(ctx, scope, goption.WithCredentialsFile(serviceAccountFile))
	default:
		return gsheet.NewService(ctx, scope)
	}
}

// AppendInvoice appends one row per billing line plus a totals row, and
// returns the updated range as reference.
func (c *Client) AppendInvoice(ctx context.Context, win core.Window, inv core.Invoice) (string, error) {
	exportedAt := time.Now().Format("2006-01-02")
	period := win.Start.Format("2006-01")

	values := make([][]interface{}, 0, len(inv.Lines)+1)
	for i, line := range inv.Lines {
		values = append(values, []interface{}{
			exportedAt, period, i + 1,
			line.Description,
			line.RoundedHours.StringFixed(2),
			line.Price.StringFixed(2),
		})
	}
	values = append(values, []interface{}{
		exportedAt, period, "",
		"Total",
		inv.TotalHours.StringFixed(2),
		inv.TotalPrice.StringFixed(2),
	})

	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:F", &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append invoice rows: %w", err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}
