package main

import (
	"context"
	"os"
	"time"

	"fattura/internal/cli"
	"fattura/internal/core"
	"fattura/internal/log"
	"fattura/internal/lookup"
	"fattura/internal/report"
	"fattura/internal/services"
	gsheet "fattura/internal/sheets/google"
	"fattura/internal/toggl"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger.WithComponent(log.ComponentConfig))

	ctx := context.Background()

	repo := cli.InitSQLite(logger.WithComponent(log.ComponentStorage), cfg.SQLiteDBPath)
	defer repo.Close()

	api := toggl.NewClient(cfg.APIBaseURL, cfg.APIToken)

	account, err := api.Me(ctx)
	if err != nil {
		logger.Error("Failed to fetch account", "error", err)
		os.Exit(1)
	}
	if err := account.Validate(); err != nil {
		logger.Error("Malformed account data", "error", err)
		os.Exit(1)
	}
	loc, err := time.LoadLocation(account.Timezone)
	if err != nil {
		logger.Error("Invalid account timezone", "timezone", account.Timezone, "error", err)
		os.Exit(1)
	}

	window := core.MonthWindow(time.Now(), loc, cfg.LookbackWeeks)
	logger.Info("Computed billing window",
		"window_start", window.Start.Format(time.RFC3339),
		"window_end", window.End.Format(time.RFC3339),
		"lookback_weeks", cfg.LookbackWeeks)

	entries, err := api.TimeEntries(ctx, window.Start, window.End)
	if err != nil {
		logger.Error("Failed to fetch time entries", "error", err)
		os.Exit(1)
	}
	logger.Info("Fetched time entries", "count", len(entries))

	resolver := lookup.NewResolver(api, api, cfg.FetchDelay)
	reconciler := services.NewReconciler(resolver, repo, cfg.TargetClient)

	result, err := reconciler.Reconcile(ctx, entries)
	if err != nil {
		logger.Error("Reconciliation failed", "error", err)
		os.Exit(1)
	}

	invoice := core.BuildInvoice(result.Totals, cfg.HourlyRate)
	if err := report.NewRenderer(os.Stdout).Render(window, invoice); err != nil {
		logger.Error("Failed to render report", "error", err)
		os.Exit(1)
	}

	if len(result.ToBill) == 0 {
		logger.Info("Nothing to bill", "skipped", result.Skipped)
		return
	}

	confirm := cli.StdinConfirm(os.Stdin, os.Stdout)
	approved, err := confirm(result.ToBill)
	if err != nil {
		logger.Error("Failed to read confirmation", "error", err)
		os.Exit(1)
	}
	if !approved {
		logger.Info("Commit declined, nothing persisted")
		return
	}

	if err := reconciler.Commit(ctx, result.ToBill); err != nil {
		logger.Error("Failed to commit billed set", "error", err)
		os.Exit(1)
	}
	logger.Info("Billed set committed", "batch_size", len(result.ToBill), "skipped", result.Skipped)

	// The billed set is already durable; export problems are reported but
	// never fail the run.
	if cfg.ExportEnabled() {
		sheetsLog := logger.WithComponent(log.ComponentSheets)
		exporter, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			sheetsLog.Error("Failed to initialize invoice export", "error", err)
			return
		}
		ref, err := exporter.AppendInvoice(ctx, window, invoice)
		if err != nil {
			sheetsLog.Error("Invoice export failed", "error", err, "spreadsheet_id", cfg.GoogleSpreadsheetID)
			return
		}
		sheetsLog.Info("Invoice exported", "range", ref)
	}
}
