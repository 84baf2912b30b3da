// Package services orchestrates the reconciliation pipeline over small
// ports, keeping the remote API, lookup cache and billed-set swappable in
// tests.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fattura/internal/core"
	"fattura/internal/lookup"
)

type (
	// ClientResolver resolves which client an entry belongs to.
	// Satisfied by *lookup.Resolver.
	ClientResolver interface {
		ClientID(ctx context.Context, projectID int64) (int64, error)
		ClientName(ctx context.Context, clientID int64) (string, error)
	}

	// BilledStore is the persistent billed-set.
	// Satisfied by *storage.SQLiteRepository.
	BilledStore interface {
		IsBilled(ctx context.Context, entryID int64) (bool, error)
		MarkBilled(ctx context.Context, entryIDs []int64) error
	}
)

// Reconciler filters and aggregates time entries for the target client.
type Reconciler struct {
	resolver     ClientResolver
	store        BilledStore
	targetClient string
}

// Result is one run's aggregation outcome.
type Result struct {
	// Totals maps normalized description to accumulated seconds. Entries
	// sharing a description merge into one line by design.
	Totals map[string]int64
	// ToBill lists the entry IDs behind Totals, in input order. These are
	// the IDs a confirmed commit marks billed.
	ToBill []int64
	// Skipped counts entries excluded by a warning condition.
	Skipped int
}

func NewReconciler(resolver ClientResolver, store BilledStore, targetClient string) *Reconciler {
	return &Reconciler{
		resolver:     resolver,
		store:        store,
		targetClient: targetClient,
	}
}

// Reconcile processes entries in order. Skippable conditions (negative
// duration, missing project, project without client) log a warning and
// exclude the entry; everything else is fatal and aborts the run before
// any store mutation.
func (r *Reconciler) Reconcile(ctx context.Context, entries []core.TimeEntry) (Result, error) {
	result := Result{Totals: make(map[string]int64)}

	for _, entry := range entries {
		billed, err := r.store.IsBilled(ctx, entry.ID)
		if err != nil {
			return Result{}, fmt.Errorf("check billed flag: %w", err)
		}
		if billed {
			continue
		}

		desc := entry.NormalizedDescription()

		if err := entry.Validate(); err != nil {
			return Result{}, fmt.Errorf("entry %d (%s): %w", entry.ID, desc, err)
		}
		if entry.Running() {
			slog.WarnContext(ctx, "Skipping running entry (negative duration)",
				"entry_id", entry.ID, "description", desc)
			result.Skipped++
			continue
		}
		if entry.ProjectID == nil {
			slog.WarnContext(ctx, "Skipping entry without project",
				"entry_id", entry.ID, "description", desc)
			result.Skipped++
			continue
		}

		clientID, err := r.resolver.ClientID(ctx, *entry.ProjectID)
		if errors.Is(err, lookup.ErrNoClient) {
			slog.WarnContext(ctx, "Skipping entry, project has no client",
				"entry_id", entry.ID, "project_id", *entry.ProjectID, "description", desc)
			result.Skipped++
			continue
		}
		if err != nil {
			return Result{}, err
		}

		clientName, err := r.resolver.ClientName(ctx, clientID)
		if err != nil {
			return Result{}, err
		}

		if clientName != r.targetClient {
			continue
		}

		result.Totals[desc] += *entry.Duration
		result.ToBill = append(result.ToBill, entry.ID)
	}

	return result, nil
}

// Commit durably marks the batch as billed. Callers gate this behind the
// operator confirmation; it is the run's only write.
func (r *Reconciler) Commit(ctx context.Context, entryIDs []int64) error {
	if err := r.store.MarkBilled(ctx, entryIDs); err != nil {
		return fmt.Errorf("commit billed set: %w", err)
	}
	return nil
}
