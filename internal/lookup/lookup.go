// Package lookup memoizes project→client and client→name resolution for
// the duration of one run, so each unique key costs at most one remote
// fetch.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fattura/internal/core"
)

// ErrNoClient marks a project that has no associated client. Callers skip
// the entry; the result is never cached because the condition is observed
// per fetch, not a property of the key.
var ErrNoClient = errors.New("project has no client")

// Ports for the remote collaborator, satisfied by *toggl.Client.
type (
	ProjectFetcher interface {
		Project(ctx context.Context, id int64) (core.Project, error)
	}

	ClientFetcher interface {
		ClientByID(ctx context.Context, id int64) (core.Client, error)
	}
)

// Resolver caches both mappings for one run. It is owned by a single
// goroutine; there is no locking.
type Resolver struct {
	projects ProjectFetcher
	clients  ClientFetcher
	delay    time.Duration

	projectClients map[int64]int64
	clientNames    map[int64]string
}

// NewResolver creates a resolver. delay is the courtesy pause honored
// before every non-cached fetch against the remote API.
func NewResolver(projects ProjectFetcher, clients ClientFetcher, delay time.Duration) *Resolver {
	return &Resolver{
		projects:       projects,
		clients:        clients,
		delay:          delay,
		projectClients: make(map[int64]int64),
		clientNames:    make(map[int64]string),
	}
}

// ClientID resolves the client a project belongs to, fetching the project
// on the first miss. A project without a client returns ErrNoClient and
// leaves the cache untouched.
func (r *Resolver) ClientID(ctx context.Context, projectID int64) (int64, error) {
	if cid, ok := r.projectClients[projectID]; ok {
		return cid, nil
	}

	if err := r.throttle(ctx); err != nil {
		return 0, err
	}
	project, err := r.projects.Project(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("fetch project %d: %w", projectID, err)
	}
	if project.ClientID == nil {
		return 0, fmt.Errorf("project %d (%s): %w", projectID, project.Name, ErrNoClient)
	}

	r.projectClients[projectID] = *project.ClientID
	return *project.ClientID, nil
}

// ClientName resolves a client's name, fetching the record on the first
// miss. An unnamed client is malformed remote data and is returned as a
// hard error.
func (r *Resolver) ClientName(ctx context.Context, clientID int64) (string, error) {
	if name, ok := r.clientNames[clientID]; ok {
		return name, nil
	}

	if err := r.throttle(ctx); err != nil {
		return "", err
	}
	record, err := r.clients.ClientByID(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("fetch client %d: %w", clientID, err)
	}
	if err := record.Validate(); err != nil {
		return "", fmt.Errorf("client %d: %w", clientID, err)
	}

	r.clientNames[clientID] = record.Name
	return record.Name, nil
}

// throttle blocks for the configured delay before a fetch. The delay is a
// rate-limit courtesy to the remote API and must come before the request.
func (r *Resolver) throttle(ctx context.Context) error {
	if r.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
