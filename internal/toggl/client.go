// Package toggl is a minimal client for the Toggl Track v8 API, covering
// only the reads the reconciliation run needs.
package toggl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fattura/internal/core"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.track.toggl.com/api/v8"

// The API token goes in the basic-auth username; the password is this
// fixed sentinel.
const tokenPassword = "api_token"

// Client talks to the time-tracking API. All methods are fatal on
// transport errors, non-200 statuses and malformed JSON; the run has no
// retry policy.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
	}
}

// v8 responses wrap single records in a "data" envelope.
type (
	meResponse struct {
		Data struct {
			Timezone string `json:"timezone"`
		} `json:"data"`
	}

	projectResponse struct {
		Data struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Cid  *int64 `json:"cid"`
		} `json:"data"`
	}

	clientResponse struct {
		Data struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}

	// timeEntryRecord keeps duration and pid as pointers so a missing
	// field is distinguishable from zero.
	timeEntryRecord struct {
		ID          int64  `json:"id"`
		Description string `json:"description"`
		Duration    *int64 `json:"duration"`
		Pid         *int64 `json:"pid"`
	}
)

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (core.Account, error) {
	var resp meResponse
	if err := c.getJSON(ctx, "/me", nil, &resp); err != nil {
		return core.Account{}, err
	}
	return core.Account{Timezone: resp.Data.Timezone}, nil
}

// TimeEntries lists the entries whose start falls inside the window.
func (c *Client) TimeEntries(ctx context.Context, start, end time.Time) ([]core.TimeEntry, error) {
	params := url.Values{}
	params.Set("start_date", start.Format(time.RFC3339))
	params.Set("end_date", end.Format(time.RFC3339))

	var records []timeEntryRecord
	if err := c.getJSON(ctx, "/time_entries", params, &records); err != nil {
		return nil, err
	}

	entries := make([]core.TimeEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, core.TimeEntry{
			ID:          r.ID,
			Description: r.Description,
			Duration:    r.Duration,
			ProjectID:   r.Pid,
		})
	}
	return entries, nil
}

// Project fetches one project record.
func (c *Client) Project(ctx context.Context, id int64) (core.Project, error) {
	var resp projectResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/projects/%d", id), nil, &resp); err != nil {
		return core.Project{}, err
	}
	return core.Project{
		ID:       resp.Data.ID,
		Name:     resp.Data.Name,
		ClientID: resp.Data.Cid,
	}, nil
}

// ClientByID fetches one client record.
func (c *Client) ClientByID(ctx context.Context, id int64) (core.Client, error) {
	var resp clientResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/clients/%d", id), nil, &resp); err != nil {
		return core.Client{}, err
	}
	return core.Client{ID: resp.Data.ID, Name: resp.Data.Name}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	addr := c.baseURL + path
	if len(params) > 0 {
		addr += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.SetBasicAuth(c.token, tokenPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
