package core

import (
	"errors"
	"strings"
)

// DefaultDescription is used for entries logged without a description.
const DefaultDescription = "Other"

type (
	// TimeEntry is one logged time-tracking record as returned by the
	// remote API. Duration and ProjectID are pointers because their
	// absence means different things: a missing duration is malformed
	// data, a missing project just makes the entry unbillable.
	TimeEntry struct {
		ID          int64
		Description string
		Duration    *int64 // seconds; negative means the timer is still running
		ProjectID   *int64
	}

	// Project is a remote project record.
	Project struct {
		ID       int64
		Name     string
		ClientID *int64
	}

	// Client is a remote client record.
	Client struct {
		ID   int64
		Name string
	}

	// Account holds the subset of the remote account we need.
	Account struct {
		Timezone string // IANA name, e.g. "Europe/Berlin"
	}
)

var (
	ErrMissingDuration = errors.New("time entry has no duration")
	ErrClientUnnamed   = errors.New("client has no name")
	ErrNoTimezone      = errors.New("account has no timezone set")
)

// NormalizedDescription returns the trimmed description, or
// DefaultDescription when the entry has none.
func (e TimeEntry) NormalizedDescription() string {
	desc := strings.TrimSpace(e.Description)
	if desc == "" {
		return DefaultDescription
	}
	return desc
}

// Running reports whether the entry represents a still-running timer.
// The remote API encodes this as a negative duration.
func (e TimeEntry) Running() bool {
	return e.Duration != nil && *e.Duration < 0
}

func (e TimeEntry) Validate() error {
	if e.Duration == nil {
		return ErrMissingDuration
	}
	return nil
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrClientUnnamed
	}
	return nil
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Timezone) == "" {
		return ErrNoTimezone
	}
	return nil
}
