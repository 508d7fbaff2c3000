// SPDX-License-Identifier: MIT

// Package store defines the dashboard backend boundary and its concrete
// clients. The annotation engine only depends on the Store interface; retry,
// TLS and credential handling live inside the clients.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports a dashboard that does not exist or has no body.
// Implementations wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("dashboard not found")

// DashboardEntry is one record of the backend's dashboard listing.
type DashboardEntry struct {
	Name string `json:"name"`
}

// Page is one page of the dashboard listing. An empty NextToken means the
// listing is exhausted.
type Page struct {
	Entries   []DashboardEntry
	NextToken string
}

// Store is the monitoring backend a run reads dashboards from and writes
// them back to.
type Store interface {
	// GetDashboard returns the serialized body of the named dashboard.
	GetDashboard(ctx context.Context, name string) (string, error)

	// PutDashboard replaces the body of the named dashboard.
	PutDashboard(ctx context.Context, name, body string) error

	// ListDashboards returns one page of the dashboard listing, starting at
	// nextToken. Pass an empty token for the first page.
	ListDashboards(ctx context.Context, nextToken string) (Page, error)
}
