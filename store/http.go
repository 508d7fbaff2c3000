// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// HTTP implements Store against a dashboard gateway speaking plain JSON over
// REST, such as a local CloudWatch emulator. Authentication is a bearer
// token on every request.
type HTTP struct {
	client *resty.Client
}

type dashboardDocument struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type listDashboardsResponse struct {
	Entries   []DashboardEntry `json:"entries"`
	NextToken string           `json:"nextToken,omitempty"`
}

// NewHTTP builds an HTTP store for the given base URL. The token may be
// empty for unauthenticated gateways.
func NewHTTP(baseURL, token string) *HTTP {
	client := resty.New()
	client.SetBaseURL(baseURL)
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}
	client.SetHeader("Content-Type", "application/json")
	return &HTTP{client: client}
}

// NewHTTPWithClient wraps a preconfigured resty client. Used by tests to
// supply a mocked transport.
func NewHTTPWithClient(client *resty.Client) *HTTP {
	return &HTTP{client: client}
}

func (s *HTTP) GetDashboard(ctx context.Context, name string) (string, error) {
	var dash dashboardDocument
	res, err := s.client.R().
		SetContext(ctx).
		SetResult(&dash).
		Get("/api/dashboards/" + url.PathEscape(name))
	if err != nil {
		return "", err
	}
	if res.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("unexpected status code %d while getting dashboard %s: %s", res.StatusCode(), name, res.String())
	}
	if dash.Body == "" {
		return "", fmt.Errorf("%w: dashboard %s has no body", ErrNotFound, name)
	}
	return dash.Body, nil
}

func (s *HTTP) PutDashboard(ctx context.Context, name, body string) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetBody(dashboardDocument{Name: name, Body: body}).
		Put("/api/dashboards/" + url.PathEscape(name))
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("unexpected status code %d while putting dashboard %s: %s", res.StatusCode(), name, res.String())
	}
	return nil
}

func (s *HTTP) ListDashboards(ctx context.Context, nextToken string) (Page, error) {
	var list listDashboardsResponse
	req := s.client.R().
		SetContext(ctx).
		SetResult(&list)
	if nextToken != "" {
		req.SetQueryParam("nextToken", nextToken)
	}
	res, err := req.Get("/api/dashboards")
	if err != nil {
		return Page{}, err
	}
	if !res.IsSuccess() {
		return Page{}, fmt.Errorf("unexpected status code %d while listing dashboards: %s", res.StatusCode(), res.String())
	}
	return Page{Entries: list.Entries, NextToken: list.NextToken}, nil
}
