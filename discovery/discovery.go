// SPDX-License-Identifier: MIT

// Package discovery resolves dashboard names from the backend's paginated
// listing.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/cvxtct/cwnote/store"
)

// maxPages guards against a backend that keeps returning the same
// continuation token.
const maxPages = 1000

// ListByPrefix returns every dashboard name starting with prefix, in the
// order the backend lists them. Matching is exact, no case folding.
func ListByPrefix(ctx context.Context, s store.Store, prefix string) ([]string, error) {
	return list(ctx, s, func(name string) bool { return strings.HasPrefix(name, prefix) })
}

// ListBySuffix returns every dashboard name ending with suffix, in the order
// the backend lists them. Matching is exact, no case folding.
func ListBySuffix(ctx context.Context, s store.Store, suffix string) ([]string, error) {
	return list(ctx, s, func(name string) bool { return strings.HasSuffix(name, suffix) })
}

func list(ctx context.Context, s store.Store, qualifies func(string) bool) ([]string, error) {
	var names []string
	token := ""
	for i := 0; i < maxPages; i++ {
		page, err := s.ListDashboards(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list dashboards: %w", err)
		}
		for _, entry := range page.Entries {
			if qualifies(entry.Name) {
				names = append(names, entry.Name)
			}
		}
		if page.NextToken == "" {
			return names, nil
		}
		token = page.NextToken
	}
	return nil, fmt.Errorf("dashboard listing did not terminate after %d pages", maxPages)
}
