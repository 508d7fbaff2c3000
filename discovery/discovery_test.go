package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvxtct/cwnote/store"
)

type pagedStore struct {
	pages   map[string]store.Page
	listErr error
	calls   int
}

func (p *pagedStore) GetDashboard(context.Context, string) (string, error) {
	return "", errors.New("not used")
}

func (p *pagedStore) PutDashboard(context.Context, string, string) error {
	return errors.New("not used")
}

func (p *pagedStore) ListDashboards(_ context.Context, token string) (store.Page, error) {
	p.calls++
	if p.listErr != nil {
		return store.Page{}, p.listErr
	}
	return p.pages[token], nil
}

func entries(names ...string) []store.DashboardEntry {
	result := make([]store.DashboardEntry, 0, len(names))
	for _, name := range names {
		result = append(result, store.DashboardEntry{Name: name})
	}
	return result
}

func TestListBySuffixAccumulatesAcrossPages(t *testing.T) {
	st := &pagedStore{pages: map[string]store.Page{
		"":   {Entries: entries("svc-prod", "svc-staging"), NextToken: "p2"},
		"p2": {Entries: entries("other-prod"), NextToken: "p3"},
		"p3": {Entries: entries("svc-prod-east", "last-prod")},
	}}

	names, err := ListBySuffix(context.Background(), st, "-prod")

	require.NoError(t, err)
	assert.Equal(t, []string{"svc-prod", "other-prod", "last-prod"}, names)
	assert.Equal(t, 3, st.calls)
}

func TestListBySuffixFiltersExactSuffix(t *testing.T) {
	st := &pagedStore{pages: map[string]store.Page{
		"": {Entries: entries("svc-prod", "svc-prod-east", "other-prod")},
	}}

	names, err := ListBySuffix(context.Background(), st, "-prod")

	require.NoError(t, err)
	assert.Equal(t, []string{"svc-prod", "other-prod"}, names)
}

func TestListByPrefixFiltersExactPrefix(t *testing.T) {
	st := &pagedStore{pages: map[string]store.Page{
		"": {Entries: entries("TestService-A", "testservice-b", "TestService-C", "Other")},
	}}

	names, err := ListByPrefix(context.Background(), st, "TestService-")

	require.NoError(t, err)
	assert.Equal(t, []string{"TestService-A", "TestService-C"}, names)
}

func TestListStopsOnEmptyToken(t *testing.T) {
	st := &pagedStore{pages: map[string]store.Page{
		"": {Entries: entries("a-prod")},
	}}

	names, err := ListBySuffix(context.Background(), st, "-prod")

	require.NoError(t, err)
	assert.Equal(t, []string{"a-prod"}, names)
	assert.Equal(t, 1, st.calls)
}

func TestListEmptyResultIsNotAnError(t *testing.T) {
	st := &pagedStore{pages: map[string]store.Page{
		"": {Entries: entries("alpha", "beta")},
	}}

	names, err := ListBySuffix(context.Background(), st, "-prod")

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListPropagatesBackendError(t *testing.T) {
	st := &pagedStore{listErr: errors.New("boom")}

	_, err := ListBySuffix(context.Background(), st, "-prod")

	assert.Error(t, err)
}

func TestListGivesUpOnARepeatingToken(t *testing.T) {
	st := &pagedStore{pages: map[string]store.Page{
		"":     {Entries: entries("a-prod"), NextToken: "loop"},
		"loop": {Entries: entries("b-prod"), NextToken: "loop"},
	}}

	_, err := ListBySuffix(context.Background(), st, "-prod")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not terminate")
}
