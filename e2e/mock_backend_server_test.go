// SPDX-License-Identifier: MIT

package e2e

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cvxtct/cwnote/store"
)

const mockToken = "test-token"

// mockServer is an in-memory dashboard backend speaking the HTTP store's
// REST protocol, including token-paginated listing.
type mockServer struct {
	http *httptest.Server

	mu         sync.Mutex
	dashboards map[string]string
	order      []string
	pageSize   int
	puts       int
}

func createMockBackendServer(pageSize int) *mockServer {
	listener, err := net.Listen("tcp", "0.0.0.0:0")
	if err != nil {
		panic(fmt.Sprintf("httptest: failed to listen: %v", err))
	}
	mux := http.NewServeMux()

	server := httptest.Server{Listener: listener, Config: &http.Server{Handler: mux}}
	server.Start()
	log.Info().Str("url", server.URL).Msg("Started Mock-Server")

	mock := &mockServer{
		http:       &server,
		dashboards: map[string]string{},
		pageSize:   pageSize,
	}
	mux.Handle("GET /api/dashboards", mock.authorized(mock.listDashboards))
	mux.Handle("GET /api/dashboards/{name}", mock.authorized(mock.getDashboard))
	mux.Handle("PUT /api/dashboards/{name}", mock.authorized(mock.putDashboard))
	return mock
}

func (m *mockServer) add(name, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dashboards[name]; !ok {
		m.order = append(m.order, name)
	}
	m.dashboards[name] = body
}

func (m *mockServer) body(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dashboards[name]
}

func (m *mockServer) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func (m *mockServer) authorized(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+mockToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	})
}

func (m *mockServer) getDashboard(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := r.PathValue("name")
	body, ok := m.dashboards[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"name": name, "body": body})
}

func (m *mockServer) putDashboard(w http.ResponseWriter, r *http.Request) {
	var doc struct {
		Name string `json:"name"`
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	name := r.PathValue("name")
	if _, ok := m.dashboards[name]; !ok {
		m.order = append(m.order, name)
	}
	m.dashboards[name] = doc.Body
	m.puts++
	writeJSON(w, map[string]string{})
}

func (m *mockServer) listDashboards(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := 0
	if token := r.URL.Query().Get("nextToken"); token != "" {
		var err error
		start, err = strconv.Atoi(token)
		if err != nil || start < 0 || start >= len(m.order) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}
	end := start + m.pageSize
	if end > len(m.order) {
		end = len(m.order)
	}
	entries := make([]store.DashboardEntry, 0, end-start)
	for _, name := range m.order[start:end] {
		entries = append(entries, store.DashboardEntry{Name: name})
	}
	response := map[string]any{"entries": entries}
	if end < len(m.order) {
		response["nextToken"] = strconv.Itoa(end)
	}
	writeJSON(w, response)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode mock response")
	}
}
