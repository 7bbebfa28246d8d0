// Package testbackend provides in-memory fakes of the goals and AI backends
// served over httptest, for use in tests.
package testbackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/raphaelgruber/visionboard/internal/models"
)

// Goals is a fake goals backend.
type Goals struct {
	Server *httptest.Server

	// DefaultStatus is assigned to created goals.
	DefaultStatus models.Status

	mu     sync.Mutex
	goals  []models.Goal
	nextID int
}

// NewGoals starts a fake goals backend seeded with goals. It is closed when
// the test finishes.
func NewGoals(t testing.TB, seed ...models.Goal) *Goals {
	t.Helper()

	g := &Goals{
		DefaultStatus: models.StatusPending,
		goals:         append([]models.Goal(nil), seed...),
		nextID:        len(seed) + 1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /goals", g.list)
	mux.HandleFunc("POST /goals", g.create)
	mux.HandleFunc("PATCH /goals/{id}", g.update)
	mux.HandleFunc("DELETE /goals/{id}", g.delete)

	g.Server = httptest.NewServer(mux)
	t.Cleanup(g.Server.Close)
	return g
}

// URL returns the base URL of the fake.
func (g *Goals) URL() string {
	return g.Server.URL
}

// Snapshot returns a copy of the stored goals.
func (g *Goals) Snapshot() []models.Goal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.Goal(nil), g.goals...)
}

func (g *Goals) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (g *Goals) create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	g.mu.Lock()
	goal := models.Goal{
		ID:          strconv.Itoa(g.nextID),
		Title:       in.Title,
		Description: in.Description,
		Status:      g.DefaultStatus,
	}
	g.nextID++
	g.goals = append(g.goals, goal)
	g.mu.Unlock()

	writeJSON(w, http.StatusCreated, goal)
}

func (g *Goals) update(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status models.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.goals {
		if g.goals[i].ID == r.PathValue("id") {
			g.goals[i].Status = in.Status
			writeJSON(w, http.StatusOK, g.goals[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
}

func (g *Goals) delete(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.goals {
		if g.goals[i].ID == r.PathValue("id") {
			g.goals = append(g.goals[:i], g.goals[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
