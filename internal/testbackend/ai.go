package testbackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Call is one request received by the fake AI backend.
type Call struct {
	Path string
	Body map[string]any
}

// Text returns the "text" field of the request body.
func (c Call) Text() string {
	s, _ := c.Body["text"].(string)
	return s
}

// AI is a fake AI backend. Responses are derived from the request text
// unless overridden.
type AI struct {
	Server *httptest.Server

	mu         sync.Mutex
	calls      []Call
	sentiments map[string]string
	scores     map[string]float64
	keywords   map[string][]string
	fail       func(Call) bool
}

// NewAI starts a fake AI backend. It is closed when the test finishes.
func NewAI(t testing.TB) *AI {
	t.Helper()

	a := &AI{
		sentiments: make(map[string]string),
		scores:     make(map[string]float64),
		keywords:   make(map[string][]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sentiment", a.handle(func(c Call) any {
		label, ok := a.sentiments[c.Text()]
		if !ok {
			label = "NEUTRAL"
		}
		return map[string]string{"sentiment": label}
	}))
	mux.HandleFunc("POST /predict", a.handle(func(c Call) any {
		title, _ := c.Body["title"].(string)
		score, ok := a.scores[title]
		if !ok {
			score = 50
		}
		return map[string]float64{"score": score}
	}))
	mux.HandleFunc("POST /keywords", a.handle(func(c Call) any {
		kws, ok := a.keywords[c.Text()]
		if !ok {
			kws = strings.Fields(strings.ToLower(c.Text()))
		}
		if n, ok := c.Body["top_n"].(float64); ok && int(n) < len(kws) {
			kws = kws[:int(n)]
		}
		return map[string][]string{"keywords": kws}
	}))
	mux.HandleFunc("POST /generate_goal_plan", a.handle(func(c Call) any {
		return map[string]string{"plan": "Plan: " + c.Text()}
	}))
	mux.HandleFunc("POST /rephrase", a.handle(func(c Call) any {
		return map[string]string{"rephrased": "I will " + strings.ToLower(c.Text())}
	}))

	a.Server = httptest.NewServer(mux)
	t.Cleanup(a.Server.Close)
	return a
}

// URL returns the base URL of the fake.
func (a *AI) URL() string {
	return a.Server.URL
}

// SetSentiment sets the label returned for text.
func (a *AI) SetSentiment(text, label string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sentiments[text] = label
}

// SetScore sets the score returned for title.
func (a *AI) SetScore(title string, score float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scores[title] = score
}

// SetKeywords sets the keywords returned for text.
func (a *AI) SetKeywords(text string, keywords ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keywords[text] = keywords
}

// FailWhen makes matching requests answer 500.
func (a *AI) FailWhen(fn func(Call) bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = fn
}

// Calls returns the requests received so far.
func (a *AI) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Call(nil), a.calls...)
}

func (a *AI) handle(respond func(Call) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		call := Call{Path: r.URL.Path}
		if err := json.NewDecoder(r.Body).Decode(&call.Body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}

		a.mu.Lock()
		a.calls = append(a.calls, call)
		fail := a.fail != nil && a.fail(call)
		var resp any
		if !fail {
			resp = respond(call)
		}
		a.mu.Unlock()

		if fail {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "model unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
