package client

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingTransportAddsRequestID(t *testing.T) {
	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	rt := &loggingTransport{inner: http.DefaultTransport, logger: newBufferLogger(&buf)}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/goals", nil)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	seen := <-ids
	assert.Len(t, seen, 36)
	assert.Empty(t, req.Header.Get(RequestIDHeader), "caller's request must not be modified")
	assert.Contains(t, buf.String(), "request completed")
	assert.Contains(t, buf.String(), "request_id="+seen)
}

func TestLoggingTransportKeepsExistingRequestID(t *testing.T) {
	ids := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	rt := &loggingTransport{inner: http.DefaultTransport, logger: slog.New(slog.DiscardHandler)}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "fixed-id", <-ids)
}

func TestLoggingTransportSlowRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	rt := &loggingTransport{inner: http.DefaultTransport, logger: newBufferLogger(&buf), slow: time.Millisecond}

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "slow request")
}

func TestLoggingTransportError(t *testing.T) {
	var buf bytes.Buffer
	rt := &loggingTransport{inner: failingTransport{}, logger: newBufferLogger(&buf)}

	req, _ := http.NewRequest(http.MethodPost, "http://localhost/sentiment", strings.NewReader("{}"))
	_, err := rt.RoundTrip(req)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestNewDoesNotMutateProvidedClient(t *testing.T) {
	hc := &http.Client{}
	c := New("http://localhost:8080/", WithHTTPClient(hc), WithTimeout(time.Second))

	assert.Nil(t, hc.Transport)
	assert.Zero(t, hc.Timeout)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}
