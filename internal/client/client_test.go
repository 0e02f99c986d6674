package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/vidsense/internal/model"
)

// newBackend starts a mock analysis backend that checks the request shape
// and replies with the given status and body.
func newBackend(t *testing.T, status int, body string) (*httptest.Server, *[]model.AnalyzeRequest) {
	t.Helper()

	var received []model.AnalyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/analyze" {
			t.Errorf("expected /analyze, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type: application/json, got %s", ct)
		}

		var req model.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid JSON in request body: %v", err)
		}
		received = append(received, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, &received
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("accepts default endpoint", func(t *testing.T) {
		t.Parallel()

		c, err := New(DefaultEndpoint)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Endpoint() != DefaultEndpoint {
			t.Errorf("expected %s, got %s", DefaultEndpoint, c.Endpoint())
		}
		if c.HealthURL() != "http://127.0.0.1:8000/health" {
			t.Errorf("unexpected health URL %s", c.HealthURL())
		}
	})

	t.Run("derives health URL under a path prefix", func(t *testing.T) {
		t.Parallel()

		c, err := New("https://gpu.example.com/api/analyze?x=1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.HealthURL() != "https://gpu.example.com/api/health" {
			t.Errorf("unexpected health URL %s", c.HealthURL())
		}
	})

	invalid := []string{"", "127.0.0.1:8000/analyze", "/analyze", "ftp://host/analyze", "http://"}
	for _, endpoint := range invalid {
		t.Run("rejects "+endpoint, func(t *testing.T) {
			t.Parallel()

			if _, err := New(endpoint); !errors.Is(err, ErrInvalidEndpoint) {
				t.Errorf("expected ErrInvalidEndpoint, got %v", err)
			}
		})
	}

	t.Run("rejects malformed proxy", func(t *testing.T) {
		t.Parallel()

		if _, err := New(DefaultEndpoint, WithProxy("localhost")); !errors.Is(err, ErrInvalidProxyAddress) {
			t.Errorf("expected ErrInvalidProxyAddress, got %v", err)
		}
	})

	t.Run("accepts SOCKS5 proxy", func(t *testing.T) {
		t.Parallel()

		if _, err := New(DefaultEndpoint, WithProxy("127.0.0.1:1080")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestIsValidProxyAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		want    bool
	}{
		{address: "127.0.0.1:1080", want: true},
		{address: "localhost:9050", want: true},
		{address: "[::1]:1080", want: true},
		{address: "127.0.0.1", want: false},
		{address: ":1080", want: false},
		{address: "host:0", want: false},
		{address: "host:65536", want: false},
		{address: "host:port", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			t.Parallel()
			if got := isValidProxyAddress(tt.address); got != tt.want {
				t.Errorf("isValidProxyAddress(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}

func TestClientAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("returns report on success", func(t *testing.T) {
		t.Parallel()

		srv, received := newBackend(t, http.StatusOK, `{"score": 0.8}`)
		c, err := New(srv.URL + "/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		report, err := c.Analyze(context.Background(), model.AnalyzeRequest{URL: "https://youtu.be/x", ContentAnalysis: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(report) != `{"score": 0.8}` {
			t.Errorf("expected raw report, got %s", report)
		}
		if len(*received) != 1 || (*received)[0].URL != "https://youtu.be/x" || !(*received)[0].ContentAnalysis {
			t.Errorf("unexpected request %+v", *received)
		}
	})

	t.Run("returns detail on 400", func(t *testing.T) {
		t.Parallel()

		srv, _ := newBackend(t, http.StatusBadRequest, `{"detail": "bad url"}`)
		c, err := New(srv.URL + "/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %T %v", err, err)
		}
		if apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", apiErr.StatusCode)
		}
		if err.Error() != "bad url" {
			t.Errorf("expected 'bad url', got %q", err.Error())
		}
	})

	t.Run("falls back without detail on 500", func(t *testing.T) {
		t.Parallel()

		srv, _ := newBackend(t, http.StatusInternalServerError, `{}`)
		c, err := New(srv.URL + "/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		if err == nil || err.Error() != "Analysis failed." {
			t.Errorf("expected 'Analysis failed.', got %v", err)
		}
	})

	t.Run("falls back when error body is not an object", func(t *testing.T) {
		t.Parallel()

		srv, _ := newBackend(t, http.StatusBadGateway, `["upstream"]`)
		c, err := New(srv.URL + "/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		if err == nil || err.Error() != "Analysis failed." {
			t.Errorf("expected 'Analysis failed.', got %v", err)
		}
	})

	t.Run("malformed error body is a JSON error", func(t *testing.T) {
		t.Parallel()

		srv, _ := newBackend(t, http.StatusBadGateway, `<html>Bad Gateway</html>`)
		c, err := New(srv.URL + "/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		var jsonErr *JSONError
		if !errors.As(err, &jsonErr) {
			t.Fatalf("expected *JSONError, got %T %v", err, err)
		}
		if jsonErr.StatusCode != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", jsonErr.StatusCode)
		}
	})

	t.Run("malformed success body is a JSON error", func(t *testing.T) {
		t.Parallel()

		srv, _ := newBackend(t, http.StatusOK, `{"score":`)
		c, err := New(srv.URL + "/analyze")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		var jsonErr *JSONError
		if !errors.As(err, &jsonErr) {
			t.Fatalf("expected *JSONError, got %T %v", err, err)
		}
		if jsonErr.Unwrap() == nil {
			t.Error("expected wrapped decode error")
		}
	})

	t.Run("connection refused is a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL + "/analyze"
		srv.Close()

		c, err := New(endpoint)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "analysis request failed") {
			t.Errorf("unexpected error %q", err.Error())
		}
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		t.Parallel()

		srv, _ := newBackend(t, http.StatusOK, `{"padding":"`+strings.Repeat("x", 64)+`"}`)
		c, err := New(srv.URL+"/analyze", WithMaxBodySize(16))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"})
		if !errors.Is(err, ErrBodyTooLarge) {
			t.Errorf("expected ErrBodyTooLarge, got %v", err)
		}
	})

	t.Run("timeout applies when configured", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() {
			close(release)
			srv.Close()
		})

		c, err := New(srv.URL+"/analyze", WithTimeout(50*time.Millisecond))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"}); err == nil {
			t.Error("expected timeout error")
		}
	})
}

func TestClientHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUA, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/analyze",
		WithHeaders(map[string]string{"Authorization": "Bearer abc"}),
		WithUserAgent("test-agent/1.0"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer abc" {
		t.Errorf("expected injected Authorization, got %q", gotAuth)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("expected custom User-Agent, got %q", gotUA)
	}
	if gotCT != "application/json" {
		t.Errorf("expected application/json, got %q", gotCT)
	}
}

func TestClientWithHTTPClient(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/analyze", WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Analyze(context.Background(), model.AnalyzeRequest{URL: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("expected default User-Agent through custom client, got %q", gotUA)
	}
}

func TestClientForward(t *testing.T) {
	t.Parallel()

	srv, _ := newBackend(t, http.StatusUnprocessableEntity, `{"detail":[{"msg":"invalid url"}]}`)
	c, err := New(srv.URL + "/analyze")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status, payload, err := c.Forward(context.Background(), []byte(`{"url":"x","content_analysis":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", status)
	}
	if string(payload) != `{"detail":[{"msg":"invalid url"}]}` {
		t.Errorf("expected body relayed verbatim, got %s", payload)
	}
}

func TestClientHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   HealthStatus
	}{
		{name: "ok", status: http.StatusOK, body: `{"status":"ok"}`, want: HealthOK},
		{name: "wrong status field", status: http.StatusOK, body: `{"status":"starting"}`, want: HealthUnhealthy},
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"status":"ok"}`, want: HealthUnhealthy},
		{name: "not json", status: http.StatusOK, body: `ok`, want: HealthUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("expected /health, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			c, err := New(srv.URL + "/analyze")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := c.Health(context.Background())
			if got != tt.want {
				t.Errorf("expected %s, got %s (err: %v)", tt.want, got, err)
			}
			if (err == nil) != (tt.want == HealthOK) {
				t.Errorf("unexpected error presence: %v", err)
			}
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL + "/analyze"
		srv.Close()

		c, err := New(endpoint)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, _ := c.Health(context.Background()); got != HealthUnreachable {
			t.Errorf("expected unreachable, got %s", got)
		}
	})
}

func TestHealthStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  HealthStatus
		str     string
		wantErr error
	}{
		{status: HealthOK, str: "OK", wantErr: nil},
		{status: HealthUnhealthy, str: "unhealthy", wantErr: ErrUnhealthy},
		{status: HealthUnreachable, str: "unreachable", wantErr: ErrUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			t.Parallel()
			if tt.status.String() != tt.str {
				t.Errorf("expected %q, got %q", tt.str, tt.status.String())
			}
			if !errors.Is(tt.status.Error(), tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, tt.status.Error())
			}
		})
	}

	if HealthStatus(42).String() != "unknown" || HealthStatus(42).Error() == nil {
		t.Error("expected unknown status handling")
	}
}
