package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/olgasafonova/glide-mcp-server/internal/glide"
	"github.com/olgasafonova/glide-mcp-server/tools"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestServerInstructionsMentionAllTools(t *testing.T) {
	for _, spec := range tools.AllTools {
		if !strings.Contains(serverInstructions, spec.Name) {
			t.Errorf("Instructions do not mention tool %s", spec.Name)
		}
	}
}

func TestServerIdentity(t *testing.T) {
	if ServerName == "" {
		t.Error("ServerName should not be empty")
	}
	if ServerVersion == "" {
		t.Error("ServerVersion should not be empty")
	}
}

func TestMetricsRouterHealthz(t *testing.T) {
	session := glide.NewSession(testLogger())
	srv := httptest.NewServer(newMetricsRouter(session))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "OK" {
		t.Errorf("Body = %q, want %q", string(body), "OK")
	}
}

func TestMetricsRouterReadyz(t *testing.T) {
	session := glide.NewSession(testLogger())
	srv := httptest.NewServer(newMetricsRouter(session))
	defer srv.Close()

	readyzBody := func() string {
		resp, err := http.Get(srv.URL + "/readyz")
		if err != nil {
			t.Fatalf("GET /readyz: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	if got := readyzBody(); got != "ready: session unconfigured" {
		t.Errorf("Unconfigured body = %q", got)
	}

	if _, err := session.SetVersion("v1", "test-key"); err != nil {
		t.Fatalf("SetVersion: %v", err)
	}

	if got := readyzBody(); got != "ready: session configured" {
		t.Errorf("Configured body = %q", got)
	}
}

func TestMetricsRouterMetrics(t *testing.T) {
	session := glide.NewSession(testLogger())
	srv := httptest.NewServer(newMetricsRouter(session))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "glide_mcp_session_configured") {
		t.Error("Metrics output should include the session_configured gauge")
	}
}
