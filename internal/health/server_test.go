package health

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/j0lvera/relaybot/internal/metrics"
	"github.com/rs/zerolog"
)

func TestHandler(t *testing.T) {
	prom := metrics.NewProm()
	prom.IncForward(metrics.OutcomeSuccess)

	srv := httptest.NewServer(NewHandler(prom.Handler(), zerolog.Nop()))
	defer srv.Close()

	tests := []struct {
		method   string
		path     string
		status   int
		contains string
	}{
		{http.MethodGet, "/", http.StatusOK, "Bot is running"},
		{http.MethodGet, "/metrics", http.StatusOK, `relaybot_forward_total{outcome="success"} 1`},
		{http.MethodGet, "/missing", http.StatusNotFound, ""},
		{http.MethodPost, "/", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body, _ := io.ReadAll(resp.Body)
			if tt.contains != "" && !strings.Contains(string(body), tt.contains) {
				t.Fatalf("body %q does not contain %q", body, tt.contains)
			}
		})
	}
}

func TestHandlerRootBodyIsExact(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(nil, zerolog.Nop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "Bot is running" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewHandler(nil, zerolog.Nop()), zerolog.Nop())

	if err := srv.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
}

func TestServerStartFailsOnBusyPort(t *testing.T) {
	first := NewServer("127.0.0.1:0", NewHandler(nil, zerolog.Nop()), zerolog.Nop())
	ln := httptest.NewServer(http.NotFoundHandler())
	defer ln.Close()

	first.httpServer.Addr = strings.TrimPrefix(ln.URL, "http://")
	if err := first.Start(); err == nil {
		_ = first.Shutdown(context.Background())
		t.Fatal("expected error when the port is taken")
	}
}
