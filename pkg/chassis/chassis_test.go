package chassis

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hazyhaar/ementa/pkg/mcpquic"
)

func TestHeaders(t *testing.T) {
	h := Headers(":8443", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("code = %d", rec.Code)
	}
	if got := rec.Header().Get("Alt-Svc"); got != `h3=":8443"; ma=86400` {
		t.Errorf("Alt-Svc = %q", got)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff")
	}
}

func TestTLSConfig_SelfSigned(t *testing.T) {
	cfg, selfSigned, err := TLSConfig("", "")
	if err != nil {
		t.Fatal(err)
	}
	if !selfSigned {
		t.Error("expected self-signed")
	}
	if len(cfg.NextProtos) != 2 || cfg.NextProtos[1] != mcpquic.ALPN {
		t.Errorf("NextProtos = %v", cfg.NextProtos)
	}
}

func TestTLSConfig_MissingFiles(t *testing.T) {
	if _, _, err := TLSConfig("/nonexistent/cert.pem", "/nonexistent/key.pem"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_NilHandler(t *testing.T) {
	if _, err := New(Config{Addr: ":0"}); err == nil {
		t.Fatal("expected error for nil handler")
	}
}
