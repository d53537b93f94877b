package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/bitsctl/internal/auth"
	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/testutil/testlog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	cfg := config.DefaultServerConfig()
	cfg.MaxHexDigits = 64
	return New(cfg, zerolog.Nop())
}

func post(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v body=%s", err, rr.Body.String())
	}
	return rr, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if _, err := uuid.Parse(rr.Header().Get(observability.HeaderRequestID)); err != nil {
		t.Fatalf("expected request id header, got %q", rr.Header().Get(observability.HeaderRequestID))
	}
}

func TestDecodeReturnsDocument(t *testing.T) {
	s := newTestServer(t)
	rr, body := post(t, s, `{"hex":"880086C3E88112"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rr.Code, body)
	}
	if body["value"] != float64(7) {
		t.Fatalf("unexpected value: %#v", body)
	}
	tree, ok := body["tree"].(map[string]any)
	if !ok || tree["type"] != "minimum" {
		t.Fatalf("unexpected tree: %#v", body["tree"])
	}
}

func TestDecodeModeResult(t *testing.T) {
	s := newTestServer(t)
	rr, body := post(t, s, `{"hex":"8A004A801A8002F478","mode":"versions"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%v", rr.Code, body)
	}
	if body["result"] != "16" || body["mode"] != "versions" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestDecodeVersionsSurviveEvaluationFailure(t *testing.T) {
	s := newTestServer(t)
	rr, body := post(t, s, `{"hex":"3600D40B81902","mode":"versions"}`)
	if rr.Code != http.StatusOK || body["result"] != "10" {
		t.Fatalf("got status=%d body=%#v", rr.Code, body)
	}
}

func TestDecodeErrors(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		body   string
		status int
		kind   string
	}{
		{`{"hex":"D2FE"}`, http.StatusUnprocessableEntity, "out_of_bits"},
		{`{"hex":"ZZ"}`, http.StatusUnprocessableEntity, "invalid_digit"},
		{`{"hex":"` + strings.Repeat("0", 65) + `"}`, http.StatusRequestEntityTooLarge, "too_large"},
		{`{"hex":"D2FE28","mode":"nope"}`, http.StatusBadRequest, "bad_request"},
		{`{}`, http.StatusBadRequest, "bad_request"},
		{`not json`, http.StatusBadRequest, "bad_request"},
		{`{"hex":"3600D40B81902","mode":"value"}`, http.StatusUnprocessableEntity, "invariant_violation"},
		{`{"hex":"220094FFFFFFFFFFFFFFFFFFEF702"}`, http.StatusUnprocessableEntity, "overflow"},
	}
	for _, tc := range cases {
		rr, body := post(t, s, tc.body)
		if rr.Code != tc.status || body["kind"] != tc.kind {
			t.Fatalf("%s: got status=%d kind=%v want %d %s", tc.body, rr.Code, body["kind"], tc.status, tc.kind)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	post(t, s, `{"hex":"D2FE28"}`)
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "bitsctl_decode_transmissions_total") {
		t.Fatalf("decode metrics missing from exposition")
	}
}

func TestDecodeTokenGate(t *testing.T) {
	testlog.Start(t)
	cfg := config.DefaultServerConfig()
	cfg.DecodeToken = "s3cret"
	s := New(cfg, zerolog.Nop())

	for header, want := range map[string]int{
		"":              http.StatusUnauthorized,
		"Bearer nope":   http.StatusUnauthorized,
		"Bearer s3cret": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(`{"hex":"D2FE28","mode":"value"}`))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set(auth.HeaderAuthorization, header)
		}
		rr := httptest.NewRecorder()
		s.HTTPRouter().ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("header %q: status %d, want %d body=%s", header, rr.Code, want, rr.Body.String())
		}
	}

	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health must stay open, got %d", rr.Code)
	}
}
