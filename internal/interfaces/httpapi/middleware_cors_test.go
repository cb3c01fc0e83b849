package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantAllow   string
		wantVary    bool
		wantStatus  int
		wantReached bool
	}{
		{name: "configured origin", allowed: []string{"https://crawler-dashboard.example.com"}, method: http.MethodGet, origin: "https://crawler-dashboard.example.com", wantAllow: "https://crawler-dashboard.example.com", wantVary: true, wantStatus: http.StatusOK, wantReached: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://crawler-dashboard.example.com", wantAllow: "*", wantStatus: http.StatusNoContent},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://not-allowed.example.com", wantStatus: http.StatusOK, wantReached: true},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodOptions, wantStatus: http.StatusOK, wantReached: true},
		{name: "blank entries ignored", allowed: []string{" ", ""}, method: http.MethodGet, origin: "https://crawler-dashboard.example.com", wantStatus: http.StatusOK, wantReached: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tc.method, "/v1/status", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tc.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if reached != tc.wantReached {
				t.Fatalf("next reached = %v, want %v", reached, tc.wantReached)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantAllow {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tc.wantAllow)
			}
			if gotVary := rec.Header().Get("Vary") == "Origin"; gotVary != tc.wantVary {
				t.Fatalf("Vary: Origin = %v, want %v", gotVary, tc.wantVary)
			}
		})
	}
}
