package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/expense-tracker/internal/token"
)

func userIDCapture(t *testing.T) (http.Handler, *int) {
	t.Helper()
	var gotUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	return next, &gotUserID
}

func TestRequireAuth_ValidToken(t *testing.T) {
	issuer := token.New([]byte("test-secret"), time.Hour)
	signed, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	next, gotUserID := userIDCapture(t)
	handler := RequireAuth(issuer)(next)

	req := httptest.NewRequest("GET", "/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
	if *gotUserID != 42 {
		t.Errorf("user id: got %d, want 42", *gotUserID)
	}
}

// Missing, invalid, and expired tokens all get the identical 401 body.
func TestRequireAuth_Rejections(t *testing.T) {
	issuer := token.New([]byte("test-secret"), time.Hour)

	expiredIssuer := token.New([]byte("test-secret"), -time.Hour)
	expired, _ := expiredIssuer.Issue(42)

	foreign, _ := token.New([]byte("other-secret"), time.Hour).Issue(42)

	cases := map[string]string{
		"missing header": "",
		"garbage token":  "Bearer garbage",
		"expired token":  "Bearer " + expired,
		"wrong secret":   "Bearer " + foreign,
	}

	var bodies []string
	for name, header := range cases {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("%s: protected handler was reached", name)
		})
		handler := RequireAuth(issuer)(next)

		req := httptest.NewRequest("GET", "/expenses", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status got %d, want 401", name, rr.Code)
		}
		var out map[string]string
		if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
			t.Fatalf("%s: decode body: %v", name, err)
		}
		bodies = append(bodies, out["error"])
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("rejection bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}
