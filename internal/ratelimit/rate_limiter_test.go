package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

func TestMiddleware(t *testing.T) {
	type testCase struct {
		Key      string
		Expected int
	}

	limiter := New(rate.Every(1e12), 2)

	handler := limiter.Middleware(func(r *http.Request) (string, error) {
		return r.Header.Get("X-User"), nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	testCases := []testCase{
		{Key: "editor", Expected: http.StatusNoContent},
		{Key: "editor", Expected: http.StatusNoContent},
		{Key: "editor", Expected: http.StatusTooManyRequests},
		{Key: "reviewer", Expected: http.StatusNoContent},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dav/", nil)
			req.Header.Set("X-User", tc.Key)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if e, g := tc.Expected, w.Code; e != g {
				t.Errorf("w.Code: expected '%v', got '%v'", e, g)
			}

			if w.Code == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
				t.Errorf("Retry-After: expected header to be set")
			}
		})
	}
}

func TestMiddlewareKeyError(t *testing.T) {
	limiter := New(rate.Inf, 1)

	called := false
	handler := limiter.Middleware(func(r *http.Request) (string, error) {
		return "", errors.New("no user")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if e, g := http.StatusInternalServerError, w.Code; e != g {
		t.Errorf("w.Code: expected '%v', got '%v'", e, g)
	}

	if called {
		t.Errorf("called: expected next handler not to be called")
	}
}

func TestRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:52044"

	key, err := RemoteAddr(req)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "192.0.2.10", key; e != g {
		t.Errorf("key: expected '%v', got '%v'", e, g)
	}
}
