package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fieldmaker/verify-backend/internal/middleware/ratelimiter"
	"github.com/fieldmaker/verify-backend/internal/middleware/ratelimiter/mem_ratelimiter"
	"github.com/fieldmaker/verify-backend/internal/utils/mimes"
)

func assertEqual(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expecting values to be equal but got: '%v' and '%v'", a, b)
	}
}

func TestMiddlewareChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			}
		}
	}

	handler := MiddlewareChain(
		func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") },
		tag("first"),
		tag("second"),
		tag("third"),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assertEqual(t, order, []string{"first", "second", "third", "handler"})
}

func TestHeartbeat(t *testing.T) {
	t.Parallel()

	handler := Heartbeat(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assertEqual(t, rec.Code, http.StatusOK)
	assertEqual(t, rec.Body.String(), "pong")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assertEqual(t, rec.Code, http.StatusTeapot)
}

func TestAllowContentType(t *testing.T) {
	t.Parallel()

	handler := AllowContentType(mimes.App_json)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", mimes.App_json)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assertEqual(t, rec.Code, http.StatusOK)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`a=b`))
	req.Header.Set("Content-Type", mimes.App_x_www_form_urlencoded)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assertEqual(t, rec.Code, http.StatusUnsupportedMediaType)

	// empty bodies skip the check
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assertEqual(t, rec.Code, http.StatusOK)
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	handler := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a slow handler that honors ctx cancellation
		select {
		case <-r.Context().Done():
			return
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assertEqual(t, rec.Code, http.StatusGatewayTimeout)

	// fast handlers pass through untouched
	handler = Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assertEqual(t, rec.Code, http.StatusOK)
}

func TestRealIpFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"
	assertEqual(t, RealIpFromRequest(req), "192.0.2.10")

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assertEqual(t, RealIpFromRequest(req, "X-Real-IP"), "198.51.100.7")

	// untrusted headers are ignored
	assertEqual(t, RealIpFromRequest(req), "192.0.2.10")
}

func TestMemRateLimiter(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := mem_ratelimiter.NewTokenBucketLimiter(ctx, ratelimiter.Config{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Hour,
		Enabled:              true,
		KeyPrefix:            "test",
	})

	allow, _ := limiter.Allow(ctx, "key-a")
	assertEqual(t, allow, true)
	allow, _ = limiter.Allow(ctx, "key-a")
	assertEqual(t, allow, true)

	allow, backoff := limiter.Allow(ctx, "key-a")
	assertEqual(t, allow, false)
	if backoff <= 0 {
		t.Fatalf("expecting a positive backoff duration, got: %v", backoff)
	}

	// a different key has its own budget
	allow, _ = limiter.Allow(ctx, "key-b")
	assertEqual(t, allow, true)
}

func TestRateLimiterMiddleware(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := mem_ratelimiter.NewTokenBucketLimiter(ctx, ratelimiter.Config{
		RequestsPerTimeFrame: 1,
		TimeFrame:            time.Hour,
		Enabled:              true,
		KeyPrefix:            "test",
	})

	handler := RateLimiter(
		func(r *http.Request) string { return r.RemoteAddr },
		limiter,
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.10:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assertEqual(t, rec.Code, http.StatusOK)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assertEqual(t, rec.Code, http.StatusTooManyRequests)
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expecting a Retry-After header")
	}
}
