package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		rid, _ := c.Get("request_id").(string)
		if rid == "" {
			t.Error("expected request_id to be set")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := c.Get("request_id").(string); got != "upstream-id" {
		t.Errorf("expected upstream-id, got %s", got)
	}
}

func TestLogger_TagsRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	chain := RequestID()(Logger(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	if err := chain(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line := buf.String()
	rid := rec.Header().Get("X-Request-ID")
	if rid == "" || !strings.Contains(line, rid) {
		t.Errorf("expected log line to carry request id %q, got %s", rid, line)
	}
	if !strings.Contains(line, `"level":"info"`) {
		t.Errorf("expected info level, got %s", line)
	}
}

func TestLogger_LevelsByStatus(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		level string
	}{
		{"not found warns", echo.NewHTTPError(http.StatusNotFound, "missing"), `"level":"warn"`},
		{"server error errors", echo.NewHTTPError(http.StatusInternalServerError, "broken"), `"level":"error"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			c := e.NewContext(req, httptest.NewRecorder())

			var buf bytes.Buffer
			handler := Logger(zerolog.New(&buf))(func(c echo.Context) error {
				return tc.err
			})
			if err := handler(c); err == nil {
				t.Fatal("expected handler error to propagate")
			}
			if !strings.Contains(buf.String(), tc.level) {
				t.Errorf("expected %s in log line, got %s", tc.level, buf.String())
			}
		})
	}
}

func TestRecovery_ConvertsPanicToError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	logger := zerolog.New(os.Stderr)
	handler := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})

	err := handler(c)
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 HTTPError, got %v", err)
	}
}

func TestRecovery_PassesThroughAbortHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Recovery(zerolog.New(os.Stderr))(func(c echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Error("expected http.ErrAbortHandler to be re-raised")
		}
	}()
	_ = handler(c)
	t.Fatal("expected panic")
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}
}

func TestRateLimit_RejectsOverBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.01, BurstSize: 1})
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if err := handler(c); err != nil {
		t.Fatalf("first request unexpectedly limited: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)
	err := handler(c)
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}
