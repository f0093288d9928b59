package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORS_HeadersOnEveryResponse(t *testing.T) {
	app := fiber.New()
	app.Use(CORS())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, tc := range []struct {
		method, path string
		status       int
	}{
		{"GET", "/ok", fiber.StatusOK},
		{"GET", "/missing", fiber.StatusNotFound},
		{"OPTIONS", "/anything/at/all", fiber.StatusNoContent},
	} {
		res, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		if err != nil {
			t.Fatalf("%s %s failed: %v", tc.method, tc.path, err)
		}
		if res.StatusCode != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, res.StatusCode)
		}
		if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s %s: missing allow-origin, got %q", tc.method, tc.path, got)
		}
		if got := res.Header.Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
			t.Fatalf("%s %s: unexpected allow-methods %q", tc.method, tc.path, got)
		}
		if got := res.Header.Get("Access-Control-Allow-Headers"); got != "Content-Type" {
			t.Fatalf("%s %s: unexpected allow-headers %q", tc.method, tc.path, got)
		}
	}
}

func TestCORS_PreflightHasEmptyBody(t *testing.T) {
	app := fiber.New()
	app.Use(CORS())
	app.Options("/api/signup", func(c *fiber.Ctx) error { return c.SendString("handled") })

	res, err := app.Test(httptest.NewRequest("OPTIONS", "/api/signup", nil))
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if len(b) != 0 {
		t.Fatalf("expected empty body, got %q", string(b))
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString(RequestID(c)) })
	app.Get("/fail", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadGateway, "upstream") })

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	if string(b) != "abc-123" || res.Header.Get(HeaderRequestID) != "abc-123" {
		t.Fatalf("request id not propagated: body=%q header=%q", string(b), res.Header.Get(HeaderRequestID))
	}

	res2, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res2.StatusCode)
	}
	if res2.Header.Get(HeaderRequestID) == "" {
		t.Fatalf("expected generated request id")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("expected error level for 502, got %v", entries[1].Level)
	}
	if entries[1].ContextMap()["status"] != int64(502) {
		t.Fatalf("unexpected status field %v", entries[1].ContextMap()["status"])
	}
}
