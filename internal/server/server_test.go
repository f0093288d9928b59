package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/zoo-backend/internal/auth"
	"github.com/wichananm65/zoo-backend/internal/customer"
	"github.com/wichananm65/zoo-backend/internal/home"
	"github.com/wichananm65/zoo-backend/internal/metrics"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

const testSecret = "test-secret"

func newTestApp(db Pinger) *fiber.App {
	log := zap.NewNop()
	m := metrics.New()

	svc := customer.NewService(customer.NewInMemoryRepository(), log, customer.WithBcryptCost(bcrypt.MinCost))
	customers := customer.NewHandler(svc, auth.NewIssuer(testSecret, time.Hour), log, customer.WithSignupRecorder(m))
	homeHandler := home.NewHandler(home.NewService(home.NewInMemoryRepository(home.DefaultContent())), log)

	return New(Deps{
		Log:       log,
		JWTSecret: testSecret,
		Metrics:   m,
		DB:        db,
		Customers: customers,
		Home:      homeHandler,
	})
}

func send(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	res, err := app.Test(httptest.NewRequest(method, path, r))
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(b)
}

func checkCORS(t *testing.T, res *http.Response, label string) {
	t.Helper()
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
	for k, v := range want {
		if got := res.Header.Get(k); got != v {
			t.Fatalf("%s: header %s = %q, want %q", label, k, got, v)
		}
	}
}

func TestCORSOnEveryResponse(t *testing.T) {
	app := newTestApp(nil)

	cases := []struct {
		method, path, body string
		status             int
	}{
		{"GET", "/api/customers", "", fiber.StatusOK},
		{"POST", "/api/signup", "{bad", fiber.StatusBadRequest},
		{"GET", "/api/me", "", fiber.StatusUnauthorized},
		{"GET", "/nowhere", "", fiber.StatusNotFound},
		{"DELETE", "/api/customers", "", fiber.StatusNotFound},
		{"OPTIONS", "/api/signup", "", fiber.StatusNoContent},
	}
	for _, tc := range cases {
		label := tc.method + " " + tc.path
		res, _ := send(t, app, tc.method, tc.path, tc.body)
		if res.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", label, tc.status, res.StatusCode)
		}
		checkCORS(t, res, label)
		if res.Header.Get("X-Request-ID") == "" {
			t.Fatalf("%s: missing request id", label)
		}
	}
}

func TestOptionsReturnsEmpty204(t *testing.T) {
	app := newTestApp(nil)
	for _, path := range []string{"/", "/api/customers", "/does/not/exist"} {
		res, body := send(t, app, "OPTIONS", path, "")
		if res.StatusCode != fiber.StatusNoContent {
			t.Fatalf("%s: expected 204, got %d", path, res.StatusCode)
		}
		if body != "" {
			t.Fatalf("%s: expected empty body, got %q", path, body)
		}
	}
}

func TestNotFoundIsPlainText(t *testing.T) {
	app := newTestApp(nil)
	res, body := send(t, app, "GET", "/api/animals", "")
	if res.StatusCode != fiber.StatusNotFound || body != "Not Found" {
		t.Fatalf("unexpected response %d %q", res.StatusCode, body)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain, got %q", ct)
	}
}

func TestRoutesMatchExactPath(t *testing.T) {
	app := newTestApp(nil)
	for _, path := range []string{"/api/customers/", "/API/CUSTOMERS", "/api/Customers"} {
		res, body := send(t, app, "GET", path, "")
		if res.StatusCode != fiber.StatusNotFound || body != "Not Found" {
			t.Fatalf("%s: expected 404 Not Found, got %d %q", path, res.StatusCode, body)
		}
		checkCORS(t, res, path)
	}
	if res, _ := send(t, app, "GET", "/api/customers", ""); res.StatusCode != fiber.StatusOK {
		t.Fatalf("exact path should still match, got %d", res.StatusCode)
	}
}

func TestSignupThenListEndToEnd(t *testing.T) {
	app := newTestApp(nil)

	res, body := send(t, app, "POST", "/api/signup", `{"email":"a@x.com","password":"p"}`)
	if res.StatusCode != fiber.StatusOK || body != `{"message":"User added successfully"}` {
		t.Fatalf("unexpected signup response %d %s", res.StatusCode, body)
	}

	res, body = send(t, app, "GET", "/api/customers", "")
	if res.StatusCode != fiber.StatusOK || body != `[{"email":"a@x.com"}]` {
		t.Fatalf("unexpected list response %d %s", res.StatusCode, body)
	}

	res, body = send(t, app, "POST", "/api/signup", `{"email":"a@x.com","password":"p"}`)
	if res.StatusCode != fiber.StatusConflict || body != `{"error":"Email already registered"}` {
		t.Fatalf("unexpected duplicate response %d %s", res.StatusCode, body)
	}

	_, exposition := send(t, app, "GET", "/metrics", "")
	for _, want := range []string{
		`zoo_signups_total{result="created"} 1`,
		`zoo_signups_total{result="conflict"} 1`,
		`route="/api/signup"`,
	} {
		if !strings.Contains(exposition, want) {
			t.Fatalf("metrics missing %q", want)
		}
	}
}

func TestHome(t *testing.T) {
	app := newTestApp(nil)
	res, body := send(t, app, "GET", "/api/home?limit=2", "")
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if !strings.Contains(body, "Welcome to the Zoo!") {
		t.Fatalf("unexpected home body %s", body)
	}
	checkCORS(t, res, "GET /api/home")
}

func TestHealth(t *testing.T) {
	up := newTestApp(pingerFunc(func(ctx context.Context) error { return nil }))
	res, body := send(t, up, "GET", "/health", "")
	if res.StatusCode != fiber.StatusOK || body != `{"status":"ok"}` {
		t.Fatalf("unexpected healthy response %d %s", res.StatusCode, body)
	}

	down := newTestApp(pingerFunc(func(ctx context.Context) error { return errors.New("dial tcp: refused") }))
	res, body = send(t, down, "GET", "/health", "")
	if res.StatusCode != fiber.StatusServiceUnavailable || body != `{"status":"unavailable"}` {
		t.Fatalf("unexpected unhealthy response %d %s", res.StatusCode, body)
	}
}

func TestErrorHandler_HidesInternalErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("sql: connection is already closed") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/gone", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/boom", fiber.StatusInternalServerError, `{"error":"Error processing the request"}`},
		{"/teapot", fiber.StatusTeapot, `{"error":"short and stout"}`},
		{"/gone", fiber.StatusNotFound, "Not Found"},
	}
	for _, tc := range cases {
		res, body := send(t, app, "GET", tc.path, "")
		if res.StatusCode != tc.status || body != tc.body {
			t.Fatalf("%s: got %d %q, want %d %q", tc.path, res.StatusCode, body, tc.status, tc.body)
		}
	}
}
