// Package testutils builds a fully wired HTTP app over the in-memory store
// for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	infra_eventbus "github.com/vagnerwentz/bankapi/infra/eventbus"
	"github.com/vagnerwentz/bankapi/internal/fixtures/memory"
	"github.com/vagnerwentz/bankapi/pkg/app"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/lock"
	"github.com/vagnerwentz/bankapi/webapi"
)

// TestApp bundles the HTTP app with the store and bus behind it.
type TestApp struct {
	App   *fiber.App
	Store *memory.Store
	Bus   *infra_eventbus.MemoryEventBus
}

// NewTestApp wires services over a memory store seeded with accounts. A zero
// rate limit disables the limiter.
func NewTestApp(t *testing.T, rateLimit config.RateLimit, accounts ...*account.Account) *TestApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New(accounts...)
	bus := infra_eventbus.NewWithMemory(logger)
	cfg := &config.App{Env: "test", RateLimit: &rateLimit}
	a := app.New(&config.Deps{
		Uow:      store,
		Locker:   lock.NewMemory(),
		EventBus: bus,
		Logger:   logger,
	}, cfg)
	return &TestApp{App: webapi.SetupApp(a), Store: store, Bus: bus}
}

// NewAccount builds a valid account for seeding.
func NewAccount(t *testing.T, number int64, balance, limit float64) *account.Account {
	t.Helper()
	a, err := account.New().
		WithNumber(number).
		WithName("Holder").
		WithBalance(balance).
		WithSpecialLimit(limit).
		Build()
	require.NoError(t, err)
	return a
}

// MakeRequest is a helper for making HTTP requests in tests
func MakeRequest(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		panic(err)
	}
	return resp
}

// Decode reads a JSON body into a generic map and closes it.
func Decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
