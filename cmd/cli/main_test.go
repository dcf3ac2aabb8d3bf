package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	infra_eventbus "github.com/vagnerwentz/bankapi/infra/eventbus"
	"github.com/vagnerwentz/bankapi/internal/fixtures/memory"
	"github.com/vagnerwentz/bankapi/pkg/app"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/domain/account"
	"github.com/vagnerwentz/bankapi/pkg/lock"
)

func newTestApp(t *testing.T) (*app.App, *memory.Store) {
	t.Helper()
	color.NoColor = true
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	a := app.New(&config.Deps{
		Uow:      store,
		Locker:   lock.NewMemory(),
		EventBus: infra_eventbus.NewWithMemory(logger),
		Logger:   logger,
	}, &config.App{})
	return a, store
}

func run(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := execute(context.Background(), a, &buf, args)
	return buf.String(), err
}

func TestExecute_Flow(t *testing.T) {
	a, store := newTestApp(t)

	out, err := run(t, a, "create", "123456", "Ana", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "number=123456")

	_, err = run(t, a, "create", "654321", "Bia")
	require.NoError(t, err)

	out, err = run(t, a, "deposit", "123456", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "DEPOSIT 500.00")

	_, err = run(t, a, "withdraw", "123456", "100")
	require.NoError(t, err)

	out, err = run(t, a, "transfer", "123456", "654321", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "123456 balance: 300.00")
	assert.Contains(t, out, "654321 balance: 100.00")

	out, err = run(t, a, "history", "123456")
	require.NoError(t, err)
	assert.Contains(t, out, "TRANSFER")
	assert.Contains(t, out, "WITHDRAW")
	assert.Contains(t, out, "DEPOSIT")

	out, err = run(t, a, "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Bia")

	acc, ok := store.Account(123456)
	require.True(t, ok)
	assert.Equal(t, 300.0, acc.Balance)
	assert.Equal(t, 100.0, acc.SpecialLimit)
}

func TestExecute_Errors(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := run(t, a, "withdraw", "1", "10")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	_, err = run(t, a, "deposit", "x", "10")
	assert.ErrorContains(t, err, "invalid account number")

	_, err = run(t, a, "deposit", "1")
	assert.ErrorContains(t, err, "usage")

	_, err = run(t, a, "bogus")
	assert.ErrorContains(t, err, "unknown command")

	for _, amount := range []string{"NaN", "Inf", "-Inf"} {
		_, err = run(t, a, "deposit", "1", amount)
		assert.ErrorIs(t, err, account.ErrAmountMustBePositive, amount)
	}
}
