package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/infra/initializer"
	"github.com/vagnerwentz/bankapi/pkg/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestListenAddr(t *testing.T) {
	assert.Equal(t, "localhost:8080", listenAddr(&config.Server{Host: "localhost", Port: 8080}))
	assert.Equal(t, ":3000", listenAddr(nil))
}

func TestServe_StopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	ctx, cancel := context.WithCancel(context.Background())

	workerStopped := make(chan struct{})
	worker := initializer.Worker(func(ctx context.Context) error {
		<-ctx.Done()
		close(workerStopped)
		return ctx.Err()
	})

	done := make(chan error, 1)
	go func() { done <- serve(ctx, app, freeAddr(t), []initializer.Worker{worker}, logger) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
	<-workerStopped
}

func TestServe_WorkerFailureStopsServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	boom := errors.New("boom")
	worker := initializer.Worker(func(context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return boom
	})

	done := make(chan error, 1)
	go func() { done <- serve(context.Background(), app, freeAddr(t), []initializer.Worker{worker}, logger) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after worker failure")
	}
}
