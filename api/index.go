package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/vagnerwentz/bankapi/infra/initializer"
	"github.com/vagnerwentz/bankapi/pkg/app"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/webapi"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

// Handler is the serverless entry point. Dependencies are built on the first
// request and reused while the instance stays warm. Background workers are
// not started here; stream consumers run in cmd/server.
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { handler = build() })
	handler.ServeHTTP(w, r)
}

func build() http.HandlerFunc {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load application configuration: %v", err)
	}
	rt, err := initializer.InitializeDependencies(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(rt.Deps, cfg)))
}
