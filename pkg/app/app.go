package app

import (
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/pkg/service/account"
	"github.com/vagnerwentz/bankapi/pkg/service/transaction"
)

// App bundles the services and shared dependencies used by the HTTP and CLI front ends.
type App struct {
	Deps               *config.Deps
	Config             *config.App
	AccountService     *account.Service
	TransactionService *transaction.Service
}

// New wires the event bus handlers and builds the services from deps.
func New(deps *config.Deps, cfg *config.App) *App {
	if deps.Config == nil {
		deps.Config = cfg
	}
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	app.AccountService = account.NewService(*deps)
	app.TransactionService = transaction.NewService(*deps)
	return app
}
