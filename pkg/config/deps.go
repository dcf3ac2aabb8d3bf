package config

import (
	"log/slog"

	"github.com/vagnerwentz/bankapi/pkg/eventbus"
	"github.com/vagnerwentz/bankapi/pkg/lock"
	"github.com/vagnerwentz/bankapi/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app and services.
type Deps struct {
	Uow      repository.UnitOfWork
	Locker   lock.Locker
	EventBus eventbus.Bus
	Logger   *slog.Logger
	Config   *App
}
