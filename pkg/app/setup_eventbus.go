// Package app wires services and event handlers on top of the initialized
// dependencies.
package app

import (
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
	"github.com/vagnerwentz/bankapi/pkg/handler/audit"
)

// setupEventBus registers all event handlers with the provided event Bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	if bus == nil {
		return
	}
	bus.Register(
		events.TypeTransactionRecorded,
		audit.HandleTransactionRecorded(a.Deps.Logger),
	)
}
