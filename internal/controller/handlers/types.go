package handlers

import (
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
)

// Handlers обработчики команд и текстовых сообщений.
// Зависимости общие с callback handlers
type Handlers struct {
	*callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{Handler: deps}
}
