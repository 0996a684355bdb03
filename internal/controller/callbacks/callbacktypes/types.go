package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для команд и callback handlers
type Handler struct {
	Ordering       *ordering.Service
	UserService    *service.UserService
	OrderService   *service.OrderService
	ReviewService  *service.ReviewService
	SupportService *service.SupportService
	AdminService   *service.AdminService
	StateManager   *state.Manager
	Location       *time.Location
	Logger         *zap.Logger
}
