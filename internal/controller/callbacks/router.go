package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/consult"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/history"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/menu"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/order"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/profile"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/review"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Главное меню =====
	case data == keyboard.MenuMain:
		menu.HandleMain(ctx, b, callback, h)
	case data == keyboard.MenuOrder:
		menu.HandleOrder(ctx, b, callback, h)
	case data == keyboard.MenuConsult:
		menu.HandleConsult(ctx, b, callback, h)
	case data == keyboard.MenuOrders:
		history.HandlePage(ctx, b, callback, h)
	case data == keyboard.MenuProfile:
		menu.HandleProfile(ctx, b, callback, h)
	case data == keyboard.MenuSupport:
		menu.HandleSupport(ctx, b, callback, h)

	// ===== Мастер заказа =====
	case data == order.New:
		order.HandleNew(ctx, b, callback, h)
	case strings.HasPrefix(data, order.Prefix):
		order.HandleEvent(ctx, b, callback, h)

	// ===== Консультация =====
	case data == common.RecAccept:
		consult.HandleAccept(ctx, b, callback, h)
	case data == common.RecManual:
		consult.HandleManual(ctx, b, callback, h)

	// ===== История заказов =====
	case strings.HasPrefix(data, common.HistoryPage):
		history.HandlePage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.OrderView):
		history.HandleView(ctx, b, callback, h)
	case strings.HasPrefix(data, common.OrderCancel):
		history.HandleCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, common.OrderRepeat):
		history.HandleRepeat(ctx, b, callback, h)

	// ===== Отзывы =====
	case strings.HasPrefix(data, common.ReviewRate):
		review.HandleRate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ReviewStart):
		review.HandleStart(ctx, b, callback, h)

	// ===== Профиль =====
	case strings.HasPrefix(data, common.ProfileEdit):
		profile.HandleEdit(ctx, b, callback, h)

	// ===== Администратор =====
	case data == common.AdminOrders:
		admin.HandleOrders(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminOrder):
		admin.HandleOrder(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminSet):
		admin.HandleSet(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
