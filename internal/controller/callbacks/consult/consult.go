package consult

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/order"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleAccept оформление с рекомендованными услугами, мастер начинается с выбора времени
func HandleAccept(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		reply, err := h.Ordering.AcceptRecommendation(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "accept recommendation")
			return
		}

		if reply.Rejection != nil {
			hc.AnswerAlert(reply.Rejection.Message)
		} else {
			hc.Answer("")
		}
		order.Show(hc.Ctx, h, hc.Target(), hc.TelegramID, reply)
	})
}

// HandleManual отказ от рекомендации, обычный выбор услуг
func HandleManual(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	h.StateManager.ClearRecommendation(callback.From.ID)
	order.HandleNew(ctx, b, callback, h)
}
