package order

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Show выводит ответ мастера и синхронизирует текстовый диалог ввода адреса
func Show(ctx context.Context, h *callbacktypes.Handler, t common.Target, userID int64, reply *ordering.Reply) {
	syncDialog(h, userID, reply)

	text, kb := Render(reply)
	if err := t.Show(ctx, text, kb); err != nil {
		h.Logger.Error("Failed to show order screen",
			zap.Int64("user_id", userID),
			zap.String("state", reply.State.String()),
			zap.Error(err))
	}
}

func syncDialog(h *callbacktypes.Handler, userID int64, reply *ordering.Reply) {
	current := h.StateManager.GetState(userID)
	switch {
	case reply.State == ordering.StateAwaitingCustomAddress:
		h.StateManager.SetState(userID, state.StateOrderAddress)
	case current == state.StateOrderAddress:
		h.StateManager.ClearState(userID)
	}
}

// HandleNew начинает новый заказ из кнопки
func HandleNew(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		reply, err := h.Ordering.BeginOrder(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "begin order")
			return
		}
		hc.Answer("")
		Show(hc.Ctx, h, hc.Target(), hc.TelegramID, reply)
	})
}

// HandleEvent нажатие кнопки мастера заказа.
// Неизвестные данные показывают текущий шаг заново
func HandleEvent(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	ev, err := ParseEvent(callback.Data, h.Location)
	if err != nil {
		h.Logger.Warn("Unknown order callback",
			zap.Int64("user_id", hc.TelegramID),
			zap.String("data", callback.Data))

		reply, err := h.Ordering.Current(ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "present order")
			return
		}
		hc.Answer("")
		Show(ctx, h, hc.Target(), hc.TelegramID, reply)
		return
	}

	reply, err := h.Ordering.SubmitEvent(ctx, hc.TelegramID, ev)
	if err != nil {
		common.HandleError(hc, err, "submit "+ordering.EventName(ev))
		return
	}

	if reply.Rejection != nil {
		hc.AnswerAlert(reply.Rejection.Message)
	} else {
		hc.Answer("")
	}

	Show(ctx, h, hc.Target(), hc.TelegramID, reply)
}
