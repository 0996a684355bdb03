package history

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/order"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlePage страница истории заказов. "menu:orders" открывает первую страницу
func HandlePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page := 0
		if raw, ok := strings.CutPrefix(callback.Data, common.HistoryPage); ok {
			p, err := strconv.Atoi(raw)
			if err != nil {
				hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
				return
			}
			page = p
		}

		result, err := h.OrderService.History(hc.Ctx, hc.TelegramID, page)
		if err != nil {
			common.HandleError(hc, err, "order history")
			return
		}

		hc.Answer("")
		text, kb := common.BuildHistoryScreen(result)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show history", zap.Int64("user_id", hc.TelegramID), zap.Error(err))
		}
	})
}

func HandleView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		o, err := h.OrderService.Details(hc.Ctx, hc.TelegramID, orderID)
		if err != nil {
			common.HandleError(hc, err, "order details")
			return
		}

		hc.Answer("")
		text, kb := common.BuildOrderDetailsScreen(o)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show order", zap.Int64("order_id", orderID), zap.Error(err))
		}
	})
}

func HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		o, err := h.OrderService.Cancel(hc.Ctx, hc.TelegramID, orderID)
		if err != nil {
			common.HandleError(hc, err, "cancel order")
			return
		}

		hc.Answer("✅ Заказ отменён")
		text, kb := common.BuildOrderDetailsScreen(o)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show order", zap.Int64("order_id", orderID), zap.Error(err))
		}
	})
}

// HandleRepeat новый черновик с услугами старого заказа, время и адрес выбираются заново
func HandleRepeat(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		reply, err := h.OrderService.Repeat(hc.Ctx, hc.TelegramID, orderID)
		if err != nil {
			common.HandleError(hc, err, "repeat order")
			return
		}

		hc.Answer("")
		order.Show(hc.Ctx, h, hc.NewMessageTarget(), hc.TelegramID, reply)
	})
}
