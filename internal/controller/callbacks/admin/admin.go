package admin

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// RecentOrdersLimit сколько заказов показывать в /admin_orders
const RecentOrdersLimit = 10

func HandleOrders(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orders, err := h.OrderService.Recent(hc.Ctx, RecentOrdersLimit)
		if err != nil {
			common.HandleError(hc, err, "admin recent orders")
			return
		}

		hc.Answer("")
		text, kb := common.BuildAdminOrdersScreen(orders)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show admin orders", zap.Error(err))
		}
	})
}

// HandleOrder заказ глазами администратора, без проверки владельца
func HandleOrder(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		o, err := h.OrderService.AdminDetails(hc.Ctx, orderID)
		if err != nil {
			common.HandleError(hc, err, "admin order details")
			return
		}

		hc.Answer("")
		text, kb := common.BuildAdminOrderScreen(o)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show admin order", zap.Int64("order_id", orderID), zap.Error(err))
		}
	})
}

// HandleSet смена статуса кнопкой: admin_set:123:confirmed
func HandleSet(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, status, err := ParseSetData(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		o, err := h.OrderService.SetStatus(hc.Ctx, orderID, status)
		if err != nil {
			common.HandleError(hc, err, "admin set status")
			return
		}

		h.Logger.Info("Order status changed by admin",
			zap.Int64("admin_id", hc.TelegramID),
			zap.Int64("order_id", orderID),
			zap.String("status", string(status)))

		hc.Answer("✅ Статус обновлён")
		text, kb := common.BuildAdminOrderScreen(o)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show admin order", zap.Int64("order_id", orderID), zap.Error(err))
		}
	})
}

// ParseSetData разбирает admin_set:ID:status. Статус проверяется сервисом
func ParseSetData(data string) (int64, model.OrderStatus, error) {
	rest, ok := strings.CutPrefix(data, common.AdminSet)
	if !ok {
		return 0, "", common.ErrInvalidFormat
	}
	rawID, status, ok := strings.Cut(rest, ":")
	if !ok || status == "" {
		return 0, "", common.ErrInvalidFormat
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return 0, "", common.ErrInvalidFormat
	}
	return id, model.OrderStatus(status), nil
}
