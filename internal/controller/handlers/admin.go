package handlers

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const adminStatusUsage = "Использование: /admin_status &lt;id&gt; &lt;статус&gt;\n\n" +
	"Статусы: pending, confirmed, in_progress, completed, cancelled"

// HandleAdminOrders обрабатывает команду /admin_orders
func (h *Handlers) HandleAdminOrders(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	orders, err := h.OrderService.Recent(ctx, admin.RecentOrdersLimit)
	if err != nil {
		h.Logger.Error("Failed to load recent orders", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	text, kb := common.BuildAdminOrdersScreen(orders)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleAdminStatus обрабатывает команду /admin_status <id> <status>
func (h *Handlers) HandleAdminStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		h.sendMessage(ctx, b, chatID, adminStatusUsage)
		return
	}
	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendMessage(ctx, b, chatID, adminStatusUsage)
		return
	}

	o, err := h.OrderService.SetStatus(ctx, orderID, model.OrderStatus(args[1]))
	if err != nil {
		h.Logger.Warn("Admin status change failed",
			zap.Int64("order_id", orderID),
			zap.String("status", args[1]),
			zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.Logger.Info("Order status changed by admin",
		zap.Int64("admin_id", update.Message.From.ID),
		zap.Int64("order_id", orderID),
		zap.String("status", string(o.Status)))

	text, kb := common.BuildAdminOrderScreen(o)
	h.sendScreen(ctx, b, chatID, "✅ Статус обновлён\n\n"+text, kb)
}

// HandleAdminStats обрабатывает команду /admin_stats
func (h *Handlers) HandleAdminStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	stats, err := h.AdminService.Statistics(ctx)
	if err != nil {
		h.Logger.Error("Failed to load statistics", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.FormatStatistics(stats))
}

// HandleAIStatus обрабатывает команду /ai_status
func (h *Handlers) HandleAIStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	st := h.AdminService.AdviceStatus(ctx)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.FormatAdviceStatus(st))
}
