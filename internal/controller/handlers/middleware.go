package handlers

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser проверяет что пользователь зарегистрирован
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := h.UserService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return nil, false
	}

	if user == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrUserNotFound)
		return nil, false
	}

	return user, true
}

// requireAdmin проверяет что пользователь в списке администраторов
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	if !h.AdminService.IsAdmin(update.Message.From.ID) {
		h.Logger.Warn("Admin command rejected", zap.Int64("telegram_id", update.Message.From.ID))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrNotAdmin)
		return false
	}

	return true
}
