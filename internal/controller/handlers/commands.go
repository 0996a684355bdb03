package handlers

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/order"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start.
// Новый пользователь проходит регистрацию, зарегистрированный видит главное меню
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	user, err := h.UserService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.Logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}

	if user == nil {
		h.Logger.Info("Starting registration", zap.Int64("telegram_id", telegramID))
		h.StateManager.Reset(telegramID)
		h.StateManager.SetState(telegramID, state.StateRegisterName)
		h.sendMessage(ctx, b, chatID, common.PromptRegisterName)
		return
	}

	h.StateManager.ClearState(telegramID)
	text, kb := common.BuildMainMenu(user.Name)
	h.sendScreen(ctx, b, chatID, text, kb)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	isAdmin := h.AdminService.IsAdmin(update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.HelpText(isAdmin))
}

// HandleCancel обрабатывает команду /cancel: прерывает текстовый диалог и черновик заказа
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	hadDialog := h.StateManager.GetState(telegramID) != state.StateNone
	hadDraft := h.StateManager.Draft(telegramID) != nil

	if !hadDialog && !hadDraft {
		h.sendMessage(ctx, b, chatID, "❌ Нет активных операций для отмены.")
		return
	}

	h.StateManager.ClearState(telegramID)
	if hadDraft {
		if _, err := h.Ordering.CancelOrder(ctx, telegramID); err != nil {
			h.Logger.Error("Failed to cancel draft", zap.Int64("telegram_id", telegramID), zap.Error(err))
			h.sendError(ctx, b, chatID, err)
			return
		}
	}

	h.sendMessage(ctx, b, chatID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleOrder обрабатывает команду /order
func (h *Handlers) HandleOrder(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	reply, err := h.Ordering.BeginOrder(ctx, user.TelegramID)
	if err != nil {
		h.Logger.Error("Failed to begin order", zap.Int64("telegram_id", user.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	order.Show(ctx, h.Handler, target(b, update.Message.Chat.ID), user.TelegramID, reply)
}

// HandleConsult обрабатывает команду /consult.
// Описание можно передать сразу: /consult ноутбук греется
func (h *Handlers) HandleConsult(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if problem := commandTail(update.Message.Text); problem != "" {
		h.consult(ctx, b, update.Message.Chat.ID, user.TelegramID, problem)
		return
	}

	h.StateManager.SetState(user.TelegramID, state.StateConsultProblem)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.PromptConsult, common.CancelDialogKeyboard())
}

// HandleMyOrders обрабатывает команду /myorders
func (h *Handlers) HandleMyOrders(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	page, err := h.OrderService.History(ctx, user.TelegramID, 0)
	if err != nil {
		h.Logger.Error("Failed to load history", zap.Int64("telegram_id", user.TelegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	text, kb := common.BuildHistoryScreen(page)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleProfile обрабатывает команду /profile
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	text, kb := common.BuildProfileScreen(user)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleSupport обрабатывает команду /support
func (h *Handlers) HandleSupport(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	h.StateManager.SetState(user.TelegramID, state.StateSupportMessage)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.PromptSupport, common.CancelDialogKeyboard())
}
