package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/order"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/service"
	"github.com/Freeeeeet/repair_bot/internal/validation"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.StateManager.GetState(telegramID)

	h.Logger.Debug("Text message received",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateRegisterName:
		h.handleRegisterName(ctx, b, update)
	case state.StateRegisterPhone:
		h.handleRegisterPhone(ctx, b, update)
	case state.StateRegisterAddress:
		h.handleRegisterAddress(ctx, b, update)
	case state.StateEditName:
		h.handleProfileEdit(ctx, b, update, model.ProfileFieldName)
	case state.StateEditPhone:
		h.handleProfileEdit(ctx, b, update, model.ProfileFieldPhone)
	case state.StateEditAddress:
		h.handleProfileEdit(ctx, b, update, model.ProfileFieldAddress)
	case state.StateOrderAddress:
		h.handleOrderAddress(ctx, b, update)
	case state.StateConsultProblem:
		h.consult(ctx, b, update.Message.Chat.ID, telegramID, update.Message.Text)
	case state.StateReviewComment:
		h.handleReviewComment(ctx, b, update)
	case state.StateSupportMessage:
		h.handleSupportMessage(ctx, b, update)
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Не понял сообщение. Используйте /help для списка команд.")
	}
}

func (h *Handlers) handleRegisterName(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	name, err := service.ValidateField(model.ProfileFieldName, update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.StateManager.SetData(telegramID, state.KeyName, name)
	h.StateManager.SetState(telegramID, state.StateRegisterPhone)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.PromptRegisterPhone)
}

func (h *Handlers) handleRegisterPhone(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	phone, err := service.ValidateField(model.ProfileFieldPhone, update.Message.Text)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.StateManager.SetData(telegramID, state.KeyPhone, phone)
	h.StateManager.SetState(telegramID, state.StateRegisterAddress)
	h.sendMessage(ctx, b, update.Message.Chat.ID, common.PromptRegisterAddress)
}

func (h *Handlers) handleRegisterAddress(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	name, okName := h.StateManager.GetString(telegramID, state.KeyName)
	phone, okPhone := h.StateManager.GetString(telegramID, state.KeyPhone)
	if !okName || !okPhone {
		// сессия истекла посреди регистрации
		h.StateManager.SetState(telegramID, state.StateRegisterName)
		h.sendMessage(ctx, b, chatID, common.PromptRegisterName)
		return
	}

	user, err := h.UserService.Register(ctx, telegramID, name, phone, update.Message.Text)
	if err != nil {
		if _, ok := validation.AsFieldError(err); !ok {
			h.Logger.Error("Failed to register user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.ClearState(telegramID)
	text, kb := common.BuildMainMenu(user.Name)
	h.sendScreen(ctx, b, chatID, "✅ Регистрация завершена!\n\n"+text, kb)
}

func (h *Handlers) handleProfileEdit(ctx context.Context, b *bot.Bot, update *models.Update, field model.ProfileField) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	user, err := h.UserService.UpdateProfile(ctx, telegramID, field, update.Message.Text)
	if err != nil {
		if _, ok := validation.AsFieldError(err); !ok {
			h.Logger.Error("Failed to update profile",
				zap.Int64("telegram_id", telegramID),
				zap.String("field", string(field)),
				zap.Error(err))
			h.StateManager.ClearState(telegramID)
		}
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.ClearState(telegramID)
	text, kb := common.BuildProfileScreen(user)
	h.sendScreen(ctx, b, chatID, "✅ Профиль обновлён\n\n"+text, kb)
}

// handleOrderAddress адрес визита текстом, шаг мастера заказа
func (h *Handlers) handleOrderAddress(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	reply, err := h.Ordering.SubmitEvent(ctx, telegramID, ordering.EnterAddress{Text: update.Message.Text})
	if err != nil {
		h.Logger.Error("Failed to submit address", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	order.Show(ctx, h.Handler, target(b, update.Message.Chat.ID), telegramID, reply)
}

// consult подбор услуг по описанию. При отказе диалог остаётся открытым
func (h *Handlers) consult(ctx context.Context, b *bot.Bot, chatID, telegramID int64, problem string) {
	_, err := b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	if err != nil {
		h.Logger.Debug("Failed to send chat action", zap.Error(err))
	}

	rec, err := h.Ordering.BeginRecommendation(ctx, telegramID, problem)
	if err != nil {
		h.Logger.Error("Recommendation failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.StateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, err)
		return
	}

	if rec.Rejection != nil {
		h.StateManager.SetState(telegramID, state.StateConsultProblem)
		h.sendMessage(ctx, b, chatID, "❌ "+rec.Rejection.Message)
		return
	}

	h.StateManager.ClearState(telegramID)
	text, kb := common.BuildRecommendationScreen(rec)
	h.sendScreen(ctx, b, chatID, text, kb)
}

func (h *Handlers) handleReviewComment(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	orderID, okOrder := h.StateManager.GetInt64(telegramID, state.KeyOrderID)
	rating, okRating := h.StateManager.GetInt64(telegramID, state.KeyRating)
	if !okOrder || !okRating {
		h.StateManager.ClearState(telegramID)
		h.sendMessage(ctx, b, chatID, "❌ Оценка не найдена, начните заново из /myorders")
		return
	}

	review, err := h.ReviewService.Create(ctx, telegramID, orderID, int(rating), update.Message.Text)
	if err != nil {
		if _, ok := validation.AsFieldError(err); !ok {
			h.StateManager.ClearState(telegramID)
		}
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.ClearState(telegramID)
	h.sendScreen(ctx, b, chatID,
		fmt.Sprintf("🙏 Спасибо за отзыв на заказ #%d!", review.OrderID),
		common.CancelDialogKeyboard())
}

func (h *Handlers) handleSupportMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	req, err := h.SupportService.Submit(ctx, telegramID, update.Message.Text)
	if err != nil {
		if _, ok := validation.AsFieldError(err); !ok {
			h.Logger.Error("Failed to submit support request", zap.Int64("telegram_id", telegramID), zap.Error(err))
			h.StateManager.ClearState(telegramID)
		}
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.ClearState(telegramID)
	h.sendScreen(ctx, b, chatID,
		fmt.Sprintf("✅ Обращение #%d принято. Мы ответим в ближайшее время.", req.ID),
		common.CancelDialogKeyboard())
}
