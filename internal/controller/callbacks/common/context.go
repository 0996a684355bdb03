package common

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	User       *model.User
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// LoadUser загружает пользователя в контекст
func (hc *HandlerContext) LoadUser() error {
	user, err := hc.Handler.UserService.GetByTelegramID(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hc.User = user
	return nil
}

// RequireAdmin проверяет что пользователь в списке администраторов
func (hc *HandlerContext) RequireAdmin() error {
	if !hc.Handler.AdminService.IsAdmin(hc.TelegramID) {
		return ErrNotAdmin
	}
	return nil
}

// Target экран callback'а правит исходное сообщение
func (hc *HandlerContext) Target() Target {
	t := Target{Bot: hc.Bot, ChatID: hc.ChatID}
	if hc.Message != nil {
		t.MessageID = hc.Message.ID
	}
	return t
}

// NewMessageTarget экран в новом сообщении того же чата
func (hc *HandlerContext) NewMessageTarget() Target {
	return Target{Bot: hc.Bot, ChatID: hc.ChatID}
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	return hc.Target().Show(hc.Ctx, text, keyboard)
}

// SendMessage отправляет новое сообщение
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	return hc.NewMessageTarget().Show(hc.Ctx, text, keyboard)
}

// ClearState очищает состояние диалога пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает состояние пользователя
func (hc *HandlerContext) SetState(st state.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, st)
}

// SetData устанавливает данные в state
func (hc *HandlerContext) SetData(key string, value interface{}) {
	hc.Handler.StateManager.SetData(hc.TelegramID, key, value)
}
