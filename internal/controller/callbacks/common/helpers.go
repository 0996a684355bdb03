package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "order_view:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return id, nil
}

// ParseTwoIDs разбирает callback вида "prefix:123:4"
func ParseTwoIDs(data string) (int64, int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	first, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	second, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return first, second, nil
}

// IsMessageNotModifiedError telegram отвечает ошибкой, если текст и клавиатура не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// Target куда выводить экран: новое сообщение или правка существующего
type Target struct {
	Bot       *bot.Bot
	ChatID    int64
	MessageID int // 0 - отправить новое сообщение
}

// Show показывает текст с клавиатурой
func (t Target) Show(ctx context.Context, text string, keyboard *models.InlineKeyboardMarkup) error {
	if t.MessageID != 0 {
		params := &bot.EditMessageTextParams{
			ChatID:    t.ChatID,
			MessageID: t.MessageID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		}
		if keyboard != nil {
			params.ReplyMarkup = keyboard
		}
		_, err := t.Bot.EditMessageText(ctx, params)
		if IsMessageNotModifiedError(err) {
			return nil
		}
		return err
	}

	params := &bot.SendMessageParams{
		ChatID:    t.ChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := t.Bot.SendMessage(ctx, params)
	return err
}
