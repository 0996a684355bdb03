package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// target экран в новом сообщении чата
func target(b *bot.Bot, chatID int64) common.Target {
	return common.Target{Bot: b, ChatID: chatID}
}

// sendScreen отправляет HTML сообщение с клавиатурой и логирует если не удалось
func (h *Handlers) sendScreen(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	if err := target(b, chatID).Show(ctx, text, kb); err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.sendScreen(ctx, b, chatID, text, nil)
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	text := common.ErrorMessage(err)
	_, sendErr := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if sendErr != nil {
		h.Logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(sendErr),
		)
	}
}

// commandArgs текст после команды: "/admin_status 12 done" -> ["12", "done"]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// commandTail текст после команды целиком
func commandTail(text string) string {
	_, tail, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(tail)
}
