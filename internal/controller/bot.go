package controller

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(botInstance *bot.Bot, deps *callbacktypes.Handler) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		logger:          deps.Logger,
	}
}

// DefaultHandler обработчик всего, что не совпало с командами: текстовые диалоги.
// Передаётся в bot.WithDefaultHandler
func DefaultHandler(deps *callbacktypes.Handler) bot.HandlerFunc {
	return handlers.NewHandlers(deps).HandleTextMessage
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/order", bot.MatchTypeExact, c.handlers.HandleOrder)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/consult", bot.MatchTypePrefix, c.handlers.HandleConsult)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/myorders", bot.MatchTypeExact, c.handlers.HandleMyOrders)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypeExact, c.handlers.HandleProfile)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/support", bot.MatchTypeExact, c.handlers.HandleSupport)

	// Команды администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_orders", bot.MatchTypeExact, c.handlers.HandleAdminOrders)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_status", bot.MatchTypePrefix, c.handlers.HandleAdminStatus)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin_stats", bot.MatchTypeExact, c.handlers.HandleAdminStats)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/ai_status", bot.MatchTypeExact, c.handlers.HandleAIStatus)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "order", Description: "🛠 Оформить заказ"},
		{Command: "consult", Description: "🤖 Консультация по проблеме"},
		{Command: "myorders", Description: "📋 Мои заказы"},
		{Command: "profile", Description: "👤 Мой профиль"},
		{Command: "support", Description: "💬 Написать в поддержку"},
		{Command: "cancel", Description: "❌ Отменить текущее действие"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
