package menu

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/order"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMain возврат в главное меню сбрасывает текстовый диалог, черновик заказа остаётся
func HandleMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.Answer("")

		text, kb := common.BuildMainMenu(hc.User.Name)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Int64("user_id", hc.TelegramID), zap.Error(err))
		}
	})
}

func HandleOrder(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	order.HandleNew(ctx, b, callback, h)
}

func HandleConsult(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	startDialog(ctx, b, callback, h, state.StateConsultProblem, common.PromptConsult)
}

func HandleSupport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	startDialog(ctx, b, callback, h, state.StateSupportMessage, common.PromptSupport)
}

func HandleProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Answer("")
		text, kb := common.BuildProfileScreen(hc.User)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show profile", zap.Int64("user_id", hc.TelegramID), zap.Error(err))
		}
	})
}

func startDialog(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	st state.UserState,
	prompt string,
) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(st)
		hc.Answer("")
		if err := hc.EditMessage(prompt, common.CancelDialogKeyboard()); err != nil {
			h.Logger.Error("Failed to show prompt",
				zap.Int64("user_id", hc.TelegramID),
				zap.String("state", string(st)),
				zap.Error(err))
		}
	})
}
