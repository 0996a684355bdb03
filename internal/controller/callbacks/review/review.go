package review

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/validation"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart выбор оценки для выполненного заказа
func HandleStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		if err := h.ReviewService.CanReview(hc.Ctx, hc.TelegramID, orderID); err != nil {
			common.HandleError(hc, err, "start review")
			return
		}

		hc.Answer("")
		text, kb := common.BuildRatingScreen(orderID)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show rating", zap.Int64("order_id", orderID), zap.Error(err))
		}
	})
}

// HandleRate запоминает оценку и ждёт комментарий текстом
func HandleRate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		orderID, rating, err := common.ParseTwoIDs(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if err := validation.ValidateRating(int(rating)); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.SetState(state.StateReviewComment)
		hc.SetData(state.KeyOrderID, orderID)
		hc.SetData(state.KeyRating, rating)

		hc.Answer("")
		if err := hc.EditMessage(common.PromptReviewComment, common.CancelDialogKeyboard()); err != nil {
			h.Logger.Error("Failed to show review prompt", zap.Int64("order_id", orderID), zap.Error(err))
		}
	})
}
