package profile

import (
	"context"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleEdit переводит пользователя в ввод нового значения поля
func HandleEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		field := model.ProfileField(strings.TrimPrefix(callback.Data, common.ProfileEdit))
		prompt, st, ok := common.ProfileEditPrompt(field)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		hc.SetState(st)
		hc.Answer("")
		if err := hc.EditMessage(prompt, common.CancelDialogKeyboard()); err != nil {
			h.Logger.Error("Failed to show profile prompt",
				zap.Int64("user_id", hc.TelegramID),
				zap.String("field", string(field)),
				zap.Error(err))
		}
	})
}
