package common

import (
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/repair_bot/internal/controller/state"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Подсказки текстовых диалогов, общие для команд и кнопок
const (
	PromptRegisterName    = "👋 Добро пожаловать!\n\nДля оформления заказов нужна короткая регистрация.\nКак к вам обращаться?"
	PromptRegisterPhone   = "📞 Укажите номер телефона для связи с мастером:"
	PromptRegisterAddress = "📍 Укажите адрес, куда обычно приезжать мастеру:"
	PromptConsult         = "🤖 Опишите проблему с компьютером своими словами.\n\nНапример: «ноутбук сильно греется и шумит»"
	PromptSupport         = "💬 Напишите сообщение для поддержки одним сообщением:"
	PromptReviewComment   = "✍️ Напишите пару слов об услуге:"
)

// ProfileEditPrompt подсказка и состояние диалога для поля профиля
func ProfileEditPrompt(field model.ProfileField) (string, state.UserState, bool) {
	switch field {
	case model.ProfileFieldName:
		return "✏️ Введите новое имя:", state.StateEditName, true
	case model.ProfileFieldPhone:
		return "📞 Введите новый номер телефона:", state.StateEditPhone, true
	case model.ProfileFieldAddress:
		return "📍 Введите новый адрес:", state.StateEditAddress, true
	}
	return "", state.StateNone, false
}

// CancelDialogKeyboard кнопка выхода из текстового диалога
func CancelDialogKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().AddBackToMainButton().Build()
}
