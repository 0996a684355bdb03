package common

import (
	"errors"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/service"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNotAdmin      = errors.New("user is not an admin")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	if fe, ok := validation.AsFieldError(err); ok {
		return "❌ " + fe.Message
	}

	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, service.ErrNotRegistered):
		return "❌ Вы ещё не зарегистрированы. Используйте /start"
	case errors.Is(err, ErrNotAdmin):
		return "❌ Эта команда доступна только администраторам"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrOrderNotFound):
		return "❌ Заказ не найден"
	case errors.Is(err, service.ErrCannotCancel):
		return "❌ Этот заказ уже нельзя отменить"
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Такая смена статуса недопустима"
	case errors.Is(err, service.ErrNotReviewable):
		return "❌ Отзыв можно оставить только на выполненный заказ"
	case errors.Is(err, model.ErrAlreadyReviewed):
		return "❌ Вы уже оставили отзыв на этот заказ"
	case errors.Is(err, model.ErrInvalidStatus):
		return "❌ Неизвестный статус заказа"
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
