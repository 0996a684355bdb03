package keyboard

import "github.com/go-telegram/bot/models"

// Callback главного меню
const (
	MenuMain    = "menu:main"
	MenuOrder   = "menu:order"
	MenuConsult = "menu:consult"
	MenuOrders  = "menu:orders"
	MenuProfile = "menu:profile"
	MenuSupport = "menu:support"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", MenuMain)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// ConfirmButton создаёт кнопку "Подтвердить"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Подтвердить", callbackData)
}

// AddBackToMainButton добавляет кнопку "В главное меню" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// MainMenu клавиатура главного меню
func MainMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("🛠 Оформить заказ", MenuOrder)).
		Row(Button("🤖 Консультация", MenuConsult)).
		Row(Button("📋 Мои заказы", MenuOrders), Button("👤 Профиль", MenuProfile)).
		Row(Button("💬 Поддержка", MenuSupport)).
		Build()
}
