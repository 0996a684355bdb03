package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/recommendation"
	"github.com/Freeeeeet/repair_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// BuildMainMenu главное меню
func BuildMainMenu(name string) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("👋 Здравствуйте, %s!\n\n"+
		"Я помогу оформить выезд мастера по ремонту компьютера.\n"+
		"Выберите услуги сами или опишите проблему, и я подскажу, что поможет.",
		html.EscapeString(name))
	return text, keyboard.MainMenu()
}

// HelpText справка по командам
func HelpText(isAdmin bool) string {
	var sb strings.Builder
	sb.WriteString("📖 <b>Команды</b>\n\n")
	sb.WriteString("/order - оформить заказ\n")
	sb.WriteString("/consult - консультация по проблеме\n")
	sb.WriteString("/myorders - мои заказы\n")
	sb.WriteString("/profile - мой профиль\n")
	sb.WriteString("/support - написать в поддержку\n")
	sb.WriteString("/cancel - отменить текущее действие\n")
	if isAdmin {
		sb.WriteString("\n🔐 <b>Администратор</b>\n\n")
		sb.WriteString("/admin_orders - последние заказы\n")
		sb.WriteString("/admin_status &lt;id&gt; &lt;статус&gt; - сменить статус\n")
		sb.WriteString("/admin_stats - статистика\n")
		sb.WriteString("/ai_status - состояние консультанта\n")
	}
	return sb.String()
}

// FormatServiceLine строка услуги в списках
func FormatServiceLine(s model.Service) string {
	return fmt.Sprintf("• %s - %s, %s",
		html.EscapeString(s.Name), formatting.FormatPrice(s.Price), formatting.FormatDuration(s.Duration))
}

// BuildHistoryScreen страница истории заказов
func BuildHistoryScreen(page *service.OrderPage) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if page.Total == 0 {
		kb.Row(keyboard.Button("🛠 Оформить заказ", keyboard.MenuOrder))
		kb.AddBackToMainButton()
		return "📋 У вас пока нет заказов", kb.Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 <b>Мои заказы</b> (%d %s)\n\n", page.Total, formatting.PluralizeOrders(page.Total))
	for _, o := range page.Orders {
		status := formatting.GetOrderStatusDisplay(o.Status)
		fmt.Fprintf(&sb, "%s Заказ #%d - %s %s, %s\n",
			status.Emoji, o.ID, formatting.FormatDate(o.Date), o.TimeSlot, formatting.FormatPrice(o.TotalCost))
		kb.Row(keyboard.Button(fmt.Sprintf("%s Заказ #%d", status.Emoji, o.ID), OrderViewData(o.ID)))
	}

	kb.AddPagination(HistoryPage, page.Page, page.TotalPages)
	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}

// FormatOrder подробности заказа
func FormatOrder(o *model.Order) string {
	var sb strings.Builder
	status := formatting.GetOrderStatusDisplay(o.Status)

	fmt.Fprintf(&sb, "🧾 <b>Заказ #%d</b>\n\n", o.ID)
	fmt.Fprintf(&sb, "📊 Статус: %s\n", status)
	fmt.Fprintf(&sb, "📅 Дата: %s, %s\n", formatting.FormatDateWithWeekday(o.Date), o.TimeSlot)
	fmt.Fprintf(&sb, "📍 Адрес: %s\n", html.EscapeString(o.Address))
	if o.ProviderName != "" {
		fmt.Fprintf(&sb, "👨‍🔧 Мастер: %s\n", html.EscapeString(o.ProviderName))
	}
	if len(o.Services) > 0 {
		sb.WriteString("\n🛠 Услуги:\n")
		for _, s := range o.Services {
			sb.WriteString(FormatServiceLine(s))
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "\n💰 Итого: <b>%s</b>", formatting.FormatPrice(o.TotalCost))
	return sb.String()
}

// BuildOrderDetailsScreen заказ с доступными пользователю действиями
func BuildOrderDetailsScreen(o *model.Order) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	if o.Status.CanBeCancelled() {
		kb.Row(keyboard.Button("❌ Отменить заказ", fmt.Sprintf("%s%d", OrderCancel, o.ID)))
	}
	if o.Status.CanBeReviewed() {
		kb.Row(keyboard.Button("⭐ Оставить отзыв", fmt.Sprintf("%s%d", ReviewStart, o.ID)))
	}
	kb.Row(keyboard.Button("🔁 Повторить заказ", fmt.Sprintf("%s%d", OrderRepeat, o.ID)))
	kb.Row(keyboard.BackButton(HistoryPage + "0"))

	return FormatOrder(o), kb.Build()
}

// BuildRatingScreen выбор оценки
func BuildRatingScreen(orderID int64) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		buttons = append(buttons, keyboard.Button(strings.Repeat("⭐", rating), ReviewRateData(orderID, rating)))
	}
	kb := keyboard.NewBuilder().Grid(buttons, 1).Row(keyboard.BackButton(OrderViewData(orderID)))
	return fmt.Sprintf("⭐ Оцените заказ #%d:", orderID), kb.Build()
}

// BuildProfileScreen профиль с кнопками редактирования
func BuildProfileScreen(u *model.User) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf("👤 <b>Профиль</b>\n\n"+
		"Имя: %s\n"+
		"Телефон: %s\n"+
		"Адрес: %s\n\n"+
		"С нами с %s",
		html.EscapeString(u.Name),
		html.EscapeString(u.MaskedPhone()),
		html.EscapeString(u.Address),
		formatting.FormatDate(u.CreatedAt))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✏️ Имя", ProfileEdit+string(model.ProfileFieldName)),
			keyboard.Button("📞 Телефон", ProfileEdit+string(model.ProfileFieldPhone))).
		Row(keyboard.Button("📍 Адрес", ProfileEdit+string(model.ProfileFieldAddress))).
		AddBackToMainButton()
	return text, kb.Build()
}

// BuildRecommendationScreen результат консультации
func BuildRecommendationScreen(rec *ordering.RecommendationReply) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🤖 <b>Рекомендация</b>\n\n")
	if rec.Result.Rationale != "" {
		sb.WriteString(html.EscapeString(rec.Result.Rationale))
		sb.WriteString("\n\n")
	}

	kb := keyboard.NewBuilder()
	if len(rec.Services) > 0 {
		sb.WriteString("Рекомендуемые услуги:\n")
		total := 0
		for _, s := range rec.Services {
			sb.WriteString(FormatServiceLine(s))
			sb.WriteString("\n")
			total += s.Price
		}
		fmt.Fprintf(&sb, "\n💰 Примерная стоимость: %s", formatting.FormatPrice(total))
		kb.Row(keyboard.Button("✅ Оформить с этими услугами", RecAccept))
	}
	if rec.Result.Fallback {
		sb.WriteString("\n\n<i>Подбор выполнен автоматически по ключевым словам.</i>")
	}
	kb.Row(keyboard.Button("🛠 Выбрать услуги самому", RecManual))
	kb.AddBackToMainButton()
	return sb.String(), kb.Build()
}

// BuildAdminOrdersScreen последние заказы для администратора
func BuildAdminOrdersScreen(orders []model.Order) (string, *models.InlineKeyboardMarkup) {
	if len(orders) == 0 {
		return "📭 Заказов пока нет", nil
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Последние заказы</b>\n\n")
	kb := keyboard.NewBuilder()
	for _, o := range orders {
		status := formatting.GetOrderStatusDisplay(o.Status)
		fmt.Fprintf(&sb, "%s #%d - user %d, %s %s, %s\n",
			status.Emoji, o.ID, o.UserID, formatting.FormatDate(o.Date), o.TimeSlot, formatting.FormatPrice(o.TotalCost))
		kb.Row(keyboard.Button(fmt.Sprintf("%s #%d", status.Emoji, o.ID), fmt.Sprintf("%s%d", AdminOrder, o.ID)))
	}
	return sb.String(), kb.Build()
}

// BuildAdminOrderScreen заказ с кнопками допустимых переходов статуса
func BuildAdminOrderScreen(o *model.Order) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	for _, next := range model.OrderStatuses {
		if !o.Status.CanTransitionTo(next) {
			continue
		}
		display := formatting.GetOrderStatusDisplay(next)
		kb.Row(keyboard.Button("→ "+display.String(), fmt.Sprintf("%s%d:%s", AdminSet, o.ID, next)))
	}
	kb.Row(keyboard.BackButton(AdminOrders))
	return FormatOrder(o), kb.Build()
}

// FormatStatistics сводка для /admin_stats
func FormatStatistics(st *model.Statistics) string {
	return fmt.Sprintf("📊 <b>Статистика</b>\n\n"+
		"👥 Пользователей: %d\n"+
		"🧾 Заказов: %d\n"+
		"🔧 Активных: %d\n"+
		"✔️ Выполнено: %d\n"+
		"❌ Отменено: %d\n"+
		"💰 Выручка: %s\n"+
		"⭐ Отзывов: %d (средняя оценка %.1f)\n"+
		"💬 Обращений в поддержку: %d",
		st.Users, st.Orders, st.ActiveOrders, st.CompletedOrders, st.CancelledOrders,
		formatting.FormatPrice(st.Revenue), st.Reviews, st.AverageRating, st.SupportRequests)
}

// FormatAdviceStatus ответ на /ai_status
func FormatAdviceStatus(st recommendation.Status) string {
	switch {
	case !st.Configured:
		return "🤖 Консультант не настроен, работает подбор по ключевым словам"
	case st.Available:
		return "🤖 Консультант доступен"
	default:
		text := "🤖 Консультант недоступен, работает подбор по ключевым словам"
		if st.LastError != "" {
			text += "\n\nОшибка: " + html.EscapeString(st.LastError)
		}
		return text
	}
}
