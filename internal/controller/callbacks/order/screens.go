package order

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/go-telegram/bot/models"
)

const (
	slotsPerRow = 3
	datesPerRow = 3
)

// Render текст и клавиатура для ответа мастера.
// Отказ показывается над экраном текущего шага
func Render(reply *ordering.Reply) (string, *models.InlineKeyboardMarkup) {
	switch {
	case reply.Confirmation != nil:
		return renderConfirmation(reply.Confirmation)
	case reply.Cancelled:
		return "❌ Оформление заказа отменено", keyboard.NewBuilder().AddBackToMainButton().Build()
	}

	var text string
	var kb *models.InlineKeyboardMarkup
	if reply.Screen != nil {
		text, kb = renderScreen(reply.Screen)
	} else {
		kb = keyboard.NewBuilder().
			Row(keyboard.Button("🛠 Начать заново", New)).
			AddBackToMainButton().
			Build()
	}

	if reply.Rejection != nil {
		warning := "⚠️ " + html.EscapeString(reply.Rejection.Message)
		if text == "" {
			return warning, kb
		}
		text = warning + "\n\n" + text
	}
	return text, kb
}

func renderScreen(s *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	switch s.State {
	case ordering.StateSelectingServices:
		return renderServices(s)
	case ordering.StateSelectingTime:
		return renderTime(s)
	case ordering.StateSelectingDate:
		return renderDate(s)
	case ordering.StateSelectingAddress:
		return renderAddress(s)
	case ordering.StateAwaitingCustomAddress:
		return renderCustomAddress(s)
	case ordering.StateSummary:
		return renderSummary(s)
	default:
		return "", keyboard.NewBuilder().AddBackToMainButton().Build()
	}
}

func cancelRow() models.InlineKeyboardButton {
	return keyboard.CancelButton(CancelData())
}

func renderServices(s *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	selected := make(map[int64]struct{}, len(s.Selected))
	for _, id := range s.Selected {
		selected[id] = struct{}{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛠 <b>Выберите услуги</b>\n\nВыбрано: %d из %d\n\n", len(s.Selected), s.MaxServices)

	kb := keyboard.NewBuilder()
	for _, svc := range s.Services {
		mark := "▫️"
		if _, ok := selected[svc.ID]; ok {
			mark = "✅"
		}
		sb.WriteString(common.FormatServiceLine(svc))
		sb.WriteString("\n")
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s %s - %s", mark, svc.Name, formatting.FormatPrice(svc.Price)),
			ToggleData(svc.ID)))
	}

	kb.AddPagination(PagePrefix(), s.Page, s.TotalPages)
	if len(s.Selected) > 0 {
		kb.Row(keyboard.Button("➡️ Далее", ConfirmServicesData()))
	}
	kb.Row(cancelRow())
	return sb.String(), kb.Build()
}

func renderTime(s *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, len(s.TimeSlots))
	for _, slot := range s.TimeSlots {
		label := slot
		if slot == s.TimeSlot {
			label = "✅ " + slot
		}
		buttons = append(buttons, keyboard.Button(label, TimeData(slot)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, slotsPerRow).
		Row(keyboard.BackButton(BackData(ordering.StateSelectingServices)), cancelRow())

	text := fmt.Sprintf("🕐 <b>Выберите время визита</b>\n\nВыбрано %d %s",
		len(s.Selected), formatting.PluralizeServices(len(s.Selected)))
	return text, kb.Build()
}

func renderDate(s *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, len(s.Dates))
	for _, d := range s.Dates {
		buttons = append(buttons, keyboard.Button(formatting.FormatDayButton(d), DateData(d)))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, datesPerRow).
		Row(keyboard.BackButton(BackData(ordering.StateSelectingTime)), cancelRow())

	text := fmt.Sprintf("📅 <b>Выберите дату визита</b>\n\nВремя: %s", s.TimeSlot)
	return text, kb.Build()
}

func renderAddress(s *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📍 <b>Куда приехать мастеру?</b>\n\n")

	kb := keyboard.NewBuilder()
	if s.ProfileAddress != "" {
		fmt.Fprintf(&sb, "Адрес из профиля: %s", html.EscapeString(s.ProfileAddress))
		kb.Row(keyboard.Button("🏠 Адрес из профиля", ProfileAddressData()))
	} else {
		sb.WriteString("В профиле нет адреса, введите его вручную")
	}
	kb.Row(keyboard.Button("✏️ Ввести другой адрес", CustomAddressData()))
	kb.Row(keyboard.BackButton(BackData(ordering.StateSelectingDate)), cancelRow())

	return sb.String(), kb.Build()
}

func renderCustomAddress(_ *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.BackButton(BackData(ordering.StateSelectingAddress)), cancelRow())
	return "✏️ Отправьте адрес сообщением: город, улица, дом, квартира", kb.Build()
}

func renderSummary(s *ordering.Screen) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("🧾 <b>Проверьте заказ</b>\n\n🛠 Услуги:\n")
	for _, svc := range s.Services {
		sb.WriteString(common.FormatServiceLine(svc))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n📅 %s, %s\n", formatting.FormatDateWithWeekday(s.Date), s.TimeSlot)
	fmt.Fprintf(&sb, "📍 %s\n", html.EscapeString(s.Address))
	fmt.Fprintf(&sb, "👨‍🔧 Мастер: %s\n", html.EscapeString(s.ProviderName))
	fmt.Fprintf(&sb, "⏱ Примерно %s\n", formatting.FormatDuration(s.TotalDuration))
	fmt.Fprintf(&sb, "\n💰 Итого: <b>%s</b>", formatting.FormatPrice(s.TotalCost))

	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmButton(ConfirmOrderData())).
		Row(keyboard.Button("🛠 Изменить услуги", BackData(ordering.StateSelectingServices)),
			keyboard.Button("📅 Изменить дату", BackData(ordering.StateSelectingDate))).
		Row(keyboard.Button("📍 Изменить адрес", BackData(ordering.StateSelectingAddress)), cancelRow())
	return sb.String(), kb.Build()
}

func renderConfirmation(c *ordering.Confirmation) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 <b>Заказ #%d оформлен!</b>\n\n", c.OrderID)
	for _, svc := range c.Services {
		sb.WriteString(common.FormatServiceLine(svc))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n📅 %s, %s\n", formatting.FormatDateWithWeekday(c.Date), c.TimeSlot)
	fmt.Fprintf(&sb, "📍 %s\n", html.EscapeString(c.Address))
	fmt.Fprintf(&sb, "👨‍🔧 Мастер: %s\n", html.EscapeString(c.ProviderName))
	fmt.Fprintf(&sb, "💰 Итого: <b>%s</b>\n\n", formatting.FormatPrice(c.TotalCost))
	sb.WriteString("Мастер свяжется с вами перед визитом.")

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Мои заказы", keyboard.MenuOrders)).
		AddBackToMainButton()
	return sb.String(), kb.Build()
}
