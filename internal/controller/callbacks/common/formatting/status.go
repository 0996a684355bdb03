package formatting

import "github.com/Freeeeeet/repair_bot/internal/model"

// OrderStatusDisplay представляет отображение статуса заказа
type OrderStatusDisplay struct {
	Emoji string
	Text  string
}

var orderStatusDisplays = map[model.OrderStatus]OrderStatusDisplay{
	model.OrderStatusPending:    {"⏳", "Ожидает подтверждения"},
	model.OrderStatusConfirmed:  {"✅", "Подтверждён"},
	model.OrderStatusInProgress: {"🔧", "В работе"},
	model.OrderStatusCompleted:  {"✔️", "Выполнен"},
	model.OrderStatusCancelled:  {"❌", "Отменён"},
}

// GetOrderStatusDisplay возвращает emoji и текст для статуса заказа
func GetOrderStatusDisplay(status model.OrderStatus) OrderStatusDisplay {
	if display, ok := orderStatusDisplays[status]; ok {
		return display
	}
	return OrderStatusDisplay{"❓", "Неизвестно"}
}

func (d OrderStatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}
