package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"     // Создан, ждёт подтверждения
	OrderStatusConfirmed  OrderStatus = "confirmed"   // Подтверждён
	OrderStatusInProgress OrderStatus = "in_progress" // Мастер выполняет работу
	OrderStatusCompleted  OrderStatus = "completed"   // Выполнен
	OrderStatusCancelled  OrderStatus = "cancelled"   // Отменён
)

// OrderStatuses закрытый список статусов в порядке жизненного цикла
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid проверяет что статус входит в закрытый список
func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus превращает строку в статус
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	return st, st.Valid()
}

// CanBeCancelled заказ можно отменить пользователем
func (s OrderStatus) CanBeCancelled() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// CanBeReviewed на заказ можно оставить отзыв
func (s OrderStatus) CanBeReviewed() bool {
	return s == OrderStatusCompleted
}

// IsActive заказ ещё не завершён и не отменён
func (s OrderStatus) IsActive() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed || s == OrderStatusInProgress
}

// CanTransitionTo разрешённые переходы статусов
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() || s == next {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusInProgress || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusInProgress || next == OrderStatusCompleted || next == OrderStatusCancelled
	case OrderStatusInProgress:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		// completed и cancelled - финальные
		return false
	}
}

type Order struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"` // telegram id пользователя
	ProviderID int64       `json:"provider_id"`
	Address    string      `json:"address"`
	Date       time.Time   `json:"date"` // только дата, время в TimeSlot
	TimeSlot   string      `json:"time_slot"`
	TotalCost  int         `json:"total_cost"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`

	// Дополнительные поля для удобства (не из таблицы orders)
	ProviderName string    `json:"provider_name,omitempty"`
	Services     []Service `json:"services,omitempty"`
}

// NewOrder данные для атомарного создания заказа вместе со связями на услуги
type NewOrder struct {
	UserID     int64
	ProviderID int64
	Address    string
	Date       time.Time
	TimeSlot   string
	TotalCost  int
	ServiceIDs []int64
}

// OrderServiceLink связь заказа с услугой
type OrderServiceLink struct {
	OrderID   int64 `json:"order_id"`
	ServiceID int64 `json:"service_id"`
}
