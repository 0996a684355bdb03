package model

import "time"

// User клиент сервиса, ключ - telegram id
type User struct {
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProfileField поле профиля, доступное для редактирования
type ProfileField string

const (
	ProfileFieldName    ProfileField = "name"
	ProfileFieldPhone   ProfileField = "phone"
	ProfileFieldAddress ProfileField = "address"
)

// MaskedPhone скрывает последние цифры телефона
func (u *User) MaskedPhone() string {
	r := []rune(u.Phone)
	if len(r) <= 4 {
		return u.Phone
	}
	masked := make([]rune, 0, len(r))
	masked = append(masked, r[:len(r)-4]...)
	for i := 0; i < 4; i++ {
		masked = append(masked, '*')
	}
	return string(masked)
}

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	OrderID   int64     `json:"order_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	UserName string `json:"user_name,omitempty"`
}

type SupportRequest struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Statistics сводка для администратора
type Statistics struct {
	Users           int     `json:"users"`
	Orders          int     `json:"orders"`
	ActiveOrders    int     `json:"active_orders"`
	CompletedOrders int     `json:"completed_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	Revenue         int     `json:"revenue"`
	Reviews         int     `json:"reviews"`
	AverageRating   float64 `json:"average_rating"`
	SupportRequests int     `json:"support_requests"`
}
