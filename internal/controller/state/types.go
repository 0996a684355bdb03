package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
)

// UserState текущий текстовый диалог пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Регистрация
	StateRegisterName    UserState = "register_name"
	StateRegisterPhone   UserState = "register_phone"
	StateRegisterAddress UserState = "register_address"

	// Редактирование профиля
	StateEditName    UserState = "edit_name"
	StateEditPhone   UserState = "edit_phone"
	StateEditAddress UserState = "edit_address"

	// Оформление заказа: ввод адреса текстом
	StateOrderAddress UserState = "order_address"

	// Консультация: описание проблемы
	StateConsultProblem UserState = "consult_problem"

	// Отзыв и поддержка
	StateReviewComment  UserState = "review_comment"
	StateSupportMessage UserState = "support_message"
)

// Ключи временных данных диалога
const (
	KeyName    = "name"
	KeyPhone   = "phone"
	KeyOrderID = "order_id"
	KeyRating  = "rating"
)

// UserData всё, что хранится про пользователя между сообщениями
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога

	Draft          *ordering.Draft
	Recommendation *model.RecommendationResult

	lock     sync.Mutex
	refs     int // держатели и ожидающие Lock, такую сессию нельзя удалять
	lastSeen time.Time
}

func newUserData(now time.Time) *UserData {
	return &UserData{
		Data:     make(map[string]interface{}),
		lastSeen: now,
	}
}

func (u *UserData) empty() bool {
	return u.State == StateNone && len(u.Data) == 0 && u.Draft == nil && u.Recommendation == nil
}
