package ordering

import "time"

// State шаг оформления заказа
type State int

const (
	StateIdle State = iota // черновика нет
	StateSelectingServices
	StateSelectingTime
	StateSelectingDate
	StateSelectingAddress
	StateAwaitingCustomAddress
	StateSummary
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectingServices:
		return "selecting_services"
	case StateSelectingTime:
		return "selecting_time"
	case StateSelectingDate:
		return "selecting_date"
	case StateSelectingAddress:
		return "selecting_address"
	case StateAwaitingCustomAddress:
		return "awaiting_custom_address"
	case StateSummary:
		return "summary"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Event событие от пользователя. Набор закрыт, все варианты описаны ниже
type Event interface {
	eventName() string
}

type ToggleService struct {
	ServiceID int64
}

type ChangePage struct {
	Page int
}

type ConfirmServices struct{}

type SelectTime struct {
	Slot string
}

type SelectDate struct {
	Date time.Time
}

type UseProfileAddress struct{}

type RequestCustomAddress struct{}

type EnterAddress struct {
	Text string
}

type ConfirmOrder struct{}

// Back возврат на один из предыдущих шагов с сохранением выбора
type Back struct {
	To State
}

type Cancel struct{}

func (ToggleService) eventName() string        { return "toggle_service" }
func (ChangePage) eventName() string           { return "change_page" }
func (ConfirmServices) eventName() string      { return "confirm_services" }
func (SelectTime) eventName() string           { return "select_time" }
func (SelectDate) eventName() string           { return "select_date" }
func (UseProfileAddress) eventName() string    { return "use_profile_address" }
func (RequestCustomAddress) eventName() string { return "request_custom_address" }
func (EnterAddress) eventName() string         { return "enter_address" }
func (ConfirmOrder) eventName() string         { return "confirm_order" }
func (Back) eventName() string                 { return "back" }
func (Cancel) eventName() string               { return "cancel" }

// EventName имя события для логов и метрик
func EventName(e Event) string {
	if e == nil {
		return "none"
	}
	return e.eventName()
}
