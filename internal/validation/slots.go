package validation

import (
	"time"
)

// Рабочие часы сервиса 10:00 - 22:00, выезд мастера каждые два часа
var TimeSlots = []string{"10:00", "12:00", "14:00", "16:00", "18:00", "20:00"}

const (
	DefaultOfferDays  = 14
	DefaultAcceptDays = 30
)

// Window окно дат заказа.
// OfferDays - сколько дней предлагает выбор даты, AcceptDays - до какого дня заказ принимается
type Window struct {
	OfferDays  int
	AcceptDays int
}

func DefaultWindow() Window {
	return Window{OfferDays: DefaultOfferDays, AcceptDays: DefaultAcceptDays}
}

// IsTimeSlot проверяет что время входит в список слотов
func IsTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// StartOfDay полночь того же дня в часовом поясе loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// OfferedDates даты для выбора: с завтрашнего дня на OfferDays дней вперёд
func OfferedDates(now time.Time, w Window) []time.Time {
	today := StartOfDay(now, now.Location())
	dates := make([]time.Time, 0, w.OfferDays)
	for i := 1; i <= w.OfferDays; i++ {
		dates = append(dates, today.AddDate(0, 0, i))
	}
	return dates
}

// CombineDateSlot собирает момент начала визита из даты и слота
func CombineDateSlot(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	hm, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}

// ValidateSlot проверяет пару дата+время целиком:
// слот из списка, момент не в прошлом, today < date <= today+AcceptDays
func ValidateSlot(date time.Time, slot string, w Window, now time.Time) error {
	if !IsTimeSlot(slot) {
		return fieldError(FieldTime, "Выберите время из предложенных вариантов")
	}

	loc := now.Location()
	visit, err := CombineDateSlot(date, slot, loc)
	if err != nil {
		return fieldError(FieldTime, "Выберите время из предложенных вариантов")
	}
	if visit.Before(now) {
		return fieldError(FieldDate, "Нельзя выбрать дату и время в прошлом")
	}

	today := StartOfDay(now, loc)
	day := StartOfDay(date, loc)
	if !day.After(today) {
		return fieldError(FieldDate, "Заказ можно оформить начиная с завтрашнего дня")
	}
	if day.After(today.AddDate(0, 0, w.AcceptDays)) {
		return fieldError(FieldDate, "Нельзя оформить заказ более чем на %d дней вперёд", w.AcceptDays)
	}

	return nil
}
