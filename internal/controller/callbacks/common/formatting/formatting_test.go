package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/repair_bot/internal/model"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0 ₽", FormatPrice(0))
	assert.Equal(t, "500 ₽", FormatPrice(500))
	assert.Equal(t, "1 700 ₽", FormatPrice(1700))
	assert.Equal(t, "1 250 000 ₽", FormatPrice(1250000))
	assert.Equal(t, "-3 000 ₽", FormatPrice(-3000))
}

func TestPluralize(t *testing.T) {
	cases := map[int]string{1: "услуга", 2: "услуги", 5: "услуг", 11: "услуг", 21: "услуга", 23: "услуги", 112: "услуг"}
	for n, want := range cases {
		assert.Equal(t, want, PluralizeServices(n), n)
	}
	assert.Equal(t, "заказа", PluralizeOrders(3))
	assert.Equal(t, "лет", PluralizeYears(7))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "2 ч", FormatDuration(120))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) // воскресенье
	assert.Equal(t, "15.03.2026 (Вс)", FormatDateWithWeekday(d))
	assert.Equal(t, "Вс 15.03", FormatDayButton(d))
}

func TestOrderStatusDisplay(t *testing.T) {
	for _, st := range model.OrderStatuses {
		assert.NotEqual(t, "Неизвестно", GetOrderStatusDisplay(st).Text, st)
	}
	assert.Equal(t, "❓ Неизвестно", GetOrderStatusDisplay("lost").String())
}
