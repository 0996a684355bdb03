package order

import (
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
)

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.CallbackData)
		}
	}
	return out
}

func TestRenderServicesMarksSelection(t *testing.T) {
	text, kb := Render(&ordering.Reply{
		State: ordering.StateSelectingServices,
		Screen: &ordering.Screen{
			State: ordering.StateSelectingServices,
			Services: []model.Service{
				{ID: 1, Name: "Диагностика компьютера", Price: 500, Duration: 30},
				{ID: 2, Name: "Чистка от пыли", Price: 800, Duration: 45},
			},
			Selected:    []int64{2},
			TotalPages:  3,
			MaxServices: 10,
		},
	})

	assert.Contains(t, text, "Выбрано: 1 из 10")
	require.NotEmpty(t, kb.InlineKeyboard)
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[0][0].Text, "▫️"))
	assert.True(t, strings.HasPrefix(kb.InlineKeyboard[1][0].Text, "✅"))

	data := callbacks(kb)
	assert.Contains(t, data, ToggleData(1))
	assert.Contains(t, data, PageData(1))
	assert.Contains(t, data, ConfirmServicesData())
	assert.Contains(t, data, CancelData())
}

func TestRenderServicesHidesNextWhenEmpty(t *testing.T) {
	_, kb := Render(&ordering.Reply{
		State:  ordering.StateSelectingServices,
		Screen: &ordering.Screen{State: ordering.StateSelectingServices, TotalPages: 1, MaxServices: 10},
	})
	assert.NotContains(t, callbacks(kb), ConfirmServicesData())
}

func TestRenderRejectionAboveScreen(t *testing.T) {
	text, kb := Render(&ordering.Reply{
		State: ordering.StateSelectingTime,
		Screen: &ordering.Screen{
			State:     ordering.StateSelectingTime,
			TimeSlots: []string{"10:00", "12:00", "14:00", "16:00"},
			Selected:  []int64{1},
		},
		Rejection: &ordering.Rejection{Kind: ordering.KindValidation, Message: "<b>плохо</b>"},
	})

	assert.True(t, strings.HasPrefix(text, "⚠️ &lt;b&gt;плохо&lt;/b&gt;"))
	assert.Contains(t, text, "Выберите время")
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Contains(t, callbacks(kb), BackData(ordering.StateSelectingServices))
}

func TestRenderAddressWithoutProfile(t *testing.T) {
	text, kb := Render(&ordering.Reply{
		State:  ordering.StateSelectingAddress,
		Screen: &ordering.Screen{State: ordering.StateSelectingAddress},
	})
	assert.Contains(t, text, "В профиле нет адреса")
	assert.NotContains(t, callbacks(kb), ProfileAddressData())
	assert.Contains(t, callbacks(kb), CustomAddressData())
}

func TestRenderSummaryAndConfirmation(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	services := []model.Service{
		{ID: 1, Name: "Диагностика компьютера", Price: 500, Duration: 30},
		{ID: 3, Name: "Замена термопасты", Price: 1200, Duration: 60},
	}

	text, kb := Render(&ordering.Reply{
		State: ordering.StateSummary,
		Screen: &ordering.Screen{
			State: ordering.StateSummary, Services: services, Date: date, TimeSlot: "14:00",
			Address: "ул. Тестовая, 5, кв. 1", ProviderName: "Иван Сидоров",
			TotalCost: 1700, TotalDuration: 90,
		},
	})
	assert.Contains(t, text, "1 700 ₽")
	assert.Contains(t, text, "15.03.2026 (Вс), 14:00")
	assert.Contains(t, text, "1 ч 30 мин")
	assert.Contains(t, callbacks(kb), ConfirmOrderData())

	text, _ = Render(&ordering.Reply{
		State: ordering.StateCommitted,
		Confirmation: &ordering.Confirmation{
			OrderID: 42, Services: services, Date: date, TimeSlot: "14:00",
			Address: "ул. Тестовая, 5, кв. 1", ProviderName: "Иван Сидоров", TotalCost: 1700,
		},
	})
	assert.Contains(t, text, "Заказ #42 оформлен")
}

func TestRenderExpiredSession(t *testing.T) {
	text, kb := Render(&ordering.Reply{
		State:     ordering.StateIdle,
		Rejection: &ordering.Rejection{Kind: ordering.KindState, Message: "Черновик не найден"},
	})
	assert.Equal(t, "⚠️ Черновик не найден", text)
	assert.Contains(t, callbacks(kb), New)
}
