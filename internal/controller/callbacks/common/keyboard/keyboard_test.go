package keyboard

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	kb := NewBuilder().Row().Grid([]models.InlineKeyboardButton{
		Button("a", "a"), Button("b", "b"), Button("c", "c"), Button("d", "d"), Button("e", "e"),
	}, 2).Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[2], 1)
	assert.Equal(t, "e", kb.InlineKeyboard[2][0].CallbackData)
}

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	first := PaginationButtons("p:", 0, 3)
	require.Len(t, first, 2)
	assert.Equal(t, Noop, first[0].CallbackData)
	assert.Equal(t, "p:1", first[1].CallbackData)

	middle := PaginationButtons("p:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "p:0", middle[0].CallbackData)
	assert.Equal(t, "📄 2/3", middle[1].Text)

	last := PaginationButtons("p:", 2, 3)
	require.Len(t, last, 2)
	assert.Equal(t, "p:1", last[0].CallbackData)
}
