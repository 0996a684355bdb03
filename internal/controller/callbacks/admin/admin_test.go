package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/repair_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/repair_bot/internal/model"
)

func TestParseSetData(t *testing.T) {
	id, status, err := ParseSetData("admin_set:42:confirmed")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, model.OrderStatusConfirmed, status)

	for _, data := range []string{"admin_set:", "admin_set:42", "admin_set:42:", "admin_set:x:done", "admin_order:1"} {
		_, _, err := ParseSetData(data)
		assert.ErrorIs(t, err, common.ErrInvalidFormat, data)
	}
}
