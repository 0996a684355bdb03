package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/repair_bot/internal/ordering"
)

var msk = time.FixedZone("MSK", 3*60*60)

func TestParseEventRoundTrip(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, msk)

	cases := []struct {
		data string
		want ordering.Event
	}{
		{ToggleData(7), ordering.ToggleService{ServiceID: 7}},
		{PageData(2), ordering.ChangePage{Page: 2}},
		{ConfirmServicesData(), ordering.ConfirmServices{}},
		{TimeData("14:00"), ordering.SelectTime{Slot: "14:00"}},
		{ProfileAddressData(), ordering.UseProfileAddress{}},
		{CustomAddressData(), ordering.RequestCustomAddress{}},
		{ConfirmOrderData(), ordering.ConfirmOrder{}},
		{BackData(ordering.StateSelectingDate), ordering.Back{To: ordering.StateSelectingDate}},
		{CancelData(), ordering.Cancel{}},
	}

	for _, tc := range cases {
		t.Run(tc.data, func(t *testing.T) {
			got, err := ParseEvent(tc.data, msk)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, len(tc.data), 64)
		})
	}

	got, err := ParseEvent(DateData(date), msk)
	require.NoError(t, err)
	sel, ok := got.(ordering.SelectDate)
	require.True(t, ok)
	assert.True(t, sel.Date.Equal(date))
	assert.Equal(t, msk, sel.Date.Location())
}

func TestParseEventRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"o:",
		"o:zz",
		New,
		"o:t:abc",
		"o:t:-3",
		"o:p:x",
		"o:tm",
		"o:d:15.03.2026",
		"o:b:0",
		"o:b:7",
		"o:b:two",
		"o:ok:1",
		"order_view:1",
	} {
		_, err := ParseEvent(data, msk)
		assert.ErrorIs(t, err, ErrUnknownEvent, data)
	}
}
