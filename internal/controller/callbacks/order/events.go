package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/repair_bot/internal/ordering"
)

// Prefix общий префикс callback data мастера заказа
const Prefix = "o:"

// New начать новый заказ
const New = Prefix + "new"

const (
	opToggle         = "t"
	opPage           = "p"
	opConfirmService = "cs"
	opTime           = "tm"
	opDate           = "d"
	opProfileAddress = "pa"
	opCustomAddress  = "ca"
	opConfirmOrder   = "ok"
	opBack           = "b"
	opCancel         = "x"
)

const dateLayout = "2006-01-02"

var ErrUnknownEvent = errors.New("unknown order callback")

func ToggleData(serviceID int64) string {
	return fmt.Sprintf("%s%s:%d", Prefix, opToggle, serviceID)
}

func PageData(page int) string {
	return fmt.Sprintf("%s%s:%d", Prefix, opPage, page)
}

// PagePrefix для keyboard.PaginationButtons
func PagePrefix() string {
	return Prefix + opPage + ":"
}

func ConfirmServicesData() string {
	return Prefix + opConfirmService
}

func TimeData(slot string) string {
	return Prefix + opTime + ":" + slot
}

func DateData(date time.Time) string {
	return Prefix + opDate + ":" + date.Format(dateLayout)
}

func ProfileAddressData() string {
	return Prefix + opProfileAddress
}

func CustomAddressData() string {
	return Prefix + opCustomAddress
}

func ConfirmOrderData() string {
	return Prefix + opConfirmOrder
}

func BackData(to ordering.State) string {
	return fmt.Sprintf("%s%s:%d", Prefix, opBack, int(to))
}

func CancelData() string {
	return Prefix + opCancel
}

// ParseEvent превращает callback data в событие мастера.
// Дата разбирается в поясе loc
func ParseEvent(data string, loc *time.Location) (ordering.Event, error) {
	rest, ok := strings.CutPrefix(data, Prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
	}

	op, arg, _ := strings.Cut(rest, ":")
	switch op {
	case opToggle:
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
		}
		return ordering.ToggleService{ServiceID: id}, nil

	case opPage:
		page, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
		}
		return ordering.ChangePage{Page: page}, nil

	case opConfirmService:
		return noArg(ordering.ConfirmServices{}, arg, data)

	case opTime:
		if arg == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
		}
		return ordering.SelectTime{Slot: arg}, nil

	case opDate:
		date, err := time.ParseInLocation(dateLayout, arg, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
		}
		return ordering.SelectDate{Date: date}, nil

	case opProfileAddress:
		return noArg(ordering.UseProfileAddress{}, arg, data)

	case opCustomAddress:
		return noArg(ordering.RequestCustomAddress{}, arg, data)

	case opConfirmOrder:
		return noArg(ordering.ConfirmOrder{}, arg, data)

	case opBack:
		to, err := strconv.Atoi(arg)
		if err != nil || to < int(ordering.StateSelectingServices) || to > int(ordering.StateSummary) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
		}
		return ordering.Back{To: ordering.State(to)}, nil

	case opCancel:
		return noArg(ordering.Cancel{}, arg, data)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
}

func noArg(ev ordering.Event, arg, data string) (ordering.Event, error) {
	if arg != "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
	}
	return ev, nil
}
