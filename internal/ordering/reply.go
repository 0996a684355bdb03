package ordering

import (
	"time"

	"github.com/Freeeeeet/repair_bot/internal/model"
)

// RejectionKind категория ожидаемого отказа
type RejectionKind string

const (
	KindValidation  RejectionKind = "validation"
	KindCapacity    RejectionKind = "capacity"
	KindReferential RejectionKind = "referential"
	KindPersistence RejectionKind = "persistence"
	KindState       RejectionKind = "state"
)

// Rejection отказ в переходе. Черновик при этом не меняется
type Rejection struct {
	Kind    RejectionKind
	Field   string
	Message string
}

func (r *Rejection) Error() string {
	return string(r.Kind) + ": " + r.Message
}

// Screen всё, что нужно транспорту, чтобы показать текущий шаг
type Screen struct {
	State State

	// SelectingServices: текущая страница каталога. Summary: выбранные услуги
	Services    []model.Service
	Selected    []int64
	Page        int
	TotalPages  int
	MaxServices int

	TimeSlots []string
	Dates     []time.Time

	TimeSlot       string
	Date           time.Time
	Address        string
	ProfileAddress string

	ProviderName  string
	TotalCost     int
	TotalDuration int
}

// Confirmation результат успешного оформления
type Confirmation struct {
	OrderID       int64
	Services      []model.Service
	ProviderName  string
	Date          time.Time
	TimeSlot      string
	Address       string
	TotalCost     int
	TotalDuration int
}

// Reply ответ на событие. Ожидаемые отказы приходят в Rejection, а не в error
type Reply struct {
	State        State
	Screen       *Screen
	Rejection    *Rejection
	Confirmation *Confirmation
	Cancelled    bool
}

func (r *Reply) Rejected() bool {
	return r != nil && r.Rejection != nil
}
