package ordering

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Draft черновик заказа. Живёт только в сессии пользователя, в БД попадает при подтверждении
type Draft struct {
	UserID int64
	State  State

	selected map[int64]struct{}
	Page     int

	TimeSlot string
	Date     time.Time
	Address  string

	// Назначаются один раз при первом входе в Summary
	ProviderID    int64
	ProviderName  string
	TotalCost     int
	TotalDuration int
	costKey       string // набор услуг, для которого посчитана стоимость

	Seeded    bool // набор услуг пришёл из рекомендации
	UpdatedAt time.Time
}

func NewDraft(userID int64, now time.Time) *Draft {
	return &Draft{
		UserID:    userID,
		State:     StateSelectingServices,
		selected:  make(map[int64]struct{}),
		UpdatedAt: now,
	}
}

// Clone глубокая копия, переходы работают только с копией
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	out.selected = make(map[int64]struct{}, len(d.selected))
	for id := range d.selected {
		out.selected[id] = struct{}{}
	}
	return &out
}

// SelectedIDs выбранные услуги по возрастанию id
func (d *Draft) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(d.selected))
	for id := range d.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (d *Draft) IsSelected(id int64) bool {
	_, ok := d.selected[id]
	return ok
}

func (d *Draft) SelectedCount() int {
	return len(d.selected)
}

// toggle снимает выбор или добавляет услугу. false если лимит исчерпан
func (d *Draft) toggle(id int64, max int) bool {
	if _, ok := d.selected[id]; ok {
		delete(d.selected, id)
		return true
	}
	if len(d.selected) >= max {
		return false
	}
	d.selected[id] = struct{}{}
	return true
}

func (d *Draft) setSelected(ids []int64) {
	d.selected = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		d.selected[id] = struct{}{}
	}
}

func (d *Draft) providerAssigned() bool {
	return d.ProviderID != 0
}

// CostMatchesSelection стоимость посчитана для текущего набора услуг
func (d *Draft) CostMatchesSelection() bool {
	return d.costKey != "" && d.costKey == selectionKey(d.SelectedIDs())
}

func selectionKey(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
