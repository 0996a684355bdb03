package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
)

// DefaultTTL время жизни неактивной сессии
const DefaultTTL = 30 * time.Minute

// Manager управляет сессиями пользователей: диалог, черновик заказа, рекомендация.
// Реализует ordering.SessionStore
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	ttl    time.Duration
	now    func() time.Time
}

var _ ordering.SessionStore = (*Manager)(nil)

// NewManager создаёт новый менеджер состояний
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		states: make(map[int64]*UserData),
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetClock подменяет часы для тестов
func (sm *Manager) SetClock(now func() time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.now = now
}

// session возвращает запись пользователя, создаёт при необходимости.
// Просроченная запись без держателей начинается заново. Вызывать под sm.mu
func (sm *Manager) session(telegramID int64) *UserData {
	now := sm.now()
	ud, exists := sm.states[telegramID]
	if !exists || (ud.refs == 0 && sm.expired(ud, now)) {
		ud = newUserData(now)
		sm.states[telegramID] = ud
	}
	ud.lastSeen = now
	return ud
}

func (sm *Manager) lookup(telegramID int64) (*UserData, bool) {
	ud, exists := sm.states[telegramID]
	if !exists || (ud.refs == 0 && sm.expired(ud, sm.now())) {
		return nil, false
	}
	return ud, true
}

func (sm *Manager) expired(ud *UserData, now time.Time) bool {
	return now.Sub(ud.lastSeen) > sm.ttl
}

// Lock сериализует операции одного пользователя
func (sm *Manager) Lock(telegramID int64) func() {
	sm.mu.Lock()
	ud := sm.session(telegramID)
	ud.refs++
	sm.mu.Unlock()

	ud.lock.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ud.lock.Unlock()
			sm.mu.Lock()
			ud.refs--
			sm.mu.Unlock()
		})
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, ok := sm.lookup(telegramID); ok {
		return ud.State
	}
	return StateNone
}

// SetState устанавливает состояние диалога
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.session(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, ok := sm.lookup(telegramID); ok {
		value, ok := ud.Data[key]
		return value, ok
	}
	return nil, false
}

// GetInt64 временное значение как int64
func (sm *Manager) GetInt64(telegramID int64, key string) (int64, bool) {
	value, ok := sm.GetData(telegramID, key)
	if !ok {
		return 0, false
	}
	v, ok := value.(int64)
	return v, ok
}

// GetString временное значение как строка
func (sm *Manager) GetString(telegramID int64, key string) (string, bool) {
	value, ok := sm.GetData(telegramID, key)
	if !ok {
		return "", false
	}
	v, ok := value.(string)
	return v, ok
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.session(telegramID).Data[key] = value
}

// ClearState очищает диалог и его данные. Черновик заказа остаётся
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ud, exists := sm.states[telegramID]; exists {
		ud.State = StateNone
		ud.Data = make(map[string]interface{})
	}
}

// Reset удаляет всё про пользователя
func (sm *Manager) Reset(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ud, exists := sm.states[telegramID]; exists {
		ud.State = StateNone
		ud.Data = make(map[string]interface{})
		ud.Draft = nil
		ud.Recommendation = nil
	}
}

func (sm *Manager) Draft(telegramID int64) *ordering.Draft {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, ok := sm.lookup(telegramID); ok {
		return ud.Draft
	}
	return nil
}

func (sm *Manager) SaveDraft(telegramID int64, d *ordering.Draft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.session(telegramID).Draft = d
}

func (sm *Manager) ClearDraft(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ud, exists := sm.states[telegramID]; exists {
		ud.Draft = nil
	}
}

func (sm *Manager) Recommendation(telegramID int64) *model.RecommendationResult {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if ud, ok := sm.lookup(telegramID); ok {
		return ud.Recommendation
	}
	return nil
}

func (sm *Manager) SaveRecommendation(telegramID int64, r *model.RecommendationResult) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.session(telegramID).Recommendation = r
}

func (sm *Manager) ClearRecommendation(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if ud, exists := sm.states[telegramID]; exists {
		ud.Recommendation = nil
	}
}

// Sweep удаляет просроченные и пустые сессии, возвращает число удалённых.
// Сессии, по которым кто-то держит или ждёт Lock, не трогаются
func (sm *Manager) Sweep() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.now()
	removed := 0
	for id, ud := range sm.states {
		if ud.refs > 0 {
			continue
		}
		if sm.expired(ud, now) || ud.empty() {
			delete(sm.states, id)
			removed++
		}
	}
	return removed
}

// Len число сессий в памяти
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.states)
}
