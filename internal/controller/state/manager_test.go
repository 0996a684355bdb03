package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(ttl time.Duration) (*Manager, *clock) {
	c := &clock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	m := NewManager(ttl)
	m.SetClock(c.Now)
	return m, c
}

func TestDialogState(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	assert.Equal(t, StateNone, m.GetState(1))

	m.SetState(1, StateRegisterPhone)
	m.SetData(1, KeyName, "Иван")
	m.SetData(1, KeyOrderID, int64(42))

	assert.Equal(t, StateRegisterPhone, m.GetState(1))
	name, ok := m.GetString(1, KeyName)
	require.True(t, ok)
	assert.Equal(t, "Иван", name)
	id, ok := m.GetInt64(1, KeyOrderID)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = m.GetInt64(1, KeyName)
	assert.False(t, ok)

	assert.Equal(t, StateNone, m.GetState(2))
}

func TestClearStateKeepsDraft(t *testing.T) {
	m, c := newTestManager(time.Minute)
	m.SaveDraft(1, ordering.NewDraft(1, c.Now()))
	m.SetState(1, StateOrderAddress)

	m.ClearState(1)
	assert.Equal(t, StateNone, m.GetState(1))
	assert.NotNil(t, m.Draft(1))

	m.Reset(1)
	assert.Nil(t, m.Draft(1))
}

func TestDraftAndRecommendationSlots(t *testing.T) {
	m, c := newTestManager(time.Minute)

	d := ordering.NewDraft(7, c.Now())
	m.SaveDraft(7, d)
	assert.Same(t, d, m.Draft(7))

	rec := &model.RecommendationResult{Success: true, ServiceIDs: []int64{1, 2}}
	m.SaveRecommendation(7, rec)
	assert.Same(t, rec, m.Recommendation(7))

	m.ClearDraft(7)
	assert.Nil(t, m.Draft(7))
	assert.NotNil(t, m.Recommendation(7))

	m.ClearRecommendation(7)
	assert.Nil(t, m.Recommendation(7))
}

func TestSessionExpires(t *testing.T) {
	m, c := newTestManager(time.Minute)
	m.SaveDraft(1, ordering.NewDraft(1, c.Now()))
	m.SetState(1, StateConsultProblem)

	c.Advance(30 * time.Second)
	assert.NotNil(t, m.Draft(1))

	c.Advance(2 * time.Minute)
	assert.Nil(t, m.Draft(1))
	assert.Equal(t, StateNone, m.GetState(1))

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestSweepSkipsLockedSession(t *testing.T) {
	m, c := newTestManager(time.Minute)
	m.SaveDraft(1, ordering.NewDraft(1, c.Now()))
	m.SaveDraft(2, ordering.NewDraft(2, c.Now()))

	unlock := m.Lock(1)
	c.Advance(time.Hour)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	unlock()
	unlock() // повторный вызов ничего не делает
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestSweepRemovesEmptySessions(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	unlock := m.Lock(5)
	unlock()
	m.SetState(6, StateSupportMessage)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, StateSupportMessage, m.GetState(6))
}

func TestLockSerializesUser(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock(1)
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockDoesNotBlockOtherUsers(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	unlock := m.Lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		u := m.Lock(2)
		u()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another user blocked")
	}
}
