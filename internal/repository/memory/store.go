package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
)

var (
	_ repository.Catalog = (*Catalog)(nil)
	_ repository.Orders  = (*Orders)(nil)
	_ repository.Users   = (*Users)(nil)
	_ repository.Reviews = (*Reviews)(nil)
	_ repository.Support = (*Support)(nil)
	_ repository.Stats   = (*Stats)(nil)
)

// DB хранилище в памяти с теми же контрактами, что и postgres.
// Один мьютекс на все таблицы, поэтому создание заказа атомарно
type DB struct {
	mu sync.RWMutex

	services  map[int64]*model.Service
	providers map[int64]*model.Provider
	users     map[int64]*model.User
	orders    map[int64]*model.Order
	links     []model.OrderServiceLink
	reviews   []model.Review
	support   []model.SupportRequest

	nextOrderID   int64
	nextReviewID  int64
	nextSupportID int64

	now func() time.Time
}

func New() *DB {
	return &DB{
		services:  make(map[int64]*model.Service),
		providers: make(map[int64]*model.Provider),
		users:     make(map[int64]*model.User),
		orders:    make(map[int64]*model.Order),
		now:       time.Now,
	}
}

// NewSeeded хранилище со стандартным каталогом
func NewSeeded() *DB {
	db := New()
	for _, s := range DefaultServices() {
		db.PutService(s)
	}
	for _, p := range DefaultProviders() {
		db.PutProvider(p)
	}
	return db
}

// SetClock подменяет часы для created_at
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

// Store возвращает набор репозиториев поверх этого хранилища
func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Catalog: &Catalog{db: db},
		Orders:  &Orders{db: db},
		Users:   &Users{db: db},
		Reviews: &Reviews{db: db},
		Support: &Support{db: db},
		Stats:   &Stats{db: db},
	}
}

func (db *DB) PutService(s model.Service) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = db.now()
	}
	db.services[s.ID] = &s
}

// SetServiceActive включает или выключает услугу в каталоге
func (db *DB) SetServiceActive(id int64, active bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s, ok := db.services[id]; ok {
		s.IsActive = active
	}
}

func (db *DB) PutProvider(p model.Provider) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.providers[p.ID] = &p
}

// OrderCount количество строк заказов
func (db *DB) OrderCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.orders)
}

// Links копия всех связей заказ-услуга
func (db *DB) Links() []model.OrderServiceLink {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]model.OrderServiceLink, len(db.links))
	copy(out, db.links)
	return out
}

func (db *DB) activeService(id int64) (*model.Service, bool) {
	s, ok := db.services[id]
	if !ok || !s.IsActive {
		return nil, false
	}
	return s, true
}

func (db *DB) sortedServiceIDs() []int64 {
	ids := make([]int64, 0, len(db.services))
	for id, s := range db.services {
		if s.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (db *DB) sortedProviderIDs() []int64 {
	ids := make([]int64, 0, len(db.providers))
	for id, p := range db.providers {
		if p.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (db *DB) orderCopy(o *model.Order, withServices bool) model.Order {
	out := *o
	out.Services = nil
	if p, ok := db.providers[o.ProviderID]; ok {
		out.ProviderName = p.Name
	}
	if withServices {
		for _, l := range db.links {
			if l.OrderID != o.ID {
				continue
			}
			if s, ok := db.services[l.ServiceID]; ok {
				out.Services = append(out.Services, *s)
			}
		}
		sort.Slice(out.Services, func(i, j int) bool { return out.Services[i].ID < out.Services[j].ID })
	}
	return out
}

// sortedOrders заказы по убыванию created_at, затем id
func (db *DB) sortedOrders(filter func(*model.Order) bool) []*model.Order {
	var out []*model.Order
	for _, o := range db.orders {
		if filter == nil || filter(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
