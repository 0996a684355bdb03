package repository

import (
	"context"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog каталог услуг и мастеров, только чтение.
// Get* возвращают nil, nil если запись не найдена или неактивна
type Catalog interface {
	ListServices(ctx context.Context, page, size int) ([]model.Service, error)
	CountServices(ctx context.Context) (int, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	ListProviders(ctx context.Context, page, size int) ([]model.Provider, error)
	GetProvider(ctx context.Context, id int64) (*model.Provider, error)
}

// Orders хранилище заказов.
// CreateOrder атомарный: либо заказ со всеми связями, либо ничего
type Orders interface {
	CreateOrder(ctx context.Context, order model.NewOrder) (int64, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error)
	ListOrdersForUser(ctx context.Context, userID int64, limit, offset int) ([]model.Order, error)
	CountOrdersForUser(ctx context.Context, userID int64) (int, error)
	ListOrders(ctx context.Context, limit, offset int) ([]model.Order, error)
	OrderServiceIDs(ctx context.Context, orderID int64) ([]int64, error)
}

type Users interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
	UpdateField(ctx context.Context, telegramID int64, field model.ProfileField, value string) (bool, error)
}

type Reviews interface {
	Create(ctx context.Context, review *model.Review) error
	Recent(ctx context.Context, limit int) ([]model.Review, error)
}

type Support interface {
	Create(ctx context.Context, request *model.SupportRequest) error
	Recent(ctx context.Context, limit int) ([]model.SupportRequest, error)
}

type Stats interface {
	Statistics(ctx context.Context) (*model.Statistics, error)
}

// Store полный набор хранилищ, который нужен приложению
type Store struct {
	Catalog Catalog
	Orders  Orders
	Users   Users
	Reviews Reviews
	Support Support
	Stats   Stats
}

// NewStore собирает все postgres-репозитории
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Catalog: NewCatalogRepository(pool),
		Orders:  NewOrderRepository(pool),
		Users:   NewUserRepository(pool),
		Reviews: NewReviewRepository(pool),
		Support: NewSupportRepository(pool),
		Stats:   NewStatsRepository(pool),
	}
}
