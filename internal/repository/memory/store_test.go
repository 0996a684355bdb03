package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/repository"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	db    *DB
	store *repository.Store
	clock time.Time
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = NewSeeded()
	s.clock = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.db.SetClock(func() time.Time {
		s.clock = s.clock.Add(time.Second)
		return s.clock
	})
	s.store = s.db.Store()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) newOrder(ids ...int64) model.NewOrder {
	return model.NewOrder{
		UserID:     100,
		ProviderID: 1,
		Address:    "ул. Тестовая, 5, кв. 1",
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "14:00",
		TotalCost:  1700,
		ServiceIDs: ids,
	}
}

func (s *StoreSuite) TestCatalogPaging() {
	first, err := s.store.Catalog.ListServices(s.ctx, 0, 5)
	s.Require().NoError(err)
	s.Require().Len(first, 5)
	s.Equal(int64(1), first[0].ID)

	last, err := s.store.Catalog.ListServices(s.ctx, 2, 5)
	s.Require().NoError(err)
	s.Require().Len(last, 5)
	s.Equal(int64(15), last[4].ID)

	empty, err := s.store.Catalog.ListServices(s.ctx, 3, 5)
	s.Require().NoError(err)
	s.Empty(empty)

	count, err := s.store.Catalog.CountServices(s.ctx)
	s.Require().NoError(err)
	s.Equal(15, count)
}

func (s *StoreSuite) TestInactiveServiceHidden() {
	s.db.SetServiceActive(3, false)

	svc, err := s.store.Catalog.GetService(s.ctx, 3)
	s.Require().NoError(err)
	s.Nil(svc)

	count, err := s.store.Catalog.CountServices(s.ctx)
	s.Require().NoError(err)
	s.Equal(14, count)
}

func (s *StoreSuite) TestCreateOrder() {
	id, err := s.store.Orders.CreateOrder(s.ctx, s.newOrder(1, 3))
	s.Require().NoError(err)

	order, err := s.store.Orders.GetOrder(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(order)
	s.Equal(model.OrderStatusPending, order.Status)
	s.Equal(1700, order.TotalCost)
	s.Equal("Алексей Петров", order.ProviderName)
	s.Len(order.Services, 2)

	ids, err := s.store.Orders.OrderServiceIDs(s.ctx, id)
	s.Require().NoError(err)
	s.Equal([]int64{1, 3}, ids)
}

func (s *StoreSuite) TestCreateOrderIsAtomic() {
	s.db.SetServiceActive(3, false)

	_, err := s.store.Orders.CreateOrder(s.ctx, s.newOrder(1, 3))
	s.Require().ErrorIs(err, model.ErrServiceUnavailable)

	s.Equal(0, s.db.OrderCount())
	s.Empty(s.db.Links())
}

func (s *StoreSuite) TestCreateOrderRejectsEmpty() {
	_, err := s.store.Orders.CreateOrder(s.ctx, s.newOrder())
	s.Require().ErrorIs(err, model.ErrEmptyOrder)
	s.Equal(0, s.db.OrderCount())
}

func (s *StoreSuite) TestSetOrderStatus() {
	id, err := s.store.Orders.CreateOrder(s.ctx, s.newOrder(1))
	s.Require().NoError(err)

	ok, err := s.store.Orders.SetOrderStatus(s.ctx, id, model.OrderStatusConfirmed)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.store.Orders.SetOrderStatus(s.ctx, 999, model.OrderStatusConfirmed)
	s.Require().NoError(err)
	s.False(ok)

	_, err = s.store.Orders.SetOrderStatus(s.ctx, id, model.OrderStatus("lost"))
	s.ErrorIs(err, model.ErrInvalidStatus)
}

func (s *StoreSuite) TestListOrdersForUserNewestFirst() {
	first, _ := s.store.Orders.CreateOrder(s.ctx, s.newOrder(1))
	second, _ := s.store.Orders.CreateOrder(s.ctx, s.newOrder(2))

	other := s.newOrder(2)
	other.UserID = 200
	_, err := s.store.Orders.CreateOrder(s.ctx, other)
	s.Require().NoError(err)

	orders, err := s.store.Orders.ListOrdersForUser(s.ctx, 100, 10, 0)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(second, orders[0].ID)
	s.Equal(first, orders[1].ID)

	count, err := s.store.Orders.CountOrdersForUser(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(2, count)

	paged, err := s.store.Orders.ListOrdersForUser(s.ctx, 100, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(paged, 1)
	s.Equal(first, paged[0].ID)
}

func (s *StoreSuite) TestReviewRules() {
	id, err := s.store.Orders.CreateOrder(s.ctx, s.newOrder(1))
	s.Require().NoError(err)

	review := &model.Review{UserID: 100, OrderID: id, Rating: 5, Comment: "Отлично"}
	s.ErrorIs(s.store.Reviews.Create(s.ctx, review), model.ErrInvalidStatus)

	_, err = s.store.Orders.SetOrderStatus(s.ctx, id, model.OrderStatusCompleted)
	s.Require().NoError(err)

	stranger := &model.Review{UserID: 200, OrderID: id, Rating: 5, Comment: "Отлично"}
	s.ErrorIs(s.store.Reviews.Create(s.ctx, stranger), model.ErrNotFound)

	s.Require().NoError(s.store.Reviews.Create(s.ctx, review))
	s.NotZero(review.ID)

	again := &model.Review{UserID: 100, OrderID: id, Rating: 4, Comment: "Ещё раз"}
	s.ErrorIs(s.store.Reviews.Create(s.ctx, again), model.ErrAlreadyReviewed)

	stats, err := s.store.Stats.Statistics(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Orders)
	s.Equal(1, stats.CompletedOrders)
	s.Equal(1700, stats.Revenue)
	s.Equal(1, stats.Reviews)
	s.InDelta(5.0, stats.AverageRating, 0.001)
}

func TestUsersUpsertKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := New().Store()

	u := &model.User{TelegramID: 1, Name: "Иван", Phone: "+7 (900) 123-45-67", Address: "ул. Ленина, 1"}
	require.NoError(t, store.Users.Upsert(ctx, u))
	created := u.CreatedAt

	u2 := &model.User{TelegramID: 1, Name: "Иван Петров", Phone: u.Phone, Address: u.Address}
	require.NoError(t, store.Users.Upsert(ctx, u2))
	assert.Equal(t, created, u2.CreatedAt)

	ok, err := store.Users.UpdateField(ctx, 1, model.ProfileFieldAddress, "пр. Мира, 10, кв. 3")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.Users.GetByTelegramID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", got.Name)
	assert.Equal(t, "пр. Мира, 10, кв. 3", got.Address)

	missing, err := store.Users.GetByTelegramID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
