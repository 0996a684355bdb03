package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/recommendation"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"github.com/Freeeeeet/repair_bot/internal/repository/memory"
	"github.com/Freeeeeet/repair_bot/internal/validation"
)

const (
	alice int64 = 1001
	bob   int64 = 1002
)

type starterStub struct {
	userID int64
	ids    []int64
}

func (s *starterStub) BeginOrderWith(_ context.Context, userID int64, ids []int64) (*ordering.Reply, error) {
	s.userID = userID
	s.ids = ids
	return &ordering.Reply{State: ordering.StateSelectingServices}, nil
}

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *repository.Store
	starter *starterStub
	users   *UserService
	orders  *OrderService
	reviews *ReviewService
	support *SupportService
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewSeeded().Store()
	s.starter = &starterStub{}
	logger := zap.NewNop()

	s.users = NewUserService(s.store.Users, logger)
	s.orders = NewOrderService(s.store.Orders, s.starter, 2, logger)
	s.reviews = NewReviewService(s.store.Reviews, s.orders, logger)
	s.support = NewSupportService(s.store.Support, logger)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) placeOrder(userID int64, ids ...int64) int64 {
	id, err := s.store.Orders.CreateOrder(s.ctx, model.NewOrder{
		UserID:     userID,
		ProviderID: 1,
		Address:    "ул. Тестовая, 5, кв. 1",
		Date:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:   "14:00",
		TotalCost:  1000,
		ServiceIDs: ids,
	})
	s.Require().NoError(err)
	return id
}

func (s *ServiceSuite) TestRegister() {
	user, err := s.users.Register(s.ctx, alice, "  Анна-Мария ", "8 900 123 45 67", "г. Москва, ул. Ленина, 1")
	s.Require().NoError(err)
	s.Equal("Анна-Мария", user.Name)
	s.Equal("+7 (900) 123-45-67", user.Phone)

	ok, err := s.users.IsRegistered(s.ctx, alice)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.users.IsRegistered(s.ctx, bob)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ServiceSuite) TestRegisterValidation() {
	_, err := s.users.Register(s.ctx, alice, "А", "8 900 123 45 67", "г. Москва, ул. Ленина, 1")
	fe, ok := validation.AsFieldError(err)
	s.Require().True(ok)
	s.Equal(validation.FieldName, fe.Field)

	_, err = s.users.Register(s.ctx, alice, "Анна", "12345", "г. Москва, ул. Ленина, 1")
	fe, ok = validation.AsFieldError(err)
	s.Require().True(ok)
	s.Equal(validation.FieldPhone, fe.Field)

	user, err := s.users.GetByTelegramID(s.ctx, alice)
	s.Require().NoError(err)
	s.Nil(user)
}

func (s *ServiceSuite) TestUpdateProfile() {
	_, err := s.users.UpdateProfile(s.ctx, alice, model.ProfileFieldAddress, "пр. Мира, 10, кв. 3")
	s.ErrorIs(err, ErrNotRegistered)

	_, err = s.users.Register(s.ctx, alice, "Анна", "+79001234567", "г. Москва, ул. Ленина, 1")
	s.Require().NoError(err)

	user, err := s.users.UpdateProfile(s.ctx, alice, model.ProfileFieldAddress, "пр. Мира, 10, кв. 3")
	s.Require().NoError(err)
	s.Equal("пр. Мира, 10, кв. 3", user.Address)
	s.Equal("Анна", user.Name)

	_, err = s.users.UpdateProfile(s.ctx, alice, model.ProfileFieldPhone, "abc")
	_, ok := validation.AsFieldError(err)
	s.True(ok)
}

func (s *ServiceSuite) TestHistoryPaging() {
	for i := 0; i < 5; i++ {
		s.placeOrder(alice, 1)
	}
	s.placeOrder(bob, 2)

	page, err := s.orders.History(s.ctx, alice, 0)
	s.Require().NoError(err)
	s.Equal(5, page.Total)
	s.Equal(3, page.TotalPages)
	s.Len(page.Orders, 2)
	s.Greater(page.Orders[0].ID, page.Orders[1].ID)

	page, err = s.orders.History(s.ctx, alice, 10)
	s.Require().NoError(err)
	s.Equal(2, page.Page)
	s.Len(page.Orders, 1)

	page, err = s.orders.History(s.ctx, 9999, 0)
	s.Require().NoError(err)
	s.Equal(1, page.TotalPages)
	s.Empty(page.Orders)
}

func (s *ServiceSuite) TestDetailsHidesForeignOrders() {
	id := s.placeOrder(alice, 1, 3)

	order, err := s.orders.Details(s.ctx, alice, id)
	s.Require().NoError(err)
	s.Len(order.Services, 2)

	_, err = s.orders.Details(s.ctx, bob, id)
	s.ErrorIs(err, ErrOrderNotFound)

	_, err = s.orders.Details(s.ctx, alice, 424242)
	s.ErrorIs(err, ErrOrderNotFound)

	order, err = s.orders.AdminDetails(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(alice, order.UserID)

	_, err = s.orders.AdminDetails(s.ctx, 424242)
	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *ServiceSuite) TestCancel() {
	id := s.placeOrder(alice, 1)

	_, err := s.orders.Cancel(s.ctx, bob, id)
	s.ErrorIs(err, ErrOrderNotFound)

	order, err := s.orders.Cancel(s.ctx, alice, id)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusCancelled, order.Status)

	_, err = s.orders.Cancel(s.ctx, alice, id)
	s.ErrorIs(err, ErrCannotCancel)

	inProgress := s.placeOrder(alice, 1)
	_, err = s.orders.SetStatus(s.ctx, inProgress, model.OrderStatusInProgress)
	s.Require().NoError(err)
	_, err = s.orders.Cancel(s.ctx, alice, inProgress)
	s.ErrorIs(err, ErrCannotCancel)
}

func (s *ServiceSuite) TestSetStatus() {
	id := s.placeOrder(alice, 1)

	_, err := s.orders.SetStatus(s.ctx, id, model.OrderStatus("lost"))
	s.ErrorIs(err, model.ErrInvalidStatus)

	_, err = s.orders.SetStatus(s.ctx, id, model.OrderStatusCompleted)
	s.ErrorIs(err, ErrInvalidTransition)

	order, err := s.orders.SetStatus(s.ctx, id, model.OrderStatusConfirmed)
	s.Require().NoError(err)
	s.Equal(model.OrderStatusConfirmed, order.Status)

	_, err = s.orders.SetStatus(s.ctx, 999, model.OrderStatusConfirmed)
	s.ErrorIs(err, ErrOrderNotFound)
}

func (s *ServiceSuite) TestRepeat() {
	id := s.placeOrder(alice, 3, 1)

	_, err := s.orders.Repeat(s.ctx, bob, id)
	s.ErrorIs(err, ErrOrderNotFound)

	reply, err := s.orders.Repeat(s.ctx, alice, id)
	s.Require().NoError(err)
	s.Equal(ordering.StateSelectingServices, reply.State)
	s.Equal(alice, s.starter.userID)
	s.Equal([]int64{1, 3}, s.starter.ids)
}

func (s *ServiceSuite) TestReviews() {
	id := s.placeOrder(alice, 1)

	s.ErrorIs(s.reviews.CanReview(s.ctx, alice, id), ErrNotReviewable)
	_, err := s.reviews.Create(s.ctx, alice, id, 5, "Всё отлично")
	s.ErrorIs(err, ErrNotReviewable)

	_, err = s.orders.SetStatus(s.ctx, id, model.OrderStatusConfirmed)
	s.Require().NoError(err)
	_, err = s.orders.SetStatus(s.ctx, id, model.OrderStatusCompleted)
	s.Require().NoError(err)
	s.NoError(s.reviews.CanReview(s.ctx, alice, id))

	_, err = s.reviews.Create(s.ctx, alice, id, 6, "Всё отлично")
	fe, ok := validation.AsFieldError(err)
	s.Require().True(ok)
	s.Equal(validation.FieldRating, fe.Field)

	_, err = s.reviews.Create(s.ctx, bob, id, 5, "Всё отлично")
	s.ErrorIs(err, ErrOrderNotFound)

	review, err := s.reviews.Create(s.ctx, alice, id, 5, "Всё отлично")
	s.Require().NoError(err)
	s.NotZero(review.ID)

	_, err = s.reviews.Create(s.ctx, alice, id, 4, "Второй отзыв")
	s.ErrorIs(err, model.ErrAlreadyReviewed)

	recent, err := s.reviews.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(recent, 1)
}

func (s *ServiceSuite) TestSupport() {
	_, err := s.support.Submit(s.ctx, alice, "коротко")
	_, ok := validation.AsFieldError(err)
	s.True(ok)

	req, err := s.support.Submit(s.ctx, alice, "Мастер опоздал на час, прошу разобраться")
	s.Require().NoError(err)
	s.NotZero(req.ID)

	recent, err := s.support.Recent(s.ctx, 5)
	s.Require().NoError(err)
	s.Len(recent, 1)
}

func TestAdminService(t *testing.T) {
	store := memory.NewSeeded().Store()
	adapter := recommendation.NewAdapter(nil, nil, nil)
	admin := NewAdminService([]int64{42, 43}, store.Stats, adapter, zap.NewNop())

	assert.True(t, admin.IsAdmin(42))
	assert.False(t, admin.IsAdmin(44))

	st, err := admin.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Orders)

	status := admin.AdviceStatus(context.Background())
	assert.False(t, status.Configured)
	assert.False(t, status.Available)
}
