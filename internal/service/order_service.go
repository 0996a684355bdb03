package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/repair_bot/internal/model"
	"github.com/Freeeeeet/repair_bot/internal/ordering"
	"github.com/Freeeeeet/repair_bot/internal/repository"
	"go.uber.org/zap"
)

const DefaultHistoryPageSize = 5

// DraftStarter начинает черновик с готовым набором услуг
type DraftStarter interface {
	BeginOrderWith(ctx context.Context, userID int64, serviceIDs []int64) (*ordering.Reply, error)
}

// OrderPage страница истории заказов
type OrderPage struct {
	Orders     []model.Order
	Page       int
	TotalPages int
	Total      int
}

type OrderService struct {
	orders   repository.Orders
	starter  DraftStarter
	pageSize int
	logger   *zap.Logger
}

func NewOrderService(orders repository.Orders, starter DraftStarter, pageSize int, logger *zap.Logger) *OrderService {
	if pageSize <= 0 {
		pageSize = DefaultHistoryPageSize
	}
	return &OrderService{
		orders:   orders,
		starter:  starter,
		pageSize: pageSize,
		logger:   logger,
	}
}

// History заказы пользователя, новые первыми. Страница обрезается до допустимой
func (s *OrderService) History(ctx context.Context, userID int64, page int) (*OrderPage, error) {
	total, err := s.orders.CountOrdersForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	pages := (total + s.pageSize - 1) / s.pageSize
	if pages == 0 {
		pages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}

	orders, err := s.orders.ListOrdersForUser(ctx, userID, s.pageSize, page*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return &OrderPage{Orders: orders, Page: page, TotalPages: pages, Total: total}, nil
}

// Details заказ пользователя. Чужой и несуществующий заказ неразличимы
func (s *OrderService) Details(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdminDetails заказ любого пользователя
func (s *OrderService) AdminDetails(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Cancel отмена заказа пользователем, только pending и confirmed
func (s *OrderService) Cancel(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := s.Details(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanBeCancelled() {
		return nil, ErrCannotCancel
	}

	if err := s.setStatus(ctx, order, model.OrderStatusCancelled); err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled by user",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", orderID))

	return order, nil
}

// SetStatus смена статуса администратором по разрешённым переходам
func (s *OrderService) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	previous := order.Status
	if err := s.setStatus(ctx, order, status); err != nil {
		return nil, err
	}

	s.logger.Info("Order status changed",
		zap.Int64("order_id", orderID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))

	return order, nil
}

func (s *OrderService) setStatus(ctx context.Context, order *model.Order, status model.OrderStatus) error {
	updated, err := s.orders.SetOrderStatus(ctx, order.ID, status)
	if err != nil {
		if errors.Is(err, model.ErrInvalidStatus) {
			return err
		}
		return fmt.Errorf("set order status: %w", err)
	}
	if !updated {
		return ErrOrderNotFound
	}
	order.Status = status
	return nil
}

// Repeat новый черновик с услугами прошлого заказа
func (s *OrderService) Repeat(ctx context.Context, userID, orderID int64) (*ordering.Reply, error) {
	if _, err := s.Details(ctx, userID, orderID); err != nil {
		return nil, err
	}

	ids, err := s.orders.OrderServiceIDs(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order services: %w", err)
	}

	s.logger.Info("Repeating order",
		zap.Int64("user_id", userID),
		zap.Int64("order_id", orderID),
		zap.Int64s("service_ids", ids))

	return s.starter.BeginOrderWith(ctx, userID, ids)
}

// Recent последние заказы всех пользователей
func (s *OrderService) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	orders, err := s.orders.ListOrders(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
